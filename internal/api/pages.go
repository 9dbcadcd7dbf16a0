package api

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/meur/unlockforge/internal/catalog"
	"github.com/meur/unlockforge/internal/models"
	"github.com/meur/unlockforge/internal/pipeline"
)

// build runs the pipeline for one request, answering with an error on failure
func (s *Server) build(w http.ResponseWriter, r *http.Request) (*pipeline.Build, bool) {
	b, err := s.builder.Build(r.Context())
	if err == nil {
		return b, true
	}

	s.logger.Error("build failed", zap.Error(err))
	switch {
	case errors.Is(err, catalog.ErrFetch), errors.Is(err, catalog.ErrParse):
		respondError(w, http.StatusBadGateway, "Failed to load catalog")
	default:
		respondError(w, http.StatusInternalServerError, "Failed to render page")
	}
	return nil, false
}

// handleGetPage renders the unlocked-items page
func (s *Server) handleGetPage(w http.ResponseWriter, r *http.Request) {
	b, ok := s.build(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(b.Document)
}

// handleGetItems returns the unlocked catalog items in page order
func (s *Server) handleGetItems(w http.ResponseWriter, r *http.Request) {
	b, ok := s.build(w, r)
	if !ok {
		return
	}

	items := make([]models.Item, 0, len(b.Shown))
	for _, item := range b.Items {
		if b.Unlocked.Contains(item.ID) {
			items = append(items, item)
		}
	}

	respondJSON(w, http.StatusOK, models.ItemList{
		Items:      items,
		TotalCount: len(items),
	})
}

// handleGetUnlocked returns the configured unlocked ranges
func (s *Server) handleGetUnlocked(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"tokens": s.unlocked.Tokens(),
		"count":  s.unlocked.Len(),
	})
}
