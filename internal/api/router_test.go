package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meur/unlockforge/internal/catalog"
	"github.com/meur/unlockforge/internal/models"
	"github.com/meur/unlockforge/internal/pipeline"
	"github.com/meur/unlockforge/internal/unlock"
)

type fakeBuilder struct {
	build *pipeline.Build
	err   error
	calls int
}

func (f *fakeBuilder) Build(ctx context.Context) (*pipeline.Build, error) {
	f.calls++
	return f.build, f.err
}

func newTestBuild() *pipeline.Build {
	set := unlock.MustParse("1-10")
	return &pipeline.Build{
		Items: []models.Item{
			{ID: 3, Image: "img/3.png", Points: models.Points(`2`)},
			{ID: 12, Image: "img/12.png"},
			{ID: 7, Image: "img/7.png"},
		},
		Unlocked: set,
		Shown:    []int{3, 7},
		Document: []byte("<html>page</html>"),
	}
}

func doRequest(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGetPageBuildsPerRequest(t *testing.T) {
	t.Parallel()

	builder := &fakeBuilder{build: newTestBuild()}
	srv := New(builder, unlock.MustParse("1-10"), nil)

	for i := 0; i < 2; i++ {
		rec := doRequest(t, srv, "/")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		require.Equal(t, "<html>page</html>", rec.Body.String())
	}
	require.Equal(t, 2, builder.calls)
}

func TestGetItemsReturnsUnlockedOnly(t *testing.T) {
	t.Parallel()

	srv := New(&fakeBuilder{build: newTestBuild()}, unlock.MustParse("1-10"), nil)
	rec := doRequest(t, srv, "/api/items")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Items      []models.Item `json:"items"`
		TotalCount int           `json:"total_count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 2, body.TotalCount)
	require.Equal(t, 3, body.Items[0].ID)
	require.Equal(t, "2", body.Items[0].Points.String())
	require.Equal(t, 7, body.Items[1].ID)
}

func TestGetUnlockedDoesNotFetch(t *testing.T) {
	t.Parallel()

	builder := &fakeBuilder{err: fmt.Errorf("should not be called")}
	srv := New(builder, unlock.MustParse("5", "1-3"), nil)
	rec := doRequest(t, srv, "/api/unlocked")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Zero(t, builder.calls)

	var body struct {
		Tokens []string `json:"tokens"`
		Count  int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, []string{"1-3", "5"}, body.Tokens)
	require.Equal(t, 4, body.Count)
}

func TestBuildErrorsMapToStatus(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		err    error
		status int
	}{
		"fetch":  {err: fmt.Errorf("load: %w", catalog.ErrFetch), status: http.StatusBadGateway},
		"parse":  {err: fmt.Errorf("load: %w", catalog.ErrParse), status: http.StatusBadGateway},
		"render": {err: fmt.Errorf("render page: boom"), status: http.StatusInternalServerError},
	}
	for name, tc := range cases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			srv := New(&fakeBuilder{err: tc.err}, unlock.Set{}, nil)
			rec := doRequest(t, srv, "/")
			require.Equal(t, tc.status, rec.Code)
			require.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	srv := New(&fakeBuilder{}, unlock.Set{}, nil)
	rec := doRequest(t, srv, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "OK", rec.Body.String())
}
