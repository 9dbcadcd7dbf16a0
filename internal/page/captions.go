package page

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Captions returns the catalog ids shown on a rendered page, in document
// order. Bonus blocks carry no data-item-id and are not counted.
func Captions(r io.Reader) ([]int, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	var ids []int
	var scanErr error
	doc.Find("[data-item-id] p.caption").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		id, err := strconv.Atoi(text)
		if err != nil {
			scanErr = fmt.Errorf("caption %q is not an id", text)
			return false
		}
		ids = append(ids, id)
		return true
	})
	if scanErr != nil {
		return nil, scanErr
	}
	return ids, nil
}

// Diff compares the ids of a previous page with the ids about to be shown.
func Diff(previous, current []int) (added, removed []int) {
	before := make(map[int]struct{}, len(previous))
	for _, id := range previous {
		before[id] = struct{}{}
	}
	now := make(map[int]struct{}, len(current))
	for _, id := range current {
		now[id] = struct{}{}
		if _, ok := before[id]; !ok {
			added = append(added, id)
		}
	}
	for _, id := range previous {
		if _, ok := now[id]; !ok {
			removed = append(removed, id)
		}
	}
	return added, removed
}
