package search

import (
	"context"
	"strings"

	"suggest/internal/domain"
)

// Static searches a fixed in-memory list. Prefix matches rank ahead of
// substring matches; ties keep the list order.
type Static struct {
	items []domain.Suggestion
	lower []string
}

// NewStatic creates a searcher over items.
func NewStatic(items []domain.Suggestion) *Static {
	s := &Static{
		items: make([]domain.Suggestion, len(items)),
		lower: make([]string, len(items)),
	}
	copy(s.items, items)
	for i, item := range items {
		s.lower[i] = strings.ToLower(item.Title)
	}
	return s
}

// Len returns the number of indexed suggestions.
func (s *Static) Len() int {
	return len(s.items)
}

// Search implements Searcher.
func (s *Static) Search(ctx context.Context, query string, limit int) ([]domain.Suggestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Backend: "static", Query: query, Err: err}
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}
	limit = clampLimit(limit)

	var prefix, contains []domain.Suggestion
	for i, title := range s.lower {
		switch {
		case strings.HasPrefix(title, q):
			prefix = append(prefix, s.items[i])
		case strings.Contains(title, q):
			contains = append(contains, s.items[i])
		}
	}

	results := append(prefix, contains...)
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
