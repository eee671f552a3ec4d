package pypln

import (
	"context"
	"fmt"
	"iter"
	"net/http"
)

// page is one response of a paginated listing.
type page struct {
	Results  []map[string]any `json:"results"`
	Next     *string          `json:"next"`
	Previous *string          `json:"previous"`
	Count    int              `json:"count"`
}

func (p *page) nextURL() string {
	if p.Next == nil {
		return ""
	}
	return *p.Next
}

// fetchPage GETs one listing page and hydrates its results.
func fetchPage[T any](ctx context.Context, s *Session, endpoint string, hydrateFn func(map[string]any, *Session) (*T, error)) ([]*T, string, error) {
	resp, err := s.get(ctx, endpoint)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch %s: %w", endpoint, err)
	}
	if err := resp.check(http.StatusOK, ErrFetchFailed); err != nil {
		return nil, "", err
	}

	var p page
	if err := resp.decode(&p); err != nil {
		return nil, "", err
	}

	items := make([]*T, 0, len(p.Results))
	for _, payload := range p.Results {
		item, err := hydrateFn(payload, s)
		if err != nil {
			return nil, "", err
		}
		items = append(items, item)
	}
	return items, p.nextURL(), nil
}

// listAll returns the first page, or every page in order when full is set.
// Any failure discards what was already collected. Items repeated across
// pages are kept.
func listAll[T any](ctx context.Context, s *Session, endpoint string, full bool, hydrateFn func(map[string]any, *Session) (*T, error)) ([]*T, error) {
	items, next, err := fetchPage(ctx, s, endpoint, hydrateFn)
	if err != nil {
		return nil, err
	}

	pages := 1
	for full && next != "" {
		var more []*T
		more, next, err = fetchPage(ctx, s, next, hydrateFn)
		if err != nil {
			return nil, err
		}
		items = append(items, more...)
		pages++
	}

	s.logger.Debug("listed resources", "url", endpoint, "pages", pages, "count", len(items))
	return items, nil
}

// iterate yields items page by page. An error is yielded once and ends the
// sequence.
func iterate[T any](ctx context.Context, s *Session, endpoint string, hydrateFn func(map[string]any, *Session) (*T, error)) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		next := endpoint
		for next != "" {
			var (
				items []*T
				err   error
			)
			items, next, err = fetchPage(ctx, s, next, hydrateFn)
			if err != nil {
				yield(nil, err)
				return
			}
			for _, item := range items {
				if !yield(item, nil) {
					return
				}
			}
		}
	}
}

func failed[T any](err error) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		yield(nil, err)
	}
}
