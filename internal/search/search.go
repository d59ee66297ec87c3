package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"suggest/internal/domain"
)

// DefaultLimit is the number of suggestions requested when none is configured.
const DefaultLimit = 10

// ErrClosed is returned by backends used after Close.
var ErrClosed = errors.New("search backend closed")

// Searcher returns up to limit suggestions for query, best first.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]domain.Suggestion, error)
}

// Error describes a failed search.
type Error struct {
	Backend    string
	Query      string
	StatusCode int // HTTP status, 0 when the failure was not an HTTP response
	Err        error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s search %q: status %d: %v", e.Backend, e.Query, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s search %q: %v", e.Backend, e.Query, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsRateLimited returns true if the backend answered 429 Too Many Requests.
func (e *Error) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// IsServerError returns true if the backend answered with a 5xx status.
func (e *Error) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// Temporary reports whether retrying the same query later could succeed.
func (e *Error) Temporary() bool {
	if e.IsRateLimited() || e.IsServerError() {
		return true
	}
	return errors.Is(e.Err, context.DeadlineExceeded)
}

// AsError checks if err is (or wraps) a search *Error and returns it.
func AsError(err error) (*Error, bool) {
	var se *Error
	ok := errors.As(err, &se)
	return se, ok
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}
