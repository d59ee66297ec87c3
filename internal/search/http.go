package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"suggest/internal/domain"
)

const (
	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 5 * time.Second

	// maxResponseSize caps how much of a response body is read.
	maxResponseSize = 1 << 20
)

// HTTPSearcher queries a remote endpoint:
//
//	GET <endpoint>?q=<query>&limit=<n>
//
// which answers with a JSON array of objects. Each object needs a "title";
// every other key ends up in Suggestion.Fields.
type HTTPSearcher struct {
	endpoint string
	token    string
	client   *http.Client
	limiter  *rate.Limiter
}

// HTTPOption configures an HTTPSearcher.
type HTTPOption func(*HTTPSearcher)

// WithHTTPClient overrides the default HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPSearcher) { s.client = c }
}

// WithRateLimit caps outgoing requests per second. Zero or less disables the cap.
func WithRateLimit(perSecond float64) HTTPOption {
	return func(s *HTTPSearcher) {
		if perSecond <= 0 {
			s.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		s.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithToken sends "Authorization: Bearer <token>" on every request.
func WithToken(token string) HTTPOption {
	return func(s *HTTPSearcher) { s.token = token }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) HTTPOption {
	return func(s *HTTPSearcher) {
		if d > 0 {
			s.client.Timeout = d
		}
	}
}

// NewHTTPSearcher creates a searcher for endpoint.
func NewHTTPSearcher(endpoint string, opts ...HTTPOption) (*HTTPSearcher, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid search endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid search endpoint %q: scheme must be http or https", endpoint)
	}

	s := &HTTPSearcher{
		endpoint: endpoint,
		client:   &http.Client{Timeout: DefaultTimeout},
		limiter:  rate.NewLimiter(rate.Inf, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Search implements Searcher.
func (s *HTTPSearcher) Search(ctx context.Context, query string, limit int) ([]domain.Suggestion, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, &Error{Backend: "http", Query: query, Err: fmt.Errorf("rate limiter: %w", err)}
	}

	u, _ := url.Parse(s.endpoint)
	q := u.Query()
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(clampLimit(limit)))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &Error{Backend: "http", Query: query, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &Error{Backend: "http", Query: query, Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &Error{Backend: "http", Query: query, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode >= 400 {
		msg := strings.TrimSpace(string(body))
		if len(msg) > 200 {
			msg = msg[:200]
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &Error{Backend: "http", Query: query, StatusCode: resp.StatusCode, Err: errors.New(msg)}
	}

	results, err := decodeResults(body, clampLimit(limit))
	if err != nil {
		return nil, &Error{Backend: "http", Query: query, Err: err}
	}
	return results, nil
}

func decodeResults(body []byte, limit int) ([]domain.Suggestion, error) {
	var raw []map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	results := make([]domain.Suggestion, 0, len(raw))
	for _, obj := range raw {
		title, _ := obj["title"].(string)
		if title == "" {
			continue
		}
		delete(obj, "title")
		s := domain.Suggestion{Title: title}
		if len(obj) > 0 {
			s.Fields = obj
		}
		results = append(results, s)
		if len(results) == limit {
			break
		}
	}
	return results, nil
}
