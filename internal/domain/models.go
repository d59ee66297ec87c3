package domain

import "fmt"

// Suggestion is a single search hit. Only Title is interpreted by the input;
// Fields carries whatever else the backend returned.
type Suggestion struct {
	Title  string         `json:"title" yaml:"title"`
	Fields map[string]any `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Field returns a backend field rendered as text, or "" when absent.
func (s Suggestion) Field(name string) string {
	v, ok := s.Fields[name]
	if !ok || v == nil {
		return ""
	}
	if str, ok := v.(string); ok {
		return str
	}
	return fmt.Sprint(v)
}

// Titles extracts the titles of a result set in order.
func Titles(results []Suggestion) []string {
	titles := make([]string, len(results))
	for i, s := range results {
		titles[i] = s.Title
	}
	return titles
}
