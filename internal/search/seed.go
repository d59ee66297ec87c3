package search

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"suggest/internal/domain"
)

// seedFile is the on-disk layout of a seed file:
//
//	suggestions:
//	  - title: cat
//	    fields: {kind: animal}
//	  - car
//
// Entries may be bare strings or mappings with a title.
type seedFile struct {
	Suggestions []seedEntry `yaml:"suggestions"`
}

type seedEntry struct {
	domain.Suggestion
}

func (e *seedEntry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		e.Title = node.Value
		return nil
	}
	return node.Decode(&e.Suggestion)
}

// LoadSeed reads suggestions from a YAML seed file. Blank and duplicate
// titles are skipped; the first occurrence wins.
func LoadSeed(path string) ([]domain.Suggestion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes seed file contents.
func ParseSeed(data []byte) ([]domain.Suggestion, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	seen := make(map[string]bool, len(f.Suggestions))
	out := make([]domain.Suggestion, 0, len(f.Suggestions))
	for _, e := range f.Suggestions {
		title := strings.TrimSpace(e.Title)
		if title == "" || seen[title] {
			continue
		}
		seen[title] = true
		e.Title = title
		out = append(out, e.Suggestion)
	}
	return out, nil
}
