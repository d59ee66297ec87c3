package views

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"

	"suggest/internal/domain"
)

const (
	activeMarker   = "> "
	inactiveMarker = "  "
)

// RenderSuggestions draws one line per suggestion, highlighting active.
// Titles wider than width are cut with an ellipsis; an optional "detail"
// field is appended when it still fits. Control characters are shown as
// spaces so every suggestion occupies exactly one row. An empty list renders
// as "".
func RenderSuggestions(s *Styles, results []domain.Suggestion, active, width int) string {
	if len(results) == 0 {
		return ""
	}
	if width <= len(activeMarker) {
		width = len(activeMarker) + 1
	}
	avail := width - len(activeMarker)

	lines := make([]string, len(results))
	for i, item := range results {
		title := runewidth.Truncate(singleLine(item.Title), avail, "…")
		line := title
		if detail := item.Field("detail"); detail != "" {
			room := avail - runewidth.StringWidth(title) - 1
			if room > 3 {
				line = title + " " + s.Detail.Render(runewidth.Truncate(singleLine(detail), room, "…"))
			}
		}

		if i == active {
			lines[i] = s.ActiveItem.Render(activeMarker + line)
		} else {
			lines[i] = s.Item.Render(inactiveMarker + line)
		}
	}
	return strings.Join(lines, "\n")
}

func singleLine(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
}
