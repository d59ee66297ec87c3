package suggest

import (
	tea "github.com/charmbracelet/bubbletea"

	"suggest/internal/domain"
)

// MoveNext highlights the next suggestion. Past the last one the highlight
// returns to the typed text. With no results it searches instead.
func (c *Controller) MoveNext() tea.Cmd {
	return c.move(1)
}

// MovePrevious highlights the previous suggestion. Before the typed text it
// wraps to the last one. With no results it searches instead.
func (c *Controller) MovePrevious() tea.Cmd {
	return c.move(-1)
}

func (c *Controller) move(delta int) tea.Cmd {
	n := len(c.state.Results)
	if n == 0 {
		return c.ForceSearch()
	}

	next := c.state.ActiveIndex + delta
	if next > n-1 {
		next = NoSelection
	}
	if next < NoSelection {
		next = n - 1
	}

	c.state.ActiveIndex = next
	if next == NoSelection {
		c.display = c.state.RawText
	} else {
		c.display = c.state.Results[next].Title
	}
	c.render()
	return nil
}

// Confirm commits the highlighted suggestion, or the typed text when nothing
// is highlighted, and notifies the action callback.
func (c *Controller) Confirm() {
	c.Commit(c.state.ActiveIndex, true)
}

// Cancel ends the interaction without notifying anyone. A highlighted
// suggestion is kept as the text.
func (c *Controller) Cancel() {
	c.Commit(c.state.ActiveIndex, false)
}

// Select commits the suggestion at index, as a pointer press on it does.
func (c *Controller) Select(index int) {
	c.Commit(index, true)
}

// Commit takes the suggestion at index as the new text; an index that is not
// valid for the current list leaves the typed text as it is. The list is
// always cleared. When final is set the action callback receives the text.
//
// Searches still in flight are invalidated so the list stays closed.
func (c *Controller) Commit(index int, final bool) {
	text := c.state.RawText
	if c.state.valid(index) {
		text = c.state.Results[index].Title
	} else {
		index = NoSelection
	}

	c.state.Generation++
	c.state.RawText = text
	c.state.Results = nil
	c.state.ActiveIndex = NoSelection
	c.display = text
	c.pending = false

	c.render()

	if !final {
		c.publish(domain.SelectionClearedEvent{Text: text})
		return
	}
	c.publish(domain.ActionCommittedEvent{Text: text, Index: index})
	if c.onAction != nil {
		c.onAction(text)
	}
}
