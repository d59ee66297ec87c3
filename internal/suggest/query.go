package suggest

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"suggest/internal/domain"
)

// ResultsMsg carries a finished search back into the event loop.
type ResultsMsg struct {
	Generation uint64
	Query      string
	Results    []domain.Suggestion
	Err        error
}

// OnTextChanged records text as typed by the user and starts a search for it.
// The highlight is cleared immediately. For empty text the list is emptied
// right away and no search is started (the returned command is nil).
func (c *Controller) OnTextChanged(text string) tea.Cmd {
	c.state.RawText = text
	return c.issue()
}

// ForceSearch searches again for the stored raw text.
func (c *Controller) ForceSearch() tea.Cmd {
	return c.issue()
}

func (c *Controller) issue() tea.Cmd {
	c.state.Generation++
	c.state.ActiveIndex = NoSelection
	c.display = c.state.RawText

	gen := c.state.Generation
	query := c.state.RawText

	if query == "" {
		c.pending = false
		c.err = nil
		c.state.Results = nil
		c.render()
		return nil
	}

	c.pending = true
	c.render()
	c.publish(domain.QueryIssuedEvent{Query: query, Generation: gen})

	searcher, limit, ctx := c.searcher, c.limit, c.ctx
	return func() tea.Msg {
		results, err := searcher.Search(ctx, query, limit)
		return ResultsMsg{Generation: gen, Query: query, Results: results, Err: err}
	}
}

// Apply installs a finished search if it is still the latest one and reports
// whether it did. Results of superseded searches are dropped. A failed search
// shows as an empty list.
func (c *Controller) Apply(msg ResultsMsg) bool {
	if msg.Generation != c.state.Generation {
		c.logger.Debug("discarding stale results", "query", msg.Query, "generation", msg.Generation, "current", c.state.Generation)
		c.publish(domain.ResultsDiscardedEvent{Query: msg.Query, Generation: msg.Generation, Current: c.state.Generation})
		return false
	}

	c.pending = false
	if msg.Err != nil {
		c.err = msg.Err
		c.state.Results = nil
		c.logger.Error("search failed", "query", msg.Query, "err", msg.Err)
		c.publish(domain.SearchFailedEvent{Query: msg.Query, Err: msg.Err})
	} else {
		c.err = nil
		c.state.Results = slices.Clone(msg.Results)
	}

	// Navigation over the previous list may have moved the highlight.
	c.state.ActiveIndex = NoSelection
	c.display = c.state.RawText

	c.render()
	c.publish(domain.ResultsAppliedEvent{Query: msg.Query, Generation: msg.Generation, Count: len(c.state.Results)})
	return true
}
