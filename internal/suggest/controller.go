package suggest

import (
	"context"
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"suggest/internal/domain"
	"suggest/internal/search"
)

// Renderer draws the suggestion list. It is called with a consistent snapshot
// every time the visible list or highlight changes.
type Renderer interface {
	Render(results []domain.Suggestion, active int)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(results []domain.Suggestion, active int)

// Render implements Renderer.
func (f RendererFunc) Render(results []domain.Suggestion, active int) { f(results, active) }

// Logger receives search failures and stale-result notices.
// *log.Logger from charmbracelet/log satisfies it.
type Logger interface {
	Debug(msg interface{}, keyvals ...interface{})
	Error(msg interface{}, keyvals ...interface{})
}

// Publisher receives domain events. eventbus.EventBus satisfies it.
type Publisher interface {
	Publish(event domain.DomainEvent)
}

type nopRenderer struct{}

func (nopRenderer) Render([]domain.Suggestion, int) {}

type nopLogger struct{}

func (nopLogger) Debug(interface{}, ...interface{}) {}
func (nopLogger) Error(interface{}, ...interface{}) {}

// Controller is the query controller and selection state machine of one input.
// It is not safe for concurrent use; drive it from a single event loop.
type Controller struct {
	state   InputState
	display string
	pending bool
	err     error

	searcher search.Searcher
	limit    int
	onAction func(text string)
	ctx      context.Context

	renderer Renderer
	logger   Logger
	events   Publisher
}

// Option configures a Controller.
type Option func(*Controller)

// WithLimit sets how many suggestions are requested per search.
func WithLimit(limit int) Option {
	return func(c *Controller) {
		if limit > 0 {
			c.limit = limit
		}
	}
}

// WithRenderer sets the renderer. Mount replaces it with the Input.
func WithRenderer(r Renderer) Option {
	return func(c *Controller) { c.renderer = r }
}

// WithLogger sets where search failures are reported.
func WithLogger(l Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithPublisher sets where domain events go.
func WithPublisher(p Publisher) Option {
	return func(c *Controller) { c.events = p }
}

// WithContext sets the context searches run under.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) { c.ctx = ctx }
}

// New creates a controller that searches with searcher and calls onAction
// once for every final commit. onAction may be nil.
func New(searcher search.Searcher, onAction func(text string), opts ...Option) *Controller {
	c := &Controller{
		state:    newInputState(),
		searcher: searcher,
		limit:    search.DefaultLimit,
		onAction: onAction,
		ctx:      context.Background(),
		renderer: nopRenderer{},
		logger:   nopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a copy of the current state.
func (c *Controller) State() InputState {
	s := c.state
	s.Results = slices.Clone(c.state.Results)
	return s
}

// Display returns the text the input field should show: the highlighted
// suggestion's title, or the raw text when nothing is highlighted.
func (c *Controller) Display() string {
	return c.display
}

// Pending reports whether the latest search has not completed yet.
func (c *Controller) Pending() bool {
	return c.pending
}

// Err returns the failure of the latest applied search, if any.
func (c *Controller) Err() error {
	return c.err
}

// Dispatch runs the transition for a logical action.
func (c *Controller) Dispatch(a Action) tea.Cmd {
	switch a {
	case ActionPrevious:
		return c.MovePrevious()
	case ActionNext:
		return c.MoveNext()
	case ActionConfirm:
		c.Confirm()
	case ActionCancel:
		c.Cancel()
	}
	return nil
}

func (c *Controller) render() {
	c.renderer.Render(c.state.Results, c.state.ActiveIndex)
}

func (c *Controller) publish(e domain.DomainEvent) {
	if c.events != nil {
		c.events.Publish(e)
	}
}
