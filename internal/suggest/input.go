package suggest

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"suggest/internal/domain"
	"suggest/internal/ui/services/events"
	"suggest/internal/ui/views"
)

const (
	defaultWidth       = 60
	defaultPlaceholder = "Start typing..."
	prompt             = "❯ "
)

// Input is the mounted, visible side of a Controller: a text field with the
// suggestion list underneath. It occupies Height() rows starting at its
// origin; pointer presses outside that area cancel the interaction.
type Input struct {
	ctrl   *Controller
	text   textinput.Model
	keys   KeyMap
	styles *views.Styles
	width  int
	x, y   int

	// Last snapshot handed to Render
	results []domain.Suggestion
	active  int

	release func()
}

// InputOption configures an Input.
type InputOption func(*Input)

// WithKeyMap replaces the default key bindings.
func WithKeyMap(k KeyMap) InputOption {
	return func(in *Input) { in.keys = k }
}

// WithPlaceholder sets the text shown while the field is empty.
func WithPlaceholder(p string) InputOption {
	return func(in *Input) { in.text.Placeholder = p }
}

// WithWidth sets the width in cells.
func WithWidth(w int) InputOption {
	return func(in *Input) { in.SetWidth(w) }
}

// WithStyles replaces the default styles.
func WithStyles(s *views.Styles) InputOption {
	return func(in *Input) { in.styles = s }
}

// Mount creates the visible input for c and subscribes it to pointer presses
// on bus. The subscription lasts until Close. bus may be nil when pointer
// input is not wanted.
func (c *Controller) Mount(bus events.EventBus, opts ...InputOption) *Input {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = defaultPlaceholder
	ti.SetValue(c.Display())
	ti.Focus()

	in := &Input{
		ctrl:    c,
		text:    ti,
		keys:    DefaultKeyMap(),
		styles:  views.NewStyles(),
		active:  NoSelection,
		release: func() {},
	}
	in.SetWidth(defaultWidth)
	for _, opt := range opts {
		opt(in)
	}
	in.text.PromptStyle = in.styles.Prompt
	in.text.PlaceholderStyle = in.styles.Placeholder

	c.renderer = in
	c.render()

	if bus != nil {
		in.release = bus.Subscribe(events.PointerPressedType, in.onPointer)
	}
	return in
}

// Close releases the pointer subscription and detaches from the controller.
// Calling it again is harmless.
func (in *Input) Close() {
	in.release()
	in.release = func() {}
	if in.ctrl.renderer == Renderer(in) {
		in.ctrl.renderer = nopRenderer{}
	}
	in.text.Blur()
}

// Controller returns the controller behind the input.
func (in *Input) Controller() *Controller {
	return in.ctrl
}

// Render implements Renderer.
func (in *Input) Render(results []domain.Suggestion, active int) {
	in.results = results
	in.active = active
}

// Init starts the cursor blinking.
func (in *Input) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles keys and search results. Keys bound in the KeyMap are
// consumed here and never reach the text field.
func (in *Input) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ResultsMsg:
		in.ctrl.Apply(msg)
		in.sync()
		return nil

	case tea.KeyMsg:
		if a := in.keys.Resolve(msg); a != ActionNone {
			cmd := in.ctrl.Dispatch(a)
			in.sync()
			return cmd
		}

		before := in.text.Value()
		var cmd tea.Cmd
		in.text, cmd = in.text.Update(msg)
		if after := in.text.Value(); after != before {
			return tea.Batch(cmd, in.ctrl.OnTextChanged(after))
		}
		return cmd
	}

	var cmd tea.Cmd
	in.text, cmd = in.text.Update(msg)
	return cmd
}

// View renders the field and, when there are results, the list below it.
func (in *Input) View() string {
	field := in.text.View()
	list := views.RenderSuggestions(in.styles, in.results, in.active, in.width)
	if list == "" {
		return field
	}
	return field + "\n" + list
}

// Value returns the text currently in the field.
func (in *Input) Value() string {
	return in.text.Value()
}

// KeyMap returns the active bindings, for help rendering.
func (in *Input) KeyMap() KeyMap {
	return in.keys
}

// SetOrigin tells the input where its top-left cell is on screen.
func (in *Input) SetOrigin(x, y int) {
	in.x, in.y = x, y
}

// SetWidth sets the width in cells.
func (in *Input) SetWidth(w int) {
	if w < len(prompt)+1 {
		w = len(prompt) + 1
	}
	in.width = w
	in.text.Width = w - 2 - 1
}

// Height is the number of rows the input currently occupies.
func (in *Input) Height() int {
	return 1 + len(in.results)
}

// Contains reports whether screen cell (x, y) lies inside the input.
func (in *Input) Contains(x, y int) bool {
	return x >= in.x && x < in.x+in.width && y >= in.y && y < in.y+in.Height()
}

// Focus gives the text field keyboard focus.
func (in *Input) Focus() tea.Cmd {
	return in.text.Focus()
}

// Blur removes keyboard focus from the text field.
func (in *Input) Blur() {
	in.text.Blur()
}

func (in *Input) onPointer(e interface{}) {
	p, ok := e.(events.PointerPressed)
	if !ok {
		return
	}

	if !in.Contains(p.X, p.Y) {
		in.ctrl.Cancel()
		in.sync()
		return
	}

	// Rows below the field map to results as rendered
	if row := p.Y - in.y - 1; row >= 0 && row < len(in.results) {
		in.ctrl.Select(row)
		in.sync()
	}
}

// sync copies the controller's display text into the field.
func (in *Input) sync() {
	if in.text.Value() != in.ctrl.Display() {
		in.text.SetValue(in.ctrl.Display())
		in.text.CursorEnd()
	}
}
