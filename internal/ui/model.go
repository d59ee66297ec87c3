package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"suggest/internal/config"
	"suggest/internal/eventbus"
	"suggest/internal/logging"
	"suggest/internal/search"
	"suggest/internal/suggest"
	"suggest/internal/ui/services/events"
	"suggest/internal/ui/views"
)

const (
	appTitle        = "suggest"
	statusClearTime = 3 * time.Second
)

// Model is the top-level program: a single suggest input plus a status and
// help line.
type Model struct {
	config *config.Config
	styles *views.Styles

	ctrl    *suggest.Controller
	input   *suggest.Input
	pointer *events.Bus
	keys    hostKeys
	help    help.Model

	width  int
	height int
	status string

	// Texts committed during the current Update, drained at its end
	committed []string
	last      string
	hasLast   bool

	exitOnAction bool
	notify       Notifier
	copy         Copier

	program *tea.Program
}

// Option configures a Model
type Option func(*Model)

// WithExitOnAction quits after the first committed action
func WithExitOnAction() Option {
	return func(m *Model) { m.exitOnAction = true }
}

// WithNotifier replaces the desktop notifier
func WithNotifier(n Notifier) Option {
	return func(m *Model) { m.notify = n }
}

// WithCopier replaces the clipboard writer
func WithCopier(c Copier) Option {
	return func(m *Model) { m.copy = c }
}

// NewModel creates the UI model. Domain events go to bus, which may be nil.
func NewModel(ctx context.Context, cfg *config.Config, searcher search.Searcher, bus eventbus.EventBus, opts ...Option) *Model {
	m := &Model{
		config:  cfg,
		styles:  views.NewStyles(),
		pointer: events.NewBus(),
		keys:    defaultHostKeys(),
		help:    help.New(),
		notify:  defaultNotifier,
		copy:    defaultCopier,
	}
	for _, opt := range opts {
		opt(m)
	}

	ctrlOpts := []suggest.Option{
		suggest.WithLimit(cfg.Search.Limit),
		suggest.WithLogger(logging.Logger),
		suggest.WithContext(ctx),
	}
	if bus != nil {
		ctrlOpts = append(ctrlOpts, suggest.WithPublisher(bus))
	}
	m.ctrl = suggest.New(searcher, m.onAction, ctrlOpts...)

	keyMap := suggest.NewKeyMap(cfg.Keys.Previous, cfg.Keys.Next, cfg.Keys.Confirm, cfg.Keys.Cancel)
	m.input = m.ctrl.Mount(m.pointer,
		suggest.WithKeyMap(keyMap),
		suggest.WithPlaceholder(cfg.UI.Placeholder),
		suggest.WithWidth(cfg.UI.Width),
		suggest.WithStyles(m.styles),
	)
	m.input.SetOrigin(
		m.styles.Main.GetPaddingLeft(),
		m.styles.Main.GetPaddingTop()+lipgloss.Height(m.styles.Title.Render(appTitle)),
	)

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

// LastAction returns the text of the most recent final commit
func (m *Model) LastAction() (string, bool) {
	return m.last, m.hasLast
}

// Close releases the input's subscriptions
func (m *Model) Close() {
	m.input.Close()
}

func (m *Model) onAction(text string) {
	m.committed = append(m.committed, text)
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return m.input.Init()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.SetWidth(m.inputWidth())

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Keys):
			return m, m.showKeysInPager()
		}
		cmd = m.input.Update(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.pointer.Publish(events.PointerPressed{X: msg.X, Y: msg.Y})
		}

	case suggest.ResultsMsg:
		if msg.Generation == m.ctrl.State().Generation {
			m.status = ""
		}
		cmd = m.input.Update(msg)

	case actionDoneMsg:
		if msg.err != nil {
			logging.Warn("action side effects failed", "text", msg.text, "err", msg.err)
		}
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			logging.Warn("key reference pager failed", "err", msg.err)
		}
		return m, nil

	case clearStatusMsg:
		m.status = ""
		return m, nil

	default:
		cmd = m.input.Update(msg)
	}

	return m, tea.Batch(cmd, m.drainActions())
}

// drainActions turns commits made during this Update into status changes
// and side effects.
func (m *Model) drainActions() tea.Cmd {
	if len(m.committed) == 0 {
		return nil
	}

	var cmds []tea.Cmd
	for _, text := range m.committed {
		logging.Info("action", "text", text)
		m.last, m.hasLast = text, true
		m.status = actionMessage(text)
		cmds = append(cmds, m.runActionEffects(text))
	}
	m.committed = m.committed[:0]

	if m.exitOnAction {
		return tea.Sequence(tea.Batch(cmds...), tea.Quit)
	}
	cmds = append(cmds, tea.Tick(statusClearTime, func(time.Time) tea.Msg { return clearStatusMsg{} }))
	return tea.Batch(cmds...)
}

func (m *Model) inputWidth() int {
	w := m.config.UI.Width
	if avail := m.width - m.styles.Main.GetHorizontalPadding(); m.width > 0 && avail < w {
		w = avail
	}
	return w
}

func (m *Model) helpKeys() helpKeyMap {
	return helpKeyMap{input: m.input.KeyMap(), host: m.keys}
}

// View renders the UI
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(appTitle))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	if status := m.statusLine(); status != "" {
		b.WriteString(status)
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Help.Render(m.help.View(m.helpKeys())))
	return m.styles.Main.Render(b.String())
}

func (m *Model) statusLine() string {
	switch {
	case m.ctrl.Pending():
		return m.styles.StatusLoading.Render("searching…")
	case m.status != "":
		return m.styles.StatusSuccess.Render(m.status)
	case m.ctrl.Err() != nil:
		return m.styles.StatusError.Render(m.ctrl.Err().Error())
	}
	return ""
}
