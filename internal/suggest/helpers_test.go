package suggest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"suggest/internal/domain"
	"suggest/internal/search"
)

// fakeSearcher answers from a fixed table and records every call.
type fakeSearcher struct {
	mu      sync.Mutex
	answers map[string][]string
	fail    map[string]error
	calls   []string
}

func newFakeSearcher(answers map[string][]string) *fakeSearcher {
	return &fakeSearcher{answers: answers, fail: map[string]error{}}
}

func (f *fakeSearcher) Search(_ context.Context, query string, limit int) ([]domain.Suggestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, query)
	if err, ok := f.fail[query]; ok {
		return nil, err
	}
	var out []domain.Suggestion
	for _, title := range f.answers[query] {
		if len(out) == limit {
			break
		}
		out = append(out, domain.Suggestion{Title: title})
	}
	return out, nil
}

func (f *fakeSearcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type frame struct {
	titles []string
	active int
}

type recordingRenderer struct {
	frames []frame
}

func (r *recordingRenderer) Render(results []domain.Suggestion, active int) {
	r.frames = append(r.frames, frame{titles: domain.Titles(results), active: active})
}

func (r *recordingRenderer) last() frame {
	if len(r.frames) == 0 {
		return frame{active: NoSelection}
	}
	return r.frames[len(r.frames)-1]
}

type logEntry struct {
	level string
	msg   string
}

type recordingLogger struct {
	entries []logEntry
}

func (l *recordingLogger) Debug(msg interface{}, _ ...interface{}) {
	l.entries = append(l.entries, logEntry{"debug", fmt.Sprint(msg)})
}

func (l *recordingLogger) Error(msg interface{}, _ ...interface{}) {
	l.entries = append(l.entries, logEntry{"error", fmt.Sprint(msg)})
}

func (l *recordingLogger) count(level string) int {
	n := 0
	for _, e := range l.entries {
		if e.level == level {
			n++
		}
	}
	return n
}

type recordingPublisher struct {
	events []domain.DomainEvent
}

func (p *recordingPublisher) Publish(e domain.DomainEvent) {
	p.events = append(p.events, e)
}

func (p *recordingPublisher) types() []domain.EventType {
	out := make([]domain.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type())
	}
	return out
}

// harness bundles a controller with its fakes.
type harness struct {
	ctrl     *Controller
	searcher *fakeSearcher
	renderer *recordingRenderer
	logger   *recordingLogger
	events   *recordingPublisher
	actions  []string
}

func newHarness(answers map[string][]string, opts ...Option) *harness {
	h := &harness{
		searcher: newFakeSearcher(answers),
		renderer: &recordingRenderer{},
		logger:   &recordingLogger{},
		events:   &recordingPublisher{},
	}
	opts = append([]Option{
		WithRenderer(h.renderer),
		WithLogger(h.logger),
		WithPublisher(h.events),
	}, opts...)
	h.ctrl = New(h.searcher, func(text string) { h.actions = append(h.actions, text) }, opts...)
	return h
}

// typeAndApply types text and applies its results straight away.
func (h *harness) typeAndApply(t *testing.T, text string) {
	t.Helper()
	cmd := h.ctrl.OnTextChanged(text)
	require.NotNil(t, cmd)
	require.True(t, h.ctrl.Apply(results(t, cmd)))
}

// results runs a search command and returns its message.
func results(t *testing.T, cmd tea.Cmd) ResultsMsg {
	t.Helper()
	require.NotNil(t, cmd, "expected a search command")
	msg, ok := cmd().(ResultsMsg)
	require.True(t, ok, "expected ResultsMsg, got %T", msg)
	return msg
}

// collectResults runs cmd and any batched children, returning every
// ResultsMsg produced. Other messages are ignored.
func collectResults(cmd tea.Cmd) []ResultsMsg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case ResultsMsg:
		return []ResultsMsg{msg}
	case tea.BatchMsg:
		var out []ResultsMsg
		for _, c := range msg {
			out = append(out, collectResults(c)...)
		}
		return out
	}
	return nil
}

var errBackend = &search.Error{Backend: "fake", StatusCode: 503, Err: errors.New("unavailable")}
