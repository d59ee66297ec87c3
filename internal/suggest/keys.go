package suggest

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Action is a logical navigation command, independent of physical keys.
type Action int

const (
	ActionNone Action = iota
	ActionPrevious
	ActionNext
	ActionConfirm
	ActionCancel
)

func (a Action) String() string {
	switch a {
	case ActionPrevious:
		return "previous"
	case ActionNext:
		return "next"
	case ActionConfirm:
		return "confirm"
	case ActionCancel:
		return "cancel"
	default:
		return "none"
	}
}

// KeyMap binds keys to actions.
type KeyMap struct {
	Previous key.Binding
	Next     key.Binding
	Confirm  key.Binding
	Cancel   key.Binding
}

// DefaultKeyMap returns arrow-key navigation, enter to confirm, esc to cancel.
func DefaultKeyMap() KeyMap {
	return NewKeyMap(
		[]string{"up", "ctrl+p"},
		[]string{"down", "ctrl+n"},
		[]string{"enter"},
		[]string{"esc"},
	)
}

// NewKeyMap builds a KeyMap from key names as bubbletea spells them.
func NewKeyMap(previous, next, confirm, cancel []string) KeyMap {
	return KeyMap{
		Previous: binding(previous, "previous"),
		Next:     binding(next, "next"),
		Confirm:  binding(confirm, "confirm"),
		Cancel:   binding(cancel, "cancel"),
	}
}

func binding(keys []string, desc string) key.Binding {
	helpKey := ""
	if len(keys) > 0 {
		helpKey = glyph(keys[0])
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(helpKey, desc))
}

func glyph(k string) string {
	switch k {
	case "up":
		return "↑"
	case "down":
		return "↓"
	case "enter":
		return "⏎"
	default:
		return k
	}
}

// Resolve maps a key press to its action. ActionNone means the key is not
// bound and belongs to the text field.
func (k KeyMap) Resolve(msg tea.KeyMsg) Action {
	switch {
	case key.Matches(msg, k.Previous):
		return ActionPrevious
	case key.Matches(msg, k.Next):
		return ActionNext
	case key.Matches(msg, k.Confirm):
		return ActionConfirm
	case key.Matches(msg, k.Cancel):
		return ActionCancel
	}
	return ActionNone
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Previous, k.Next, k.Confirm, k.Cancel}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Previous, k.Next}, {k.Confirm, k.Cancel}}
}
