package ui

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"
)

const notifyTitle = "suggest"

// Notifier raises a desktop notification
type Notifier func(title, message string) error

// Copier puts text on the system clipboard
type Copier func(text string) error

func defaultNotifier(title, message string) error {
	return beeep.Notify(title, message, "")
}

func defaultCopier(text string) error {
	return clipboard.WriteAll(text)
}

// actionMessage is what the user sees for a committed action
func actionMessage(text string) string {
	return "Search: " + text
}

// runActionEffects returns a command performing the configured side effects
// of a committed action, or nil when there are none.
func (m *Model) runActionEffects(text string) tea.Cmd {
	notify := m.config.UI.NotifyOnAction && m.notify != nil
	copyText := m.config.UI.CopyOnAction && m.copy != nil
	if !notify && !copyText {
		return nil
	}

	notifier, copier := m.notify, m.copy
	return func() tea.Msg {
		var errs []error
		if notify {
			if err := notifier(notifyTitle, actionMessage(text)); err != nil {
				errs = append(errs, fmt.Errorf("notify: %w", err))
			}
		}
		if copyText {
			if err := copier(text); err != nil {
				errs = append(errs, fmt.Errorf("clipboard: %w", err))
			}
		}
		return actionDoneMsg{text: text, err: errors.Join(errs...)}
	}
}
