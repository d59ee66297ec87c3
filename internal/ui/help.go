package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"suggest/internal/suggest"
)

// hostKeys are the keys the host handles before the input sees them
type hostKeys struct {
	Quit key.Binding
	Keys key.Binding
}

func defaultHostKeys() hostKeys {
	return hostKeys{
		Quit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Keys: key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "keys")),
	}
}

// helpKeyMap joins the input's bindings with the host's for the help line
type helpKeyMap struct {
	input suggest.KeyMap
	host  hostKeys
}

func (h helpKeyMap) ShortHelp() []key.Binding {
	return append(h.input.ShortHelp(), h.host.Keys, h.host.Quit)
}

func (h helpKeyMap) FullHelp() [][]key.Binding {
	return append(h.input.FullHelp(), []key.Binding{h.host.Keys, h.host.Quit})
}

// renderKeyReference renders every binding, one per line, for the pager
func renderKeyReference(keys helpKeyMap) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	help.WriteString(titleStyle.Render("suggest keys"))
	help.WriteString("\n")

	sections := []struct {
		name     string
		bindings []key.Binding
	}{
		{"Suggestions", []key.Binding{keys.input.Previous, keys.input.Next, keys.input.Confirm, keys.input.Cancel}},
		{"Other", []key.Binding{keys.host.Keys, keys.host.Quit}},
	}

	for _, section := range sections {
		help.WriteString(sectionStyle.Render(section.name))
		help.WriteString("\n")
		for _, b := range section.bindings {
			help.WriteString(fmt.Sprintf("  %-16s %s\n",
				keyStyle.Render(strings.Join(b.Keys(), ", ")),
				descStyle.Render(b.Help().Desc)))
		}
	}

	help.WriteString("\n")
	help.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).
		Render("  Click a suggestion to pick it; click elsewhere to close the list."))

	return help.String()
}

// showInPager hands the terminal to ov until the user leaves it
func showInPager(program *tea.Program, content string) error {
	if program == nil {
		return fmt.Errorf("program not set")
	}

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Keep ov from writing to our screen on exit
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	if err := program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		time.Sleep(100 * time.Millisecond)
		_ = program.RestoreTerminal()
	}()

	return root.Run()
}

// showKeysInPager returns a command that shows the key reference in ov
func (m *Model) showKeysInPager() tea.Cmd {
	if m.program == nil {
		return nil
	}
	program := m.program
	content := renderKeyReference(m.helpKeys())
	return func() tea.Msg {
		return helpPagerMsg{err: showInPager(program, content)}
	}
}
