package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"cropprices/internal/ui/input/types"
)

// RenderHelpContent generates the full help text shown in the pager
func RenderHelpContent(keys types.KeyMap) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	help.WriteString(titleStyle.Render("cropprices Help"))
	help.WriteString("\n")

	section := func(title string, bindings ...key.Binding) {
		help.WriteString(sectionStyle.Render(title))
		help.WriteString("\n")
		for _, b := range bindings {
			h := b.Help()
			if h.Key == "" {
				continue
			}
			help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(h.Key), descStyle.Render(h.Desc)))
		}
		help.WriteString("\n")
	}

	section("Navigation", keys.Up, keys.Down, keys.Left, keys.Right, keys.Home, keys.End)
	section("Prices", keys.Select, keys.Back)
	section("Search", keys.Filter)
	help.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).Render("  Typing narrows the grid as you go. enter keeps the search, esc clears it."))
	help.WriteString("\n")
	section("Other", keys.Help, keys.HelpPager, keys.Quit)

	return strings.TrimRight(help.String(), "\n")
}

// helpPager runs the ov pager over the help text. It satisfies tea.ExecCommand
// so Bubble Tea releases the terminal while ov owns it.
type helpPager struct {
	content string
}

func (p *helpPager) SetStdin(io.Reader)  {}
func (p *helpPager) SetStdout(io.Writer) {}
func (p *helpPager) SetStderr(io.Writer) {}

func (p *helpPager) Run() error {
	root, err := oviewer.NewRoot(strings.NewReader(p.content))
	if err != nil {
		return err
	}

	// Do not leave the help text on the screen after exit
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// showHelpPager returns a command that shows the full help in ov
func showHelpPager(keys types.KeyMap) tea.Cmd {
	return tea.Exec(&helpPager{content: RenderHelpContent(keys)}, func(err error) tea.Msg {
		return helpPagerMsg{err: err}
	})
}
