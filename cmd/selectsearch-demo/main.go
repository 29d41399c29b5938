// Demo program to visually test a single-select SearchSelect field
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"selectsearch/internal/host"
	"selectsearch/internal/options"
	"selectsearch/internal/ui"
	"selectsearch/internal/ui/theme"
)

type model struct {
	sel    *host.Select
	widget *ui.SearchSelect
	log    []string
}

func initialModel() *model {
	sel := host.NewSelect("country", options.Static(
		options.Pair{Value: "", Label: "Select a country..."},
		options.Pair{Value: "de", Label: "Germany"},
		options.Pair{Value: "fr", Label: "France"},
		options.Pair{Value: "it", Label: "Italy"},
		options.Pair{Value: "es", Label: "Spain"},
		options.Pair{Value: "pt", Label: "Portugal"},
		options.Pair{Value: "nl", Label: "Netherlands"},
	)...)
	sel.Required = true

	m := &model{sel: sel}
	m.widget = ui.Attach(sel, ui.Config{
		DebounceInterval: 200 * time.Millisecond,
		Width:            50,
	})
	sel.OnChange(func(s *host.Select) {
		m.log = append(m.log, fmt.Sprintf("change: %v", s.SelectedValues()))
	})
	return m
}

func (m *model) Init() tea.Cmd {
	return m.widget.Focus()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+r":
			return m, m.widget.ResetValue()
		}
	}
	return m, m.widget.Update(msg)
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)

func (m *model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("SearchSelect Demo (single)"))
	s.WriteString("\n\n")

	s.WriteString(labelStyle.Render("COUNTRY"))
	s.WriteString("\n")
	s.WriteString(m.widget.View())
	s.WriteString("\n")

	selected := m.sel.SelectedValues()
	if len(selected) > 0 {
		label := m.sel.LabelFor(selected[0])
		s.WriteString(labelStyle.Render(fmt.Sprintf("Selected: %s (%s)", label, selected[0])))
		s.WriteString("\n")
	}

	s.WriteString(helpStyle.Render("type to search • Enter/Tab commit • Backspace clear • ctrl+r reset • ctrl+c quit"))
	s.WriteString("\n")

	if len(m.log) > 0 {
		s.WriteString("\n")
		for _, entry := range tail(m.log, 5) {
			s.WriteString(labelStyle.Render("  " + entry))
			s.WriteString("\n")
		}
	}

	return s.String()
}

func tail(entries []string, n int) []string {
	if len(entries) <= n {
		return entries
	}
	return entries[len(entries)-n:]
}

func main() {
	theme.SetTheme(theme.DefaultName())
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v", err)
		os.Exit(1)
	}
}
