// Demo program to visually test a multi-select SearchSelect field with
// chips, chip navigation, and mouse swipe removal
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

func boolPtr(b bool) *bool { return &b }

type model struct {
	sel    *host.Select
	widget *ui.SearchSelect
	log    []string
}

func initialModel() *model {
	sel := host.NewSelect("labels", options.Static(
		options.Pair{Value: "1", Label: "backend"},
		options.Pair{Value: "2", Label: "frontend"},
		options.Pair{Value: "3", Label: "api"},
		options.Pair{Value: "4", Label: "urgent"},
		options.Pair{Value: "5", Label: "bug"},
		options.Pair{Value: "6", Label: "feature"},
		options.Pair{Value: "7", Label: "security"},
		options.Pair{Value: "8", Label: "performance"},
	)...)
	sel.Multiple = true
	sel.Required = true

	m := &model{sel: sel}
	m.widget = ui.Attach(sel, ui.Config{
		DebounceInterval:    200 * time.Millisecond,
		Multiple:            boolPtr(true),
		Placeholder:         "Type to add a label...",
		SwipeOffset:         8,
		SwipeAnimationSpeed: 200 * time.Millisecond,
		Width:               50,
	})
	sel.OnChange(func(s *host.Select) {
		m.addLog(fmt.Sprintf("change: %v", s.SelectedValues()))
	})
	return m
}

func (m *model) addLog(entry string) {
	m.log = append(m.log, entry)
	if len(m.log) > 8 {
		m.log = m.log[1:]
	}
}

func (m *model) Init() tea.Cmd {
	return m.widget.Focus()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.ChipRemovedMsg:
		m.addLog(fmt.Sprintf("removed: [%s]", msg.Label))

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

	modeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)

func (m *model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("SearchSelect Demo (multi)"))
	s.WriteString("\n\n")

	mode := "INPUT"
	if chip, ok := m.widget.FocusedChip(); ok {
		mode = "CHIP NAV [" + chip.Label + "]"
	}
	s.WriteString(fmt.Sprintf("Mode: %s  Chips: %d  Required input: %v\n\n",
		modeStyle.Render(mode), m.widget.ChipCount(), m.widget.InputRequired()))

	s.WriteString(labelStyle.Render("LABELS"))
	s.WriteString("\n")
	s.WriteString(m.widget.View())
	s.WriteString("\n")

	if chips := m.widget.ChipLabels(); len(chips) > 0 {
		s.WriteString(labelStyle.Render("Selected: " + strings.Join(chips, ", ")))
		s.WriteString("\n")
	}

	if m.widget.InChipNavMode() {
		s.WriteString(helpStyle.Render("←/→ navigate • Backspace delete • letter/Esc exit"))
	} else {
		s.WriteString(helpStyle.Render("type to search • Enter/Tab commit • ← chip nav • swipe to delete • ctrl+r reset • ctrl+c quit"))
	}
	s.WriteString("\n")

	if len(m.log) > 0 {
		s.WriteString("\n")
		for _, entry := range m.log {
			s.WriteString(labelStyle.Render("  " + entry))
			s.WriteString("\n")
		}
	}

	return s.String()
}

func main() {
	theme.SetTheme(theme.DefaultName())
	p := tea.NewProgram(initialModel(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v", err)
		os.Exit(1)
	}
}
