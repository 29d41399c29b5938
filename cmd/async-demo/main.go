// Demo program to visually test the asynchronous provider path. Options
// come from a simulated slow directory, or from a SQLite database when
// -db-path is given.
package main

import (
	"context"
	"flag"
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

var directory = map[string]string{
	"u1": "Ada Lovelace",
	"u2": "Alan Turing",
	"u3": "Grace Hopper",
	"u4": "Edsger Dijkstra",
	"u5": "Barbara Liskov",
	"u6": "Donald Knuth",
}

// slowDirectory simulates a remote lookup with artificial latency.
func slowDirectory(ctx context.Context, query string) (map[string]string, error) {
	select {
	case <-time.After(400 * time.Millisecond):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	results := make(map[string]string)
	needle := strings.ToLower(query)
	for value, label := range directory {
		if strings.Contains(strings.ToLower(label), needle) {
			results[value] = label
		}
	}
	return results, nil
}

func boolPtr(b bool) *bool { return &b }

type model struct {
	sel    *host.Select
	widget *ui.SearchSelect
	log    []string
}

func initialModel(provider ui.AsyncProvider) *model {
	sel := host.NewSelect("assignees")
	sel.Multiple = true

	m := &model{sel: sel}
	m.widget = ui.Attach(sel, ui.Config{
		DebounceInterval: 200 * time.Millisecond,
		Multiple:         boolPtr(true),
		Placeholder:      "Search people...",
		AsyncProvider:    provider,
		Width:            50,
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
	case ui.ProviderErrorMsg:
		m.addLog(fmt.Sprintf("provider error for %q: %v", msg.Query, msg.Err))
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
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

	s.WriteString(titleStyle.Render("SearchSelect Demo (async provider)"))
	s.WriteString("\n\n")

	s.WriteString(labelStyle.Render("ASSIGNEES"))
	s.WriteString("\n")
	s.WriteString(m.widget.View())
	s.WriteString("\n")

	s.WriteString(labelStyle.Render(fmt.Sprintf("Known options: %d", len(m.widget.Store().Labels()))))
	s.WriteString("\n")

	s.WriteString(helpStyle.Render("type to search (results arrive async) • Enter/Tab commit • ctrl+c quit"))
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
	dbPath := flag.String("db-path", "", "SQLite database with an options table (empty uses the built-in directory)")
	flag.Parse()

	theme.SetTheme(theme.DefaultName())

	provider := ui.AsyncProvider(slowDirectory)
	if *dbPath != "" {
		p, err := options.NewSQLiteProvider(*dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		provider = p.Provider()
	}

	prog := tea.NewProgram(initialModel(provider))
	if _, err := prog.Run(); err != nil {
		fmt.Printf("Error: %v", err)
		os.Exit(1)
	}
}
