// Showcase program for the SearchSelect widget: a single-select and a
// multi-select field side by side, with an optional SQLite-backed async
// provider feeding the multi-select.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"selectsearch/internal/config"
	"selectsearch/internal/debug"
	"selectsearch/internal/host"
	"selectsearch/internal/options"
	"selectsearch/internal/ui"
	"selectsearch/internal/ui/theme"
)

const helpMarkdown = `# SearchSelect

Type to search. A match is committed after the debounce interval, or
immediately with **Enter** / **Tab** (substring match).

| Key | Action |
|-----|--------|
| Shift+Tab | Switch field |
| Left | Enter chip navigation (multi, empty input) |
| Backspace | Clear committed value (single) / delete chip (nav mode) |
| Ctrl+Y | Copy selection to clipboard |
| Ctrl+T | Cycle theme |
| Ctrl+H | Toggle this help |
| Ctrl+C | Quit |
`

type field struct {
	name   string
	sel    *host.Select
	widget *ui.SearchSelect
}

type showcase struct {
	fields   []field
	focus    int
	log      []string
	help     string
	showHelp bool
	width    int
}

func boolPtr(b bool) *bool { return &b }

func newShowcase(debounce time.Duration, swipeOffset int, swipeAnim time.Duration, provider ui.AsyncProvider) *showcase {
	priority := host.NewSelect("priority", options.Static(
		options.Pair{Value: "", Label: "Select priority..."},
		options.Pair{Value: "0", Label: "Critical"},
		options.Pair{Value: "1", Label: "High"},
		options.Pair{Value: "2", Label: "Medium"},
		options.Pair{Value: "3", Label: "Low"},
	)...)
	priority.Required = true

	labels := host.NewSelect("labels", options.Static(
		options.Pair{Value: "1", Label: "backend"},
		options.Pair{Value: "2", Label: "frontend"},
		options.Pair{Value: "3", Label: "urgent"},
		options.Pair{Value: "4", Label: "bug"},
		options.Pair{Value: "5", Label: "feature"},
		options.Pair{Value: "6", Label: "security"},
	)...)
	labels.Multiple = true

	sc := &showcase{width: 60, help: renderHelp(60)}

	addField := func(name string, sel *host.Select, cfg ui.Config) {
		w := ui.Attach(sel, cfg)
		sel.OnChange(func(s *host.Select) {
			sc.addLog(fmt.Sprintf("%s changed: %s", name, formatSelection(w.Values())))
		})
		sc.fields = append(sc.fields, field{name: name, sel: sel, widget: w})
	}

	addField("priority", priority, ui.Config{
		DebounceInterval:    debounce,
		Placeholder:         "Type a priority...",
		SwipeOffset:         swipeOffset,
		SwipeAnimationSpeed: swipeAnim,
		Width:               50,
	})
	addField("labels", labels, ui.Config{
		DebounceInterval:    debounce,
		Multiple:            boolPtr(true),
		Placeholder:         "Type a label...",
		SwipeOffset:         swipeOffset,
		SwipeAnimationSpeed: swipeAnim,
		AsyncProvider:       provider,
		Width:               50,
	})

	return sc
}

func (m *showcase) addLog(entry string) {
	m.log = append(m.log, entry)
	if len(m.log) > 8 {
		m.log = m.log[1:]
	}
}

// formatSelection renders a value->label map as a stable comma list.
func formatSelection(values map[string]string) string {
	if len(values) == 0 {
		return "(none)"
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, values[k]))
	}
	return strings.Join(parts, ", ")
}

func renderHelp(width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := renderer.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}

func (m *showcase) focused() *field {
	return &m.fields[m.focus]
}

func (m *showcase) switchFocus() tea.Cmd {
	m.focused().widget.Blur()
	m.focus = (m.focus + 1) % len(m.fields)
	return m.focused().widget.Focus()
}

func (m *showcase) Init() tea.Cmd {
	return m.focused().widget.Focus()
}

func (m *showcase) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help = renderHelp(minInt(msg.Width, 70))
		return m, nil

	case ui.ProviderErrorMsg:
		m.addLog(fmt.Sprintf("provider error for %q: %v", msg.Query, msg.Err))
		return m, nil

	case ui.ChipRemovedMsg:
		m.addLog(fmt.Sprintf("removed chip: %s", msg.Label))

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "shift+tab":
			return m, m.switchFocus()
		case "ctrl+h":
			m.showHelp = !m.showHelp
			return m, nil
		case "ctrl+t":
			name := theme.CycleTheme()
			if err := config.SaveTheme(name); err != nil {
				m.addLog(fmt.Sprintf("save theme: %v", err))
			}
			m.addLog("theme: " + name)
			return m, nil
		case "ctrl+y":
			f := m.focused()
			text := formatSelection(f.widget.Values())
			if err := clipboard.WriteAll(text); err != nil {
				m.addLog(fmt.Sprintf("clipboard: %v", err))
			} else {
				m.addLog(fmt.Sprintf("copied %s selection", f.name))
			}
			return m, nil
		}
	}

	return m, m.focused().widget.Update(msg)
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle = lipgloss.NewStyle().Faint(true)
	logStyle   = lipgloss.NewStyle().Faint(true).MarginTop(1)
)

func (m *showcase) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Foreground(theme.Current().Primary()).Render("SearchSelect Showcase"))
	s.WriteString("\n\n")

	for i := range m.fields {
		f := &m.fields[i]
		marker := "  "
		if i == m.focus {
			marker = "> "
		}
		s.WriteString(labelStyle.Render(marker + strings.ToUpper(f.name)))
		s.WriteString("\n")
		s.WriteString(f.widget.View())
		s.WriteString("\n")
	}

	s.WriteString(labelStyle.Render("shift+tab switch • ctrl+y copy • ctrl+t theme • ctrl+h help • ctrl+c quit"))
	s.WriteString("\n")

	if m.showHelp {
		s.WriteString(m.help)
	}

	if len(m.log) > 0 {
		s.WriteString(logStyle.Render("Log:"))
		s.WriteString("\n")
		for _, entry := range m.log {
			s.WriteString(logStyle.Render("  " + entry))
			s.WriteString("\n")
		}
	}

	return s.String()
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func main() {
	if err := config.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load configuration: %v\n", err)
	}

	debounceDefault := config.GetInt(config.KeyDebounceMS)
	swipeOffsetDefault := config.GetInt(config.KeySwipeOffset)
	swipeAnimDefault := config.GetInt(config.KeySwipeAnimationMS)
	dbPathDefault := config.GetString(config.KeyDatabasePath)
	themeDefault := config.GetString(config.KeyTheme)

	debounceFlag := flag.Int("debounce-ms", debounceDefault, "Keystroke debounce in milliseconds")
	swipeOffsetFlag := flag.Int("swipe-offset", swipeOffsetDefault, "Swipe distance (cells) that deletes a chip")
	swipeAnimFlag := flag.Int("swipe-animation-ms", swipeAnimDefault, "Chip removal animation duration in milliseconds")
	dbPathFlag := flag.String("db-path", dbPathDefault, "SQLite database providing async options (empty disables)")
	themeFlag := flag.String("theme", themeDefault, "Color theme (empty picks one from the terminal background)")
	debugFlag := flag.Bool("debug", false, "Write debug output to the log file")
	flag.Parse()

	visited := map[string]struct{}{}
	flag.CommandLine.Visit(func(f *flag.Flag) {
		visited[f.Name] = struct{}{}
	})
	overrides := map[string]any{}
	if _, ok := visited["debounce-ms"]; ok {
		overrides[config.KeyDebounceMS] = *debounceFlag
	}
	if _, ok := visited["theme"]; ok {
		overrides[config.KeyTheme] = *themeFlag
	}
	if err := config.ApplyOverrides(overrides); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to apply overrides: %v\n", err)
	}

	themeName := *themeFlag
	if themeName == "" {
		themeName = theme.DefaultName()
	}
	if !theme.SetTheme(themeName) {
		fmt.Fprintf(os.Stderr, "Warning: unknown theme %q\n", themeName)
	}

	if err := debug.Init(*debugFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize debug log: %v\n", err)
	}
	defer debug.Close()

	var provider ui.AsyncProvider
	if *dbPathFlag != "" {
		p, err := options.NewSQLiteProvider(*dbPathFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		provider = p.Provider()
	}

	m := newShowcase(
		time.Duration(*debounceFlag)*time.Millisecond,
		*swipeOffsetFlag,
		time.Duration(*swipeAnimFlag)*time.Millisecond,
		provider,
	)

	prog := tea.NewProgram(m, tea.WithMouseCellMotion())
	if _, err := prog.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
