package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"selectsearch/internal/host"
	"selectsearch/internal/ui/theme"
)

const maxVisibleSuggestions = 5

// View renders the widget: chips (chip mode), the scratch field, and the
// suggestion list for the current text. The host control itself stays
// hidden while attached.
func (w *SearchSelect) View() string {
	if w.destroyed {
		return ""
	}

	var b strings.Builder

	if w.cfg.multiple {
		if chips := w.chips.View(); chips != "" {
			b.WriteString(chips)
			b.WriteString("\n")
		}
	}

	inputStyle := styleScratchInput().Width(w.cfg.width - 2)
	if w.focused {
		inputStyle = styleScratchInputFocused().Width(w.cfg.width - 2)
	}
	b.WriteString(inputStyle.Render(w.input.View()))

	if w.focused && w.input.Value() != "" && !w.chips.InNavigationMode() {
		if list := w.renderSuggestions(); list != "" {
			b.WriteString("\n")
			b.WriteString(list)
		}
	}

	return b.String()
}

// renderSuggestions lists the suggestion entries matching the scratch text,
// fuzzy-ranked, with a scrolled window of at most maxVisibleSuggestions.
func (w *SearchSelect) renderSuggestions() string {
	text := strings.ToLower(w.input.Value())
	var matching []host.DatalistEntry
	for _, entry := range w.list.Entries {
		if strings.Contains(strings.ToLower(entry.Label), text) {
			matching = append(matching, entry)
		}
	}
	if len(matching) == 0 {
		return styleSuggestionNoMatch().Render("  No matches")
	}
	matching = rankSuggestions(matching, w.input.Value())

	end := len(matching)
	if end > maxVisibleSuggestions {
		end = maxVisibleSuggestions
	}

	var b strings.Builder
	for i := 0; i < end; i++ {
		entry := matching[i]
		if i == 0 {
			b.WriteString(styleSuggestionFirst().Render("▸ " + entry.Label))
		} else {
			b.WriteString(styleSuggestionItem().Render("  " + entry.Label))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	if end < len(matching) {
		b.WriteString("\n")
		b.WriteString(styleSuggestionHint().Render("  ▼ more below"))
	}
	return b.String()
}

// Widget styles

func styleScratchInput() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().BorderDim()).
		Padding(0, 1)
}

func styleScratchInputFocused() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().Secondary()).
		Padding(0, 1)
}

func styleSuggestionItem() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Text()).
		PaddingLeft(2)
}

func styleSuggestionFirst() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Secondary()).
		Bold(true).
		PaddingLeft(1)
}

func styleSuggestionNoMatch() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().BorderNormal()).
		Italic(true)
}

func styleSuggestionHint() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted())
}
