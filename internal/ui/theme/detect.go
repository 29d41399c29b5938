package theme

import "github.com/muesli/termenv"

// DarkBackground reports whether the terminal background is dark. Themes use
// lipgloss.AdaptiveColor throughout, so this only matters for picking a
// default theme per background.
func DarkBackground() bool {
	return termenv.HasDarkBackground()
}

// DefaultName returns the theme to use when none is configured, chosen from
// the terminal background.
func DefaultName() string {
	return defaultNameFor(DarkBackground())
}

func defaultNameFor(dark bool) string {
	if dark {
		return "tokyonight"
	}
	return "github"
}
