// Package theme provides a semantic color system for the selectsearch widgets.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the 16 semantic colors for the widget UI.
// All methods return AdaptiveColor for automatic light/dark terminal support.
type Theme interface {
	// Base colors
	Primary() lipgloss.AdaptiveColor   // Main accent (titles, emphasis)
	Secondary() lipgloss.AdaptiveColor // Secondary accent (focused borders, first suggestion)
	Accent() lipgloss.AdaptiveColor    // Highlights

	// Status colors
	Error() lipgloss.AdaptiveColor   // Errors, destructive actions
	Warning() lipgloss.AdaptiveColor // Warnings, duplicate-chip flash
	Success() lipgloss.AdaptiveColor // Confirmations
	Info() lipgloss.AdaptiveColor    // Chip fill, informational highlights

	// Text colors
	Text() lipgloss.AdaptiveColor          // Primary text
	TextMuted() lipgloss.AdaptiveColor     // De-emphasized text, leaving chips
	TextEmphasized() lipgloss.AdaptiveColor // Bold/important text

	// Background colors
	Background() lipgloss.AdaptiveColor          // Main background
	BackgroundSecondary() lipgloss.AdaptiveColor // Focused chips, elevated surfaces
	BackgroundDarker() lipgloss.AdaptiveColor    // Badges

	// Border colors
	BorderNormal() lipgloss.AdaptiveColor  // Default borders
	BorderFocused() lipgloss.AdaptiveColor // Active/focused borders
	BorderDim() lipgloss.AdaptiveColor     // Subtle borders
}
