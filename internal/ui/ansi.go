package ui

import "github.com/charmbracelet/x/ansi"

// stripANSI removes styling sequences so tests and width math can look at
// the plain text of a rendered frame.
func stripANSI(s string) string {
	return ansi.Strip(s)
}
