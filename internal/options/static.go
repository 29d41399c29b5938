// Package options provides option sources for SearchSelect widgets: static
// declarations and asynchronous providers.
package options

import "selectsearch/internal/host"

// Pair is one label/value option declaration.
type Pair struct {
	Value string
	Label string
}

// Static builds host options from declarations, preserving order. A Pair
// with an empty value becomes the placeholder option.
func Static(pairs ...Pair) []host.Option {
	out := make([]host.Option, len(pairs))
	for i, p := range pairs {
		out[i] = host.Option{Value: p.Value, Label: p.Label}
	}
	return out
}
