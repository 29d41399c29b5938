package ui

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"selectsearch/internal/host"
)

// rankSuggestions orders suggestion-list entries by fuzzy relevance to the
// query. Display ordering only; commit matching keeps its anchored and
// substring semantics.
func rankSuggestions(entries []host.DatalistEntry, query string) []host.DatalistEntry {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" || len(entries) == 0 {
		return entries
	}
	targets := make([]string, len(entries))
	for i, entry := range entries {
		targets[i] = strings.ToLower(entry.Label)
	}
	matches := fuzzy.Find(query, targets)
	if len(matches) == 0 {
		return entries
	}
	used := make([]bool, len(entries))
	ranked := make([]host.DatalistEntry, 0, len(entries))
	for _, match := range matches {
		if match.Index >= 0 && match.Index < len(entries) {
			ranked = append(ranked, entries[match.Index])
			used[match.Index] = true
		}
	}
	for i, entry := range entries {
		if !used[i] {
			ranked = append(ranked, entry)
		}
	}
	return ranked
}
