package ui

import (
	"context"
	"regexp"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"selectsearch/internal/debug"
)

// debounceTickMsg lands when a keystroke's debounce interval elapses. Gen
// identifies the keystroke generation; a tick for a superseded generation is
// dropped, so only the latest keystroke ever resolves.
type debounceTickMsg struct {
	gen int
}

// providerResultMsg carries an async provider response. Responses are never
// superseded: multiple in-flight calls may land out of order and each merges
// its results unconditionally.
type providerResultMsg struct {
	query   string
	results map[string]string
	err     error
}

// ProviderErrorMsg surfaces an async provider failure to the host program.
// The widget does not swallow provider errors.
type ProviderErrorMsg struct {
	Query string
	Err   error
}

// scheduleDebounce starts a new debounce timer for the current scratch
// text, superseding any pending one.
func (w *SearchSelect) scheduleDebounce() tea.Cmd {
	w.gen++
	gen := w.gen
	return tea.Tick(w.cfg.debounce, func(time.Time) tea.Msg {
		return debounceTickMsg{gen: gen}
	})
}

// resolveDebounce resolves the scratch text once input activity has paused
// for the debounce interval.
func (w *SearchSelect) resolveDebounce(msg debounceTickMsg) tea.Cmd {
	if msg.gen != w.gen {
		// A later keystroke superseded this timer.
		return nil
	}
	text := w.input.Value()
	if text == "" {
		return nil
	}

	if w.cfg.provider == nil {
		// Sync path: anchored whole-string match against known labels.
		if rec, ok := w.matchExact(text); ok {
			return w.assign(rec.Value, true)
		}
		return nil
	}

	// Async path: an exact known label commits without re-fetching.
	if rec, ok := w.store.Record(text); ok {
		return w.assign(rec.Value, true)
	}
	return w.dispatchProvider(text)
}

// dispatchProvider invokes the async provider for query. The call is not
// cancellable; a stale response that arrives late still merges.
func (w *SearchSelect) dispatchProvider(query string) tea.Cmd {
	provider := w.cfg.provider
	return func() tea.Msg {
		results, err := provider(context.Background(), query)
		return providerResultMsg{query: query, results: results, err: err}
	}
}

// mergeProviderResults registers every entry the provider returned that is
// not already a known label. The store grows permanently for the session,
// so previously fetched suggestions stay selectable even after they scroll
// out of the current query's results.
func (w *SearchSelect) mergeProviderResults(msg providerResultMsg) tea.Cmd {
	if msg.err != nil {
		err := msg.err
		query := msg.query
		return func() tea.Msg {
			return ProviderErrorMsg{Query: query, Err: err}
		}
	}
	added := 0
	for value, label := range msg.results {
		if w.store.Known(label) {
			continue
		}
		w.store.RecordOption(label, value)
		added++
	}
	if added > 0 {
		debug.Logf("searchselect: %s merged %d option(s) for query %q", w.id, added, msg.query)
	}
	return nil
}

// commitConfirm handles Tab and Enter: an unanchored case-insensitive
// substring match against known labels, committed immediately, bypassing
// the debounce timer.
func (w *SearchSelect) commitConfirm() tea.Cmd {
	// Invalidate any pending debounce tick.
	w.gen++

	text := w.input.Value()
	if text == "" {
		return nil
	}
	if rec, ok := w.matchSubstring(text); ok {
		return w.assign(rec.Value, true)
	}
	return nil
}

// matchExact returns the first registered option whose label matches the
// whole of text, case-insensitively. Literal characters in text are
// escaped; first match means first in registration order.
func (w *SearchSelect) matchExact(text string) (OptionRecord, bool) {
	re, err := regexp.Compile("(?i)^" + regexp.QuoteMeta(text) + "$")
	if err != nil {
		return OptionRecord{}, false
	}
	return w.firstMatch(re)
}

// matchSubstring returns the first registered option whose label contains
// text, case-insensitively.
func (w *SearchSelect) matchSubstring(text string) (OptionRecord, bool) {
	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(text))
	if err != nil {
		return OptionRecord{}, false
	}
	return w.firstMatch(re)
}

func (w *SearchSelect) firstMatch(re *regexp.Regexp) (OptionRecord, bool) {
	for _, label := range w.store.Labels() {
		if re.MatchString(label) {
			rec, _ := w.store.Record(label)
			return rec, true
		}
	}
	return OptionRecord{}, false
}
