package ui

import (
	"context"
	"errors"
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"selectsearch/internal/host"
)

func typeText(t *testing.T, w *SearchSelect, text string) {
	t.Helper()
	for _, r := range text {
		w.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func tick(w *SearchSelect) tea.Cmd {
	return w.Update(debounceTickMsg{gen: w.gen})
}

func TestDebounceResolution(t *testing.T) {
	t.Run("exact match commits on the live tick", func(t *testing.T) {
		sel := newSingleSelect()
		changes := countChanges(sel)
		w := AttachTo(NewRegistry(), sel, Config{})
		w.Focus()

		typeText(t, w, "france")
		tick(w)

		if got := sel.SelectedValues(); !reflect.DeepEqual(got, []string{"fr"}) {
			t.Errorf("host selection = %v, want [fr]", got)
		}
		if w.InputValue() != "France" {
			t.Errorf("input = %q, want the canonical label", w.InputValue())
		}
		if *changes != 1 {
			t.Errorf("notifications = %d, want 1", *changes)
		}
	})

	t.Run("stale tick is dropped", func(t *testing.T) {
		sel := newSingleSelect()
		w := AttachTo(NewRegistry(), sel, Config{})
		w.Focus()

		typeText(t, w, "france")
		w.Update(debounceTickMsg{gen: w.gen - 1})

		if len(sel.SelectedValues()) != 0 {
			t.Errorf("stale tick must not resolve, got %v", sel.SelectedValues())
		}
	})

	t.Run("later keystrokes supersede earlier text", func(t *testing.T) {
		sel := newSingleSelect()
		w := AttachTo(NewRegistry(), sel, Config{})
		w.Focus()

		typeText(t, w, "fra")
		staleGen := w.gen
		typeText(t, w, "nce")

		w.Update(debounceTickMsg{gen: staleGen})
		if len(sel.SelectedValues()) != 0 {
			t.Error("superseded tick must not resolve")
		}

		tick(w)
		if got := sel.SelectedValues(); !reflect.DeepEqual(got, []string{"fr"}) {
			t.Errorf("host selection = %v, want [fr]", got)
		}
	})

	t.Run("substring alone does not commit", func(t *testing.T) {
		sel := newSingleSelect()
		w := AttachTo(NewRegistry(), sel, Config{})
		w.Focus()

		typeText(t, w, "fran")
		tick(w)

		if len(sel.SelectedValues()) != 0 {
			t.Errorf("partial text must not commit on the debounce path, got %v", sel.SelectedValues())
		}
	})

	t.Run("empty text is a no-op", func(t *testing.T) {
		w := AttachTo(NewRegistry(), newSingleSelect(), Config{})
		w.Focus()
		w.gen++
		if cmd := tick(w); cmd != nil {
			t.Error("empty text should resolve to nothing")
		}
	})
}

func TestMatchingRules(t *testing.T) {
	t.Run("case insensitive and anchored", func(t *testing.T) {
		w := AttachTo(NewRegistry(), newSingleSelect(), Config{})
		if _, ok := w.matchExact("GERMANY"); !ok {
			t.Error("exact match should ignore case")
		}
		if _, ok := w.matchExact("German"); ok {
			t.Error("exact match must be anchored to the whole label")
		}
	})

	t.Run("regex metacharacters match literally", func(t *testing.T) {
		w := AttachTo(NewRegistry(), newSingleSelect(), Config{})
		w.store.RecordOption("C++ (new)", "9")
		rec, ok := w.matchExact("c++ (new)")
		if !ok || rec.Value != "9" {
			t.Errorf("literal match failed: %+v, %v", rec, ok)
		}
	})

	t.Run("first match follows registration order", func(t *testing.T) {
		sel := host.NewSelect("s",
			host.Option{Value: "a1", Label: "Alpha"},
			host.Option{Value: "a2", Label: "alpha"},
		)
		w := AttachTo(NewRegistry(), sel, Config{})
		rec, ok := w.matchExact("ALPHA")
		if !ok || rec.Value != "a1" {
			t.Errorf("first match = %+v, want the first registered option", rec)
		}
	})
}

func TestCommitConfirm(t *testing.T) {
	t.Run("enter commits a substring match immediately", func(t *testing.T) {
		sel := host.NewSelect("s",
			host.Option{Value: "1", Label: "Xray"},
			host.Option{Value: "2", Label: "Yankee"},
		)
		changes := countChanges(sel)
		w := AttachTo(NewRegistry(), sel, Config{})
		w.Focus()

		typeText(t, w, "xr")
		pendingGen := w.gen
		w.Update(tea.KeyMsg{Type: tea.KeyEnter})

		if got := sel.SelectedValues(); !reflect.DeepEqual(got, []string{"1"}) {
			t.Errorf("host selection = %v, want [1]", got)
		}
		if *changes != 1 {
			t.Errorf("notifications = %d, want 1", *changes)
		}

		// The pending debounce tick was invalidated by the commit.
		*changes = 0
		w.Update(debounceTickMsg{gen: pendingGen})
		if *changes != 0 {
			t.Error("invalidated tick must not resolve again")
		}
	})

	t.Run("tab behaves like enter", func(t *testing.T) {
		sel := host.NewSelect("s", host.Option{Value: "1", Label: "Xray"})
		w := AttachTo(NewRegistry(), sel, Config{})
		w.Focus()

		typeText(t, w, "ra")
		w.Update(tea.KeyMsg{Type: tea.KeyTab})

		if got := sel.SelectedValues(); !reflect.DeepEqual(got, []string{"1"}) {
			t.Errorf("host selection = %v, want [1]", got)
		}
	})

	t.Run("no match leaves everything untouched", func(t *testing.T) {
		sel := newSingleSelect()
		w := AttachTo(NewRegistry(), sel, Config{})
		w.Focus()

		typeText(t, w, "zzz")
		w.Update(tea.KeyMsg{Type: tea.KeyEnter})

		if len(sel.SelectedValues()) != 0 {
			t.Errorf("host selection = %v, want empty", sel.SelectedValues())
		}
		if w.InputValue() != "zzz" {
			t.Errorf("input = %q, scratch text should remain", w.InputValue())
		}
	})
}

func TestAsyncProvider(t *testing.T) {
	t.Run("unknown text dispatches, results merge, enter commits", func(t *testing.T) {
		calls := 0
		provider := func(ctx context.Context, query string) (map[string]string, error) {
			calls++
			return map[string]string{"u1": "Ada Lovelace"}, nil
		}
		sel := host.NewSelect("people")
		w := AttachTo(NewRegistry(), sel, Config{AsyncProvider: provider})
		w.Focus()

		typeText(t, w, "ada")
		cmd := tick(w)
		if cmd == nil {
			t.Fatal("unknown text should dispatch the provider")
		}

		msg := cmd()
		result, ok := msg.(providerResultMsg)
		if !ok {
			t.Fatalf("expected providerResultMsg, got %T", msg)
		}
		if calls != 1 {
			t.Errorf("provider calls = %d, want 1", calls)
		}

		w.Update(result)
		if !w.store.Known("Ada Lovelace") {
			t.Fatal("merged option should be known")
		}

		// Merging never auto-commits; the user confirms.
		if len(sel.SelectedValues()) != 0 {
			t.Error("merge must not select anything")
		}
		w.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if got := sel.SelectedValues(); !reflect.DeepEqual(got, []string{"u1"}) {
			t.Errorf("host selection = %v, want [u1]", got)
		}
	})

	t.Run("exact known label skips the fetch", func(t *testing.T) {
		calls := 0
		provider := func(ctx context.Context, query string) (map[string]string, error) {
			calls++
			return nil, nil
		}
		sel := host.NewSelect("people", host.Option{Value: "u2", Label: "Alan Turing"})
		w := AttachTo(NewRegistry(), sel, Config{AsyncProvider: provider})
		w.Focus()

		typeText(t, w, "Alan Turing")
		tick(w)

		if calls != 0 {
			t.Errorf("provider calls = %d, want 0 for a known label", calls)
		}
		if got := sel.SelectedValues(); !reflect.DeepEqual(got, []string{"u2"}) {
			t.Errorf("host selection = %v, want [u2]", got)
		}
	})

	t.Run("known labels are not re-recorded", func(t *testing.T) {
		sel := host.NewSelect("people", host.Option{Value: "u2", Label: "Alan Turing"})
		w := AttachTo(NewRegistry(), sel, Config{})
		before := len(w.store.Labels())

		w.Update(providerResultMsg{
			query: "al",
			results: map[string]string{
				"u2": "Alan Turing",
				"u3": "Grace Hopper",
			},
		})

		if got := len(w.store.Labels()); got != before+1 {
			t.Errorf("label count = %d, want %d", got, before+1)
		}
	})

	t.Run("out of order responses both merge", func(t *testing.T) {
		w := AttachTo(NewRegistry(), host.NewSelect("people"), Config{})

		w.Update(providerResultMsg{query: "b", results: map[string]string{"u5": "Barbara Liskov"}})
		w.Update(providerResultMsg{query: "a", results: map[string]string{"u1": "Ada Lovelace"}})

		if !w.store.Known("Barbara Liskov") || !w.store.Known("Ada Lovelace") {
			t.Error("every response merges regardless of arrival order")
		}
	})

	t.Run("provider error surfaces to the host program", func(t *testing.T) {
		w := AttachTo(NewRegistry(), host.NewSelect("people"), Config{})

		cmd := w.Update(providerResultMsg{query: "q", err: errors.New("boom")})
		if cmd == nil {
			t.Fatal("expected an error message command")
		}
		errMsg, ok := cmd().(ProviderErrorMsg)
		if !ok {
			t.Fatalf("expected ProviderErrorMsg, got %T", cmd())
		}
		if errMsg.Query != "q" || errMsg.Err == nil {
			t.Errorf("error message = %+v", errMsg)
		}
	})
}
