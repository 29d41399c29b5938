package ui

import (
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"selectsearch/internal/host"
)

func boolPtr(b bool) *bool { return &b }

func newSingleSelect() *host.Select {
	sel := host.NewSelect("country",
		host.Option{Value: "", Label: "Select a country..."},
		host.Option{Value: "de", Label: "Germany"},
		host.Option{Value: "fr", Label: "France"},
		host.Option{Value: "it", Label: "Italy"},
	)
	sel.Required = true
	return sel
}

func newMultiSelect() *host.Select {
	sel := host.NewSelect("labels",
		host.Option{Value: "1", Label: "backend"},
		host.Option{Value: "2", Label: "frontend"},
		host.Option{Value: "3", Label: "urgent"},
	)
	sel.Multiple = true
	sel.Required = true
	return sel
}

func countChanges(sel *host.Select) *int {
	n := new(int)
	sel.OnChange(func(s *host.Select) { *n++ })
	return n
}

func TestAttach(t *testing.T) {
	t.Run("idempotent per control", func(t *testing.T) {
		r := NewRegistry()
		sel := newSingleSelect()
		w1 := AttachTo(r, sel, Config{})
		w2 := AttachTo(r, sel, Config{})
		if w1 != w2 {
			t.Error("second attach must return the existing instance")
		}
		if r.Count() != 1 {
			t.Errorf("registry count = %d, want 1", r.Count())
		}
	})

	t.Run("generated identifiers probe upward", func(t *testing.T) {
		r := NewRegistry()
		w1 := AttachTo(r, newSingleSelect(), Config{})
		w2 := AttachTo(r, newSingleSelect(), Config{})
		if w1.ID() != "SSS_0" || w2.ID() != "SSS_1" {
			t.Errorf("ids = %q, %q; want SSS_0, SSS_1", w1.ID(), w2.ID())
		}
	})

	t.Run("custom id prefix", func(t *testing.T) {
		w := AttachTo(NewRegistry(), newSingleSelect(), Config{IDPrefix: "FLD_"})
		if w.ID() != "FLD_0" {
			t.Errorf("id = %q, want FLD_0", w.ID())
		}
	})

	t.Run("hides host and snapshots flags", func(t *testing.T) {
		sel := newSingleSelect()
		AttachTo(NewRegistry(), sel, Config{})
		if !sel.Hidden {
			t.Error("host control should be hidden after attach")
		}
		if v, _ := sel.Attr("data-sss-required"); v != "true" {
			t.Errorf("required snapshot = %q, want true", v)
		}
		if v, _ := sel.Attr("data-sss-multiple"); v != "false" {
			t.Errorf("multiple snapshot = %q, want false", v)
		}
	})

	t.Run("mirrors attributes except identity", func(t *testing.T) {
		sel := newSingleSelect()
		sel.SetAttr("class", "wide")
		sel.SetAttr("id", "country")
		sel.SetAttr("name", "country")
		w := AttachTo(NewRegistry(), sel, Config{})

		attrs := w.InputAttrs()
		if attrs["class"] != "wide" {
			t.Errorf("class not mirrored: %v", attrs)
		}
		for _, k := range []string{"id", "name", "data-sss-required", "data-sss-multiple"} {
			if _, ok := attrs[k]; ok {
				t.Errorf("attribute %q must not be mirrored", k)
			}
		}
	})

	t.Run("placeholder derived from empty-value option", func(t *testing.T) {
		w := AttachTo(NewRegistry(), newSingleSelect(), Config{})
		if !w.store.Known("Germany") {
			t.Error("options should be recorded at attach")
		}
		if w.store.Known("Select a country...") {
			t.Error("the placeholder option must not be selectable")
		}
		if w.input.Placeholder != "Select a country..." {
			t.Errorf("placeholder = %q", w.input.Placeholder)
		}
	})

	t.Run("explicit placeholder wins", func(t *testing.T) {
		w := AttachTo(NewRegistry(), newSingleSelect(), Config{Placeholder: "Pick one"})
		if w.input.Placeholder != "Pick one" {
			t.Errorf("placeholder = %q, want Pick one", w.input.Placeholder)
		}
	})

	t.Run("rewires matching label", func(t *testing.T) {
		sel := newSingleSelect()
		label := host.NewLabel("Country", sel.ID)
		w := AttachTo(NewRegistry(), sel, Config{Label: label})
		if label.For != w.ID() {
			t.Errorf("label.For = %q, want %q", label.For, w.ID())
		}
		if orig, _ := label.Attr("data-sss-label-for"); orig != "country" {
			t.Errorf("original for = %q, want country", orig)
		}
	})

	t.Run("ignores label pointing elsewhere", func(t *testing.T) {
		sel := newSingleSelect()
		label := host.NewLabel("Other", "other-field")
		AttachTo(NewRegistry(), sel, Config{Label: label})
		if label.For != "other-field" {
			t.Errorf("label.For = %q, should be untouched", label.For)
		}
	})

	t.Run("adopts existing host selection silently", func(t *testing.T) {
		sel := newSingleSelect()
		sel.SetSelected("fr", true)
		changes := countChanges(sel)
		w := AttachTo(NewRegistry(), sel, Config{})
		if w.InputValue() != "France" {
			t.Errorf("input = %q, want France", w.InputValue())
		}
		if *changes != 0 {
			t.Errorf("attach fired %d notifications, want 0", *changes)
		}
	})
}

func TestResolveConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		rc := resolveConfig(newSingleSelect(), Config{})
		if rc.debounce != DefaultDebounceInterval {
			t.Errorf("debounce = %v", rc.debounce)
		}
		if rc.idPrefix != DefaultIDPrefix {
			t.Errorf("idPrefix = %q", rc.idPrefix)
		}
		if rc.insertPosition != InsertBeforeBegin {
			t.Errorf("insertPosition = %q", rc.insertPosition)
		}
		if rc.swipeOffset != DefaultSwipeOffset {
			t.Errorf("swipeOffset = %d", rc.swipeOffset)
		}
		if rc.animSpeed != DefaultSwipeAnimation {
			t.Errorf("animSpeed = %v", rc.animSpeed)
		}
	})

	t.Run("host flags inherited", func(t *testing.T) {
		rc := resolveConfig(newMultiSelect(), Config{})
		if !rc.multiple || !rc.required {
			t.Errorf("multiple=%v required=%v, want both true", rc.multiple, rc.required)
		}
	})

	t.Run("explicit false overrides host true", func(t *testing.T) {
		rc := resolveConfig(newMultiSelect(), Config{
			Multiple: boolPtr(false),
			Required: boolPtr(false),
		})
		if rc.multiple || rc.required {
			t.Errorf("multiple=%v required=%v, want both false", rc.multiple, rc.required)
		}
	})
}

func TestSetValueSingle(t *testing.T) {
	sel := newSingleSelect()
	changes := countChanges(sel)
	w := AttachTo(NewRegistry(), sel, Config{})

	t.Run("assigns and fires once", func(t *testing.T) {
		w.SetValue("de")
		if w.InputValue() != "Germany" {
			t.Errorf("input = %q, want Germany", w.InputValue())
		}
		if got := sel.SelectedValues(); !reflect.DeepEqual(got, []string{"de"}) {
			t.Errorf("host selection = %v, want [de]", got)
		}
		if *changes != 1 {
			t.Errorf("notifications = %d, want 1", *changes)
		}
	})

	t.Run("multiple values, last wins, still one notification", func(t *testing.T) {
		*changes = 0
		w.SetValue("fr", "it")
		if w.InputValue() != "Italy" {
			t.Errorf("input = %q, want Italy", w.InputValue())
		}
		if got := sel.SelectedValues(); !reflect.DeepEqual(got, []string{"it"}) {
			t.Errorf("host selection = %v, want [it]", got)
		}
		if *changes != 1 {
			t.Errorf("notifications = %d, want 1", *changes)
		}
	})

	t.Run("silent variant fires nothing", func(t *testing.T) {
		*changes = 0
		w.SetValueSilent("de")
		if *changes != 0 {
			t.Errorf("notifications = %d, want 0", *changes)
		}
	})

	t.Run("empty values are skipped", func(t *testing.T) {
		*changes = 0
		w.SetValue("")
		if *changes != 0 {
			t.Errorf("notifications = %d, want 0", *changes)
		}
	})

	t.Run("unknown value assigns blank label", func(t *testing.T) {
		w.SetValue("zz")
		if w.InputValue() != "" {
			t.Errorf("input = %q, want blank for unknown value", w.InputValue())
		}
	})
}

func TestSetValueMulti(t *testing.T) {
	sel := newMultiSelect()
	changes := countChanges(sel)
	w := AttachTo(NewRegistry(), sel, Config{})

	t.Run("chips accumulate", func(t *testing.T) {
		w.SetValue("1")
		w.SetValue("2")
		if got := w.ChipLabels(); !reflect.DeepEqual(got, []string{"backend", "frontend"}) {
			t.Errorf("chips = %v", got)
		}
		if w.InputValue() != "" {
			t.Errorf("input = %q, want cleared", w.InputValue())
		}
		if got := sel.SelectedValues(); !reflect.DeepEqual(got, []string{"1", "2"}) {
			t.Errorf("host selection = %v", got)
		}
		if *changes != 2 {
			t.Errorf("notifications = %d, want 2", *changes)
		}
	})

	t.Run("required relaxes after first chip", func(t *testing.T) {
		if w.InputRequired() {
			t.Error("input should not be required while chips are live")
		}
	})

	t.Run("duplicate flashes, no notification", func(t *testing.T) {
		*changes = 0
		cmd := w.SetValue("1")
		if w.ChipCount() != 2 {
			t.Errorf("chip count = %d, want 2", w.ChipCount())
		}
		if *changes != 0 {
			t.Errorf("notifications = %d, want 0 for duplicate", *changes)
		}
		if cmd == nil {
			t.Error("duplicate should return the flash command")
		}
	})
}

func TestClearValue(t *testing.T) {
	sel := newMultiSelect()
	changes := countChanges(sel)
	w := AttachTo(NewRegistry(), sel, Config{})
	w.SetValue("1", "2")
	*changes = 0

	t.Run("removes one value", func(t *testing.T) {
		w.ClearValue("1")
		if got := w.ChipLabels(); !reflect.DeepEqual(got, []string{"frontend"}) {
			t.Errorf("chips = %v", got)
		}
		if got := sel.SelectedValues(); !reflect.DeepEqual(got, []string{"2"}) {
			t.Errorf("host selection = %v", got)
		}
		if *changes != 1 {
			t.Errorf("notifications = %d, want 1", *changes)
		}
		if w.InputRequired() {
			t.Error("one chip still satisfies the requirement")
		}
	})

	t.Run("unknown value is a no-op", func(t *testing.T) {
		*changes = 0
		if cmd := w.ClearValue("9"); cmd != nil {
			t.Error("clearing an unselected value should return nil")
		}
		if *changes != 0 {
			t.Errorf("notifications = %d, want 0", *changes)
		}
	})

	t.Run("no arguments clears everything and re-arms required", func(t *testing.T) {
		*changes = 0
		cmd := w.ClearValue()
		if w.ChipCount() != 0 {
			t.Errorf("chip count = %d, want 0", w.ChipCount())
		}
		if len(sel.SelectedValues()) != 0 {
			t.Errorf("host selection = %v, want empty", sel.SelectedValues())
		}
		if !w.InputRequired() {
			t.Error("required should re-arm at zero chips")
		}
		if *changes != 1 {
			t.Errorf("notifications = %d, want 1", *changes)
		}

		// The remaining chip leaves through the removal animation.
		if cmd == nil {
			t.Fatal("bulk clear should return the animation command")
		}
		if !w.chips.Animating() {
			t.Fatal("bulk clear should animate chip removal")
		}
		for i := 0; i < 20 && w.chips.Animating(); i++ {
			w.Update(chipAnimFrameMsg{})
		}
		if w.chips.Animating() {
			t.Error("animation should complete")
		}
	})
}

func TestClearValueSingle(t *testing.T) {
	sel := newSingleSelect()
	w := AttachTo(NewRegistry(), sel, Config{})
	w.SetValue("de")

	w.ClearValue()

	if w.InputValue() != "" {
		t.Errorf("input = %q, want cleared", w.InputValue())
	}
	if len(sel.SelectedValues()) != 0 {
		t.Errorf("host selection = %v, want empty", sel.SelectedValues())
	}
}

func TestBackspaceInvalidatesSingleValue(t *testing.T) {
	sel := newSingleSelect()
	changes := countChanges(sel)
	w := AttachTo(NewRegistry(), sel, Config{})
	w.Focus()
	w.SetValue("de")
	*changes = 0

	w.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	if len(sel.SelectedValues()) != 0 {
		t.Errorf("host selection = %v, want empty after backspace", sel.SelectedValues())
	}
	if *changes != 1 {
		t.Errorf("notifications = %d, want 1", *changes)
	}
	// Editing continues on the remaining text.
	if w.InputValue() != "German" {
		t.Errorf("input = %q, want German", w.InputValue())
	}
}

func TestBlur(t *testing.T) {
	t.Run("discards unknown scratch text", func(t *testing.T) {
		w := AttachTo(NewRegistry(), newSingleSelect(), Config{})
		w.Focus()
		w.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Ger")})
		w.Blur()
		if w.InputValue() != "" {
			t.Errorf("input = %q, want discarded", w.InputValue())
		}
	})

	t.Run("keeps a committed label", func(t *testing.T) {
		w := AttachTo(NewRegistry(), newSingleSelect(), Config{})
		w.Focus()
		w.SetValue("de")
		w.Blur()
		if w.InputValue() != "Germany" {
			t.Errorf("input = %q, want Germany", w.InputValue())
		}
	})
}

func TestChipNavigationThroughWidget(t *testing.T) {
	sel := newMultiSelect()
	changes := countChanges(sel)
	w := AttachTo(NewRegistry(), sel, Config{})
	w.Focus()
	w.SetValue("1", "2")
	*changes = 0

	t.Run("left on empty input enters navigation", func(t *testing.T) {
		if _, ok := w.FocusedChip(); ok {
			t.Fatal("no chip should be focused in input mode")
		}
		w.Update(tea.KeyMsg{Type: tea.KeyLeft})
		if !w.InChipNavMode() {
			t.Fatal("should be in chip navigation mode")
		}
		chip, ok := w.FocusedChip()
		if !ok || chip.Label != "frontend" {
			t.Errorf("focused chip = %v (%v), want the last chip", chip, ok)
		}
	})

	t.Run("backspace deletes the focused chip", func(t *testing.T) {
		cmd := w.Update(tea.KeyMsg{Type: tea.KeyBackspace})
		if cmd == nil {
			t.Fatal("expected a removal message command")
		}
		msg := cmd()
		removed, ok := msg.(ChipRemovedMsg)
		if !ok {
			t.Fatalf("expected ChipRemovedMsg, got %T", msg)
		}
		w.Update(removed)
		if got := w.ChipLabels(); !reflect.DeepEqual(got, []string{"backend"}) {
			t.Errorf("chips = %v, want [backend]", got)
		}
		if *changes != 1 {
			t.Errorf("notifications = %d, want 1", *changes)
		}
	})

	t.Run("typing exits navigation into the scratch field", func(t *testing.T) {
		w.chips.EnterNavigation()
		cmd := w.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'u'}})
		if cmd == nil {
			t.Fatal("expected an exit message command")
		}
		exit, ok := cmd().(ChipNavExitMsg)
		if !ok {
			t.Fatalf("expected ChipNavExitMsg, got %T", cmd())
		}
		w.Update(exit)
		if w.InChipNavMode() {
			t.Error("should have left navigation mode")
		}
		if w.InputValue() != "u" {
			t.Errorf("input = %q, want u", w.InputValue())
		}
	})
}

func TestResetValue(t *testing.T) {
	sel := newMultiSelect()
	changes := countChanges(sel)
	w := AttachTo(NewRegistry(), sel, Config{})
	w.SetValue("1", "2")

	// Host-side form reset clears the native flags; the widget re-adopts.
	sel.ClearSelected()
	*changes = 0
	w.ResetValue()

	if w.ChipCount() != 0 {
		t.Errorf("chip count = %d, want 0", w.ChipCount())
	}
	if w.InputValue() != "" {
		t.Errorf("input = %q, want cleared", w.InputValue())
	}
	if !w.InputRequired() {
		t.Error("required should be back to its configured state")
	}
	if !w.store.Known("backend") {
		t.Error("options should be re-scanned")
	}
	if *changes != 1 {
		t.Errorf("notifications = %d, want 1", *changes)
	}
}

func TestDestroy(t *testing.T) {
	t.Run("restores host state", func(t *testing.T) {
		r := NewRegistry()
		sel := newMultiSelect()
		label := host.NewLabel("Labels", sel.ID)
		w := AttachTo(r, sel, Config{
			Multiple: boolPtr(false),
			Required: boolPtr(false),
			Label:    label,
		})
		w.SetValue("1")

		w.Destroy()

		if sel.Hidden {
			t.Error("host control should be visible again")
		}
		if !sel.Required || !sel.Multiple {
			t.Errorf("flags = required %v multiple %v, want both restored to true",
				sel.Required, sel.Multiple)
		}
		if _, ok := sel.Attr("data-sss-required"); ok {
			t.Error("snapshot attributes should be removed")
		}
		if label.For != sel.ID {
			t.Errorf("label.For = %q, want %q", label.For, sel.ID)
		}
		if !w.Destroyed() {
			t.Error("Destroyed() should report true")
		}
		if r.Count() != 0 {
			t.Errorf("registry count = %d, want 0", r.Count())
		}
	})

	t.Run("identifier becomes reusable", func(t *testing.T) {
		r := NewRegistry()
		sel := newSingleSelect()
		w := AttachTo(r, sel, Config{})
		id := w.ID()
		w.Destroy()
		w2 := AttachTo(r, sel, Config{})
		if w2.ID() != id {
			t.Errorf("id after re-attach = %q, want %q", w2.ID(), id)
		}
	})

	t.Run("double destroy and post-destroy updates are no-ops", func(t *testing.T) {
		w := AttachTo(NewRegistry(), newSingleSelect(), Config{})
		w.Destroy()
		w.Destroy()
		if cmd := w.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
			t.Error("Update after destroy should do nothing")
		}
		if cmd := w.SetValue("de"); cmd != nil {
			t.Error("SetValue after destroy should do nothing")
		}
	})
}

func TestViewRenders(t *testing.T) {
	sel := newMultiSelect()
	w := AttachTo(NewRegistry(), sel, Config{})
	w.Focus()
	w.SetValue("1")

	view := stripANSI(w.View())
	if view == "" {
		t.Fatal("view should render")
	}
	if !strings.Contains(view, "backend") {
		t.Errorf("view should show the chip label:\n%s", view)
	}
}
