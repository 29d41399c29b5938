package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"selectsearch/internal/debug"
	"selectsearch/internal/host"
)

// AsyncProvider resolves a query string to a mapping of backing value ->
// display label. Calls are dispatched after the debounce interval and are
// never cancelled once in flight; late responses still merge their results.
type AsyncProvider func(ctx context.Context, query string) (map[string]string, error)

// Attribute keys used to snapshot host state for restoration on destroy.
const (
	attrPriorRequired    = "data-sss-required"
	attrPriorMultiple    = "data-sss-multiple"
	attrLabelOriginalFor = "data-sss-label-for"
)

// Insert positions for the injected scratch field relative to the host
// control's slot in the layout.
const (
	InsertBeforeBegin = "beforebegin"
	InsertAfterEnd    = "afterend"
)

// Config holds the explicit overrides supplied at attach time. Zero values
// mean "inherit from the host control or use the documented default";
// Multiple and Required are pointers so that an explicit false can be told
// apart from "not set".
type Config struct {
	DebounceInterval    time.Duration // delay before a keystroke resolves
	IDPrefix            string        // base for generated identifiers
	InsertPosition      string        // placement of the injected input
	Multiple            *bool         // chip mode; nil -> host flag
	Required            *bool         // nil -> host flag
	Placeholder         string        // "" -> derived from empty-value option
	SwipeOffset         int           // min horizontal drag (cells) to delete a chip
	SwipeAnimationSpeed time.Duration // chip removal animation duration
	AsyncProvider       AsyncProvider // nil -> local matching only
	Label               *host.Label   // associated label to rewire, optional
	Width               int           // display width
}

// Defaults for the zero values of Config.
const (
	DefaultDebounceInterval = 200 * time.Millisecond
	DefaultIDPrefix         = "SSS_"
	DefaultSwipeOffset      = 50
	DefaultSwipeAnimation   = 200 * time.Millisecond
	defaultWidth            = 40
)

// resolvedConfig is the fully-resolved immutable configuration: host
// defaults read first, explicit overrides applied second.
type resolvedConfig struct {
	debounce       time.Duration
	idPrefix       string
	insertPosition string
	multiple       bool
	required       bool
	placeholder    string
	swipeOffset    int
	animSpeed      time.Duration
	provider       AsyncProvider
	width          int
}

func resolveConfig(sel *host.Select, cfg Config) resolvedConfig {
	rc := resolvedConfig{
		debounce:       DefaultDebounceInterval,
		idPrefix:       DefaultIDPrefix,
		insertPosition: InsertBeforeBegin,
		multiple:       sel.Multiple,
		required:       sel.Required,
		placeholder:    cfg.Placeholder,
		swipeOffset:    DefaultSwipeOffset,
		animSpeed:      DefaultSwipeAnimation,
		provider:       cfg.AsyncProvider,
		width:          defaultWidth,
	}
	if cfg.DebounceInterval > 0 {
		rc.debounce = cfg.DebounceInterval
	}
	if cfg.IDPrefix != "" {
		rc.idPrefix = cfg.IDPrefix
	}
	if cfg.InsertPosition == InsertAfterEnd {
		rc.insertPosition = InsertAfterEnd
	}
	if cfg.Multiple != nil {
		rc.multiple = *cfg.Multiple
	}
	if cfg.Required != nil {
		rc.required = *cfg.Required
	}
	if cfg.SwipeOffset > 0 {
		rc.swipeOffset = cfg.SwipeOffset
	}
	if cfg.SwipeAnimationSpeed > 0 {
		rc.animSpeed = cfg.SwipeAnimationSpeed
	}
	if cfg.Width > 0 {
		rc.width = cfg.Width
	}
	return rc
}

// SearchSelect augments a host select control with a searchable scratch
// field, a suggestion list, and (in multi-select mode) removable chips. The
// host control stays authoritative for form state; the widget keeps it, the
// scratch field, and the chips consistent.
type SearchSelect struct {
	cfg      resolvedConfig
	registry *Registry

	sel   *host.Select
	label *host.Label
	list  *host.Datalist

	store *Store
	chips ChipList
	input textinput.Model

	id            string
	inputAttrs    map[string]string
	inputRequired bool
	focused       bool
	destroyed     bool

	// Debounce generation: a new input event supersedes any pending tick.
	gen int
}

// Attach enhances sel with a SearchSelect instance registered in the default
// registry. Attaching to a control that already carries a live instance
// returns the existing instance unchanged.
func Attach(sel *host.Select, cfg Config) *SearchSelect {
	return AttachTo(DefaultRegistry(), sel, cfg)
}

// AttachTo is Attach against an explicit registry.
func AttachTo(r *Registry, sel *host.Select, cfg Config) *SearchSelect {
	if existing, ok := r.Lookup(sel); ok {
		return existing
	}

	rc := resolveConfig(sel, cfg)
	id := r.claimID(rc.idPrefix)

	// Snapshot the pre-attach flags so destroy can restore them exactly.
	sel.SetAttr(attrPriorRequired, boolAttr(sel.Required))
	sel.SetAttr(attrPriorMultiple, boolAttr(sel.Multiple))
	sel.Required = rc.required
	sel.Multiple = rc.multiple

	ti := textinput.New()
	ti.CharLimit = 100
	ti.Width = rc.width - 4
	ti.Placeholder = rc.placeholder

	w := &SearchSelect{
		cfg:           rc,
		registry:      r,
		sel:           sel,
		label:         cfg.Label,
		list:          host.NewDatalist(id + "_list"),
		chips:         NewChipList(rc.swipeOffset, rc.animSpeed).WithWidth(rc.width),
		input:         ti,
		id:            id,
		inputRequired: rc.required,
	}
	w.store = NewStore(sel, w.list)

	// Mirror host attributes onto the injected input, identity attributes
	// and our own snapshots excluded.
	w.inputAttrs = make(map[string]string)
	for k, v := range sel.Attrs() {
		switch k {
		case "id", "name", attrPriorRequired, attrPriorMultiple:
			continue
		}
		w.inputAttrs[k] = v
	}

	sel.Hidden = true

	if w.label != nil && w.label.For == sel.ID {
		w.label.SetAttr(attrLabelOriginalFor, w.label.For)
		w.label.For = w.id
	}

	w.scanOptions()
	w.restoreHostSelection()

	r.register(sel, w)
	debug.Logf("searchselect: attached %s to select %q (multiple=%v required=%v)",
		w.id, sel.ID, rc.multiple, rc.required)
	return w
}

func boolAttr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// scanOptions populates the store from the host control's current option
// declarations. An option with an empty value is the placeholder source,
// not a selectable entry.
func (w *SearchSelect) scanOptions() {
	for _, opt := range w.sel.Options {
		if opt.Value == "" {
			if w.cfg.placeholder == "" {
				w.input.Placeholder = opt.Label
			}
			continue
		}
		w.store.RecordOption(opt.Label, opt.Value)
	}
}

// restoreHostSelection adopts whatever selection state the host control
// currently carries, without firing a change notification.
func (w *SearchSelect) restoreHostSelection() {
	for _, value := range w.sel.SelectedValues() {
		if value == "" {
			continue
		}
		w.assign(value, false)
	}
}

// ID returns the generated identifier of the injected input.
func (w *SearchSelect) ID() string { return w.id }

// Destroyed reports whether Destroy has run.
func (w *SearchSelect) Destroyed() bool { return w.destroyed }

// Multiple reports whether the instance runs in chip mode.
func (w *SearchSelect) Multiple() bool { return w.cfg.multiple }

// InsertPosition returns the resolved placement of the injected input.
func (w *SearchSelect) InsertPosition() string { return w.cfg.insertPosition }

// InputRequired reports whether the scratch field currently enforces the
// required flag. In chip mode the flag is relaxed while any chip is live.
func (w *SearchSelect) InputRequired() bool { return w.inputRequired }

// InputAttrs returns the attributes mirrored from the host control onto the
// injected input at attach time.
func (w *SearchSelect) InputAttrs() map[string]string {
	out := make(map[string]string, len(w.inputAttrs))
	for k, v := range w.inputAttrs {
		out[k] = v
	}
	return out
}

// Datalist returns the injected suggestion-list element.
func (w *SearchSelect) Datalist() *host.Datalist { return w.list }

// Store returns the instance's state store (for testing).
func (w *SearchSelect) Store() *Store { return w.store }

// InputValue returns the scratch field's current text (for testing).
func (w *SearchSelect) InputValue() string { return w.input.Value() }

// ChipCount returns the number of live chips.
func (w *SearchSelect) ChipCount() int { return w.chips.Count() }

// ChipLabels returns the live chip labels in order.
func (w *SearchSelect) ChipLabels() []string {
	chips := w.chips.Chips()
	out := make([]string, len(chips))
	for i, chip := range chips {
		out[i] = chip.Label
	}
	return out
}

// InChipNavMode reports whether a chip has keyboard focus.
func (w *SearchSelect) InChipNavMode() bool { return w.chips.InNavigationMode() }

// FocusedChip returns the chip currently holding keyboard focus, if any.
func (w *SearchSelect) FocusedChip() (ChipRecord, bool) {
	return w.chips.FocusedChip()
}

// Focus gives the scratch field keyboard focus. Returns the cursor blink
// command.
func (w *SearchSelect) Focus() tea.Cmd {
	w.focused = true
	w.chips.Focus()
	return w.input.Focus()
}

// Blur removes focus. Scratch text that does not exactly match a known
// label is discarded; no partial value is ever committed.
func (w *SearchSelect) Blur() {
	w.focused = false
	if text := w.input.Value(); text != "" && !w.store.Known(text) {
		w.input.SetValue("")
	}
	w.chips.Blur()
	w.input.Blur()
}

// Focused reports whether the widget has focus.
func (w *SearchSelect) Focused() bool { return w.focused }

// SetValue assigns the given value(s) and fires a single change
// notification. In chip mode each value becomes an additional chip; in
// single-select mode the last processed value wins.
func (w *SearchSelect) SetValue(values ...string) tea.Cmd {
	return w.setValue(true, values...)
}

// SetValueSilent assigns value(s) without firing a change notification,
// for silent bulk restores.
func (w *SearchSelect) SetValueSilent(values ...string) tea.Cmd {
	return w.setValue(false, values...)
}

func (w *SearchSelect) setValue(fire bool, values ...string) tea.Cmd {
	if w.destroyed {
		return nil
	}
	var cmds []tea.Cmd
	mutated := false
	for _, value := range values {
		if value == "" {
			continue
		}
		dup := w.cfg.multiple && w.chips.Contains(value)
		if cmd := w.assign(value, false); cmd != nil {
			cmds = append(cmds, cmd)
		}
		if !dup {
			mutated = true
		}
	}
	if fire && mutated {
		w.sel.NotifyChange()
	}
	return tea.Batch(cmds...)
}

// assign commits a single backing value to the selection and synchronizes
// the host control, scratch field, and chips. Unknown values resolve to an
// empty label; that is the documented silent fallback, not an error.
func (w *SearchSelect) assign(value string, fire bool) tea.Cmd {
	label := w.store.LabelFor(value)

	if w.cfg.multiple {
		if w.chips.Contains(value) {
			// Idempotent at the UI level: focus the existing chip and
			// clear the scratch text instead of adding a twin.
			w.chips.AddChip(value, label)
			w.input.SetValue("")
			return FlashCmd()
		}
		w.store.Select(value)
		w.sel.SetSelected(value, true)
		w.chips.AddChip(value, label)
		w.input.SetValue("")
		if w.cfg.required && w.chips.Count() == 1 {
			// Any live chip satisfies the requirement; the scratch field
			// is transient and stops enforcing it.
			w.inputRequired = false
		}
	} else {
		w.store.Deselect()
		w.store.Select(value)
		w.sel.ClearSelected()
		w.sel.SetSelected(value, true)
		w.input.SetValue(label)
	}

	if fire {
		w.sel.NotifyChange()
	}
	debug.Logf("searchselect: %s assigned value=%q label=%q", w.id, value, label)
	return nil
}

// Values returns the current backing value -> label selection snapshot.
func (w *SearchSelect) Values() map[string]string {
	return w.store.Selected()
}

// ClearValue removes the given value(s) from the selection, or the entire
// selection when called with no arguments. Fires one change notification if
// anything was removed.
func (w *SearchSelect) ClearValue(values ...string) tea.Cmd {
	return w.clearValue(true, values...)
}

func (w *SearchSelect) clearValue(fire bool, values ...string) tea.Cmd {
	if w.destroyed {
		return nil
	}
	bulk := len(values) == 0
	targets := values
	if bulk {
		targets = w.store.SelectedOrder()
	}
	var cmds []tea.Cmd
	mutated := false
	for _, value := range targets {
		if !w.store.IsSelected(value) {
			continue
		}
		w.store.Deselect(value)
		w.sel.SetSelected(value, false)
		mutated = true
		if w.cfg.multiple && !bulk {
			value := value
			if cmd := w.chips.RemoveChip(value, func() {
				debug.Logf("searchselect: %s chip for %q detached", w.id, value)
			}); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	if !mutated {
		return nil
	}
	if w.cfg.multiple {
		if bulk {
			if cmd := w.chips.RemoveAll(func(value string) {
				debug.Logf("searchselect: %s chip for %q detached", w.id, value)
			}); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		if w.cfg.required && w.chips.Count() == 0 {
			w.inputRequired = true
		}
	} else {
		w.input.SetValue("")
	}
	if fire {
		w.sel.NotifyChange()
	}
	return tea.Batch(cmds...)
}

// ResetValue clears the current selection, re-scans the host control's
// option declarations, and adopts whatever native selection state the host
// control carries at call time.
func (w *SearchSelect) ResetValue() tea.Cmd {
	if w.destroyed {
		return nil
	}
	w.store.Reset()
	w.chips.DropAll()
	w.input.SetValue("")
	w.inputRequired = w.cfg.required
	w.scanOptions()
	w.restoreHostSelection()
	w.sel.NotifyChange()
	return nil
}

// Destroy detaches the widget: the host control is unhidden, the injected
// input and suggestion list are removed, all chips are dropped, and the
// pre-attach required/multiple flags and label reference are restored.
// Destroying a destroyed (or never-registered) instance is a no-op.
func (w *SearchSelect) Destroy() {
	if w.destroyed {
		return
	}
	if live, ok := w.registry.Lookup(w.sel); !ok || live != w {
		return
	}

	w.sel.Hidden = false
	if v, ok := w.sel.Attr(attrPriorRequired); ok {
		w.sel.Required = v == "true"
		w.sel.RemoveAttr(attrPriorRequired)
	}
	if v, ok := w.sel.Attr(attrPriorMultiple); ok {
		w.sel.Multiple = v == "true"
		w.sel.RemoveAttr(attrPriorMultiple)
	}
	if w.label != nil {
		if orig, ok := w.label.Attr(attrLabelOriginalFor); ok {
			w.label.For = orig
			w.label.RemoveAttr(attrLabelOriginalFor)
		}
	}

	w.chips.DropAll()
	w.input.SetValue("")
	w.list = nil
	w.destroyed = true
	w.registry.unregister(w.sel, w.id)
	debug.Logf("searchselect: destroyed %s", w.id)
}

// Update routes messages through the widget. It implements the data/state
// contract only; rendering happens in View.
func (w *SearchSelect) Update(msg tea.Msg) tea.Cmd {
	if w.destroyed {
		return nil
	}

	switch msg := msg.(type) {
	case chipFlashClearMsg, chipAnimFrameMsg:
		var cmd tea.Cmd
		w.chips, cmd = w.chips.Update(msg)
		return cmd

	case tea.MouseMsg:
		if w.cfg.multiple {
			var cmd tea.Cmd
			w.chips, cmd = w.chips.Update(msg)
			return cmd
		}
		return nil

	case ChipRemovedMsg:
		return w.ClearValue(msg.Value)

	case ChipNavExitMsg:
		if msg.Character != 0 {
			return w.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{msg.Character}})
		}
		return nil

	case debounceTickMsg:
		return w.resolveDebounce(msg)

	case providerResultMsg:
		return w.mergeProviderResults(msg)

	case tea.KeyMsg:
		return w.handleKey(msg)
	}

	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	return cmd
}

func (w *SearchSelect) handleKey(msg tea.KeyMsg) tea.Cmd {
	if w.cfg.multiple && w.chips.InNavigationMode() {
		var cmd tea.Cmd
		w.chips, cmd = w.chips.Update(msg)
		return cmd
	}

	switch msg.Type {
	case tea.KeyLeft:
		// With an empty scratch field, Left gives the last chip focus.
		if w.cfg.multiple && w.input.Value() == "" && w.chips.Count() > 0 {
			w.chips.EnterNavigation()
			return nil
		}

	case tea.KeyEnter, tea.KeyTab:
		return w.commitConfirm()

	case tea.KeyBackspace, tea.KeyDelete:
		// Editing the scratch text invalidates the committed single-select
		// value immediately; the text itself keeps being edited below.
		if !w.cfg.multiple && w.store.SelectionCount() > 0 {
			for _, value := range w.store.SelectedOrder() {
				w.store.Deselect(value)
				w.sel.SetSelected(value, false)
			}
			w.sel.NotifyChange()
		}
	}

	before := w.input.Value()
	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	if w.input.Value() != before {
		return tea.Batch(cmd, w.scheduleDebounce())
	}
	return cmd
}
