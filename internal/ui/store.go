package ui

import "selectsearch/internal/host"

// OptionRecord pairs a display label with its backing value. The label is
// the lookup key and must be unique within a live widget instance.
type OptionRecord struct {
	Label string
	Value string
}

// Store is the authoritative mapping between selected values and display
// labels for one widget instance. It grows when options are recorded (at
// attach time or when an async provider returns new entries) and never
// shrinks during a session; stale entries are harmless because selection is
// label-keyed and re-validated on blur.
//
// Go maps iterate in random order, so the store keeps an explicit
// registration-order slice. "First match" in the resolution pipeline always
// means first in registration order.
type Store struct {
	sel  *host.Select
	list *host.Datalist

	valid    map[string]OptionRecord // label -> record
	refs     map[string]string       // value -> label
	selected map[string]string       // value -> label

	labelOrder []string // labels in registration order
	selOrder   []string // values in selection order
}

// NewStore creates an empty store bound to the host control and its
// suggestion list.
func NewStore(sel *host.Select, list *host.Datalist) *Store {
	return &Store{
		sel:      sel,
		list:     list,
		valid:    make(map[string]OptionRecord),
		refs:     make(map[string]string),
		selected: make(map[string]string),
	}
}

// RecordOption registers label/value as a valid option. A re-recorded label
// overwrites its backing value (last write wins). Side effect: the host
// control and its suggestion list gain a corresponding static entry so the
// host's native suggestion UI can offer it.
func (st *Store) RecordOption(label, value string) {
	if _, known := st.valid[label]; !known {
		st.labelOrder = append(st.labelOrder, label)
	}
	st.valid[label] = OptionRecord{Label: label, Value: value}
	st.refs[value] = label

	if st.sel != nil && st.sel.LabelFor(value) == "" && !hostHasValue(st.sel, value) {
		st.sel.AddOption(value, label)
	}
	if st.list != nil {
		st.list.AddEntry(value, label)
	}
}

func hostHasValue(sel *host.Select, value string) bool {
	for _, opt := range sel.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// Known reports whether label is a registered display label.
func (st *Store) Known(label string) bool {
	_, ok := st.valid[label]
	return ok
}

// Record returns the option record for label.
func (st *Store) Record(label string) (OptionRecord, bool) {
	rec, ok := st.valid[label]
	return rec, ok
}

// LabelFor resolves a backing value to its display label. Unknown values
// resolve to "" (the silent blank fallback for programmatic SetValue).
func (st *Store) LabelFor(value string) string {
	return st.refs[value]
}

// Labels returns all registered labels in registration order.
func (st *Store) Labels() []string {
	return append([]string(nil), st.labelOrder...)
}

// Select marks value as selected, resolving its label through the refs
// index. A falsy value is a no-op.
func (st *Store) Select(value string) {
	if value == "" {
		return
	}
	if _, already := st.selected[value]; !already {
		st.selOrder = append(st.selOrder, value)
	}
	st.selected[value] = st.refs[value]
}

// Deselect removes the given values from the selection. With no arguments it
// clears the entire selection.
func (st *Store) Deselect(values ...string) {
	if len(values) == 0 {
		st.selected = make(map[string]string)
		st.selOrder = nil
		return
	}
	for _, v := range values {
		if _, ok := st.selected[v]; !ok {
			continue
		}
		delete(st.selected, v)
		for i, ordered := range st.selOrder {
			if ordered == v {
				st.selOrder = append(st.selOrder[:i], st.selOrder[i+1:]...)
				break
			}
		}
	}
}

// IsSelected reports whether value is currently selected.
func (st *Store) IsSelected(value string) bool {
	_, ok := st.selected[value]
	return ok
}

// Selected returns a snapshot of the current value -> label selection.
func (st *Store) Selected() map[string]string {
	out := make(map[string]string, len(st.selected))
	for k, v := range st.selected {
		out[k] = v
	}
	return out
}

// SelectedOrder returns the selected values in selection order.
func (st *Store) SelectedOrder() []string {
	return append([]string(nil), st.selOrder...)
}

// SelectionCount returns the number of selected values.
func (st *Store) SelectionCount() int {
	return len(st.selected)
}

// Reset drops every record and the current selection. Used by resetValue
// and destroy before the store is repopulated or discarded.
func (st *Store) Reset() {
	st.valid = make(map[string]OptionRecord)
	st.refs = make(map[string]string)
	st.selected = make(map[string]string)
	st.labelOrder = nil
	st.selOrder = nil
}
