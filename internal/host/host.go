// Package host models the native controls a SearchSelect widget attaches to:
// a selectable-choices control, its associated label, and the suggestion-list
// primitive. The widget only touches these through the operations here, so
// the rest of the host application keeps full ownership of them.
package host

// Option is a single selectable choice: a display label backed by a value.
// An option with an empty Value acts as the placeholder source and is never
// treated as a selectable entry by the widget.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// ChangeListener is invoked after a value-mutating widget operation that did
// not opt out of notification.
type ChangeListener func(s *Select)

// Select is the host's selectable-choices control. The widget hides it while
// attached and keeps its option selection flags in sync with the visible
// scratch field and chips.
type Select struct {
	ID       string
	Options  []Option
	Required bool
	Multiple bool
	Hidden   bool

	attrs     map[string]string
	listeners []ChangeListener
}

// NewSelect creates a select control with the given options.
func NewSelect(id string, options ...Option) *Select {
	return &Select{
		ID:      id,
		Options: append([]Option(nil), options...),
		attrs:   make(map[string]string),
	}
}

// Attr returns the named attribute and whether it is set.
func (s *Select) Attr(name string) (string, bool) {
	v, ok := s.attrs[name]
	return v, ok
}

// SetAttr sets the named attribute.
func (s *Select) SetAttr(name, value string) {
	if s.attrs == nil {
		s.attrs = make(map[string]string)
	}
	s.attrs[name] = value
}

// RemoveAttr deletes the named attribute.
func (s *Select) RemoveAttr(name string) {
	delete(s.attrs, name)
}

// Attrs returns a copy of all attributes currently set on the control.
func (s *Select) Attrs() map[string]string {
	out := make(map[string]string, len(s.attrs))
	for k, v := range s.attrs {
		out[k] = v
	}
	return out
}

// AddOption appends an option to the control. Existing options are left
// untouched; callers that need label uniqueness enforce it themselves.
func (s *Select) AddOption(value, label string) {
	s.Options = append(s.Options, Option{Value: value, Label: label})
}

// SetSelected updates the selection flag of every option with the given
// value. Returns true if at least one option matched.
func (s *Select) SetSelected(value string, selected bool) bool {
	matched := false
	for i := range s.Options {
		if s.Options[i].Value == value {
			s.Options[i].Selected = selected
			matched = true
		}
	}
	return matched
}

// ClearSelected clears the selection flag on every option.
func (s *Select) ClearSelected() {
	for i := range s.Options {
		s.Options[i].Selected = false
	}
}

// SelectedValues returns the values of all currently selected options, in
// option order.
func (s *Select) SelectedValues() []string {
	var out []string
	for _, opt := range s.Options {
		if opt.Selected {
			out = append(out, opt.Value)
		}
	}
	return out
}

// LabelFor returns the display label of the option backing the given value,
// or "" if no option matches.
func (s *Select) LabelFor(value string) string {
	for _, opt := range s.Options {
		if opt.Value == value {
			return opt.Label
		}
	}
	return ""
}

// OnChange registers a change listener.
func (s *Select) OnChange(fn ChangeListener) {
	s.listeners = append(s.listeners, fn)
}

// NotifyChange invokes all registered change listeners.
func (s *Select) NotifyChange() {
	for _, fn := range s.listeners {
		fn(s)
	}
}

// Label is a caption associated with a control via its For reference.
type Label struct {
	Text string
	For  string

	attrs map[string]string
}

// NewLabel creates a label pointing at the control with the given ID.
func NewLabel(text, forID string) *Label {
	return &Label{Text: text, For: forID, attrs: make(map[string]string)}
}

// Attr returns the named attribute and whether it is set.
func (l *Label) Attr(name string) (string, bool) {
	v, ok := l.attrs[name]
	return v, ok
}

// SetAttr sets the named attribute.
func (l *Label) SetAttr(name, value string) {
	if l.attrs == nil {
		l.attrs = make(map[string]string)
	}
	l.attrs[name] = value
}

// RemoveAttr deletes the named attribute.
func (l *Label) RemoveAttr(name string) {
	delete(l.attrs, name)
}

// DatalistEntry is one static suggestion offered by the host's native
// suggestion list.
type DatalistEntry struct {
	Value string
	Label string
}

// Datalist is the host's suggestion-list primitive. The widget feeds it one
// static entry per recorded option so the host can offer autocomplete
// candidates for the scratch field.
type Datalist struct {
	ID      string
	Entries []DatalistEntry
}

// NewDatalist creates an empty suggestion list.
func NewDatalist(id string) *Datalist {
	return &Datalist{ID: id}
}

// AddEntry appends a suggestion. Entries are deduplicated by label: a
// re-recorded label overwrites its backing value in place.
func (d *Datalist) AddEntry(value, label string) {
	for i := range d.Entries {
		if d.Entries[i].Label == label {
			d.Entries[i].Value = value
			return
		}
	}
	d.Entries = append(d.Entries, DatalistEntry{Value: value, Label: label})
}

// Labels returns the entry labels in insertion order.
func (d *Datalist) Labels() []string {
	out := make([]string, len(d.Entries))
	for i, e := range d.Entries {
		out[i] = e.Label
	}
	return out
}
