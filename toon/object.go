package toon

import "fmt"

type objEntry struct {
	name   string
	quoted bool
	value  *Value
}

// Object is an insertion-ordered mapping from string keys to Values, per §3's
// invariant that object keys are unique and preserve first-insertion order.
type Object struct {
	entries []objEntry
	index   map[string]int
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{index: make(map[string]int)}
}

// Set inserts a new unquoted-key field. Returns an error if name is already present.
func (o *Object) Set(name string, v *Value) error {
	return o.set(name, false, v)
}

// SetQuoted inserts a new field whose source key was written quoted (tracked so
// path-expansion can skip it, per §4.7).
func (o *Object) SetQuoted(name string, v *Value) error {
	return o.set(name, true, v)
}

func (o *Object) set(name string, quoted bool, v *Value) error {
	if _, exists := o.index[name]; exists {
		return fmt.Errorf("duplicate key: %s", name)
	}
	o.index[name] = len(o.entries)
	o.entries = append(o.entries, objEntry{name: name, quoted: quoted, value: v})
	return nil
}

// Overwrite replaces the value for name if present, otherwise appends it. Used
// for non-strict last-writer-wins policies (duplicate keys, expansion conflicts).
func (o *Object) Overwrite(name string, v *Value) {
	if i, ok := o.index[name]; ok {
		o.entries[i].value = v
		return
	}
	o.index[name] = len(o.entries)
	o.entries = append(o.entries, objEntry{name: name, value: v})
}

// Get returns the value for name and whether it was present.
func (o *Object) Get(name string) (*Value, bool) {
	i, ok := o.index[name]
	if !ok {
		return nil, false
	}
	return o.entries[i].value, true
}

// IsQuoted reports whether name's source key was written quoted.
func (o *Object) IsQuoted(name string) bool {
	i, ok := o.index[name]
	return ok && o.entries[i].quoted
}

// Len returns the number of fields.
func (o *Object) Len() int { return len(o.entries) }

// Keys returns field names in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.entries))
	for i, e := range o.entries {
		keys[i] = e.name
	}
	return keys
}

// Range calls fn for each field in insertion order, stopping early if fn returns false.
func (o *Object) Range(fn func(name string, quoted bool, v *Value) bool) {
	for _, e := range o.entries {
		if !fn(e.name, e.quoted, e.value) {
			return
		}
	}
}
