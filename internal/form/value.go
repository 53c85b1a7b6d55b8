package form

import "strings"

// ValueKind tags the shape of a field value.
type ValueKind int

const (
	// Absent means the field has never been set (or was cleared).
	Absent ValueKind = iota
	// Scalar is a single text value (text, number, select, radio, single date).
	Scalar
	// List is an ordered multi-value (checkbox selections).
	List
	// Range is a start/end pair (date ranges).
	Range
)

// Value is the tagged current value of a form field.
type Value struct {
	kind       ValueKind
	scalar     string
	list       []string
	start, end string
}

// String wraps a scalar value.
func String(s string) Value {
	return Value{kind: Scalar, scalar: s}
}

// Strings wraps an ordered multi-value.
func Strings(vs ...string) Value {
	return Value{kind: List, list: vs}
}

// Span wraps a start/end pair.
func Span(start, end string) Value {
	return Value{kind: Range, start: start, end: end}
}

// Kind reports the value's shape tag.
func (v Value) Kind() ValueKind { return v.kind }

// Scalar returns the scalar form, or "" for non-scalar values.
func (v Value) Scalar() string { return v.scalar }

// List returns the list form, or nil for non-list values.
func (v Value) List() []string { return v.list }

// Span returns the range endpoints, empty for non-range values.
func (v Value) Span() (string, string) { return v.start, v.end }

// IsEmpty reports whether the value fails a non-empty check: absent, a blank
// scalar, a zero-length list, or a range with both endpoints blank.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case Scalar:
		return v.scalar == ""
	case List:
		return len(v.list) == 0
	case Range:
		return v.start == "" && v.end == ""
	default:
		return true
	}
}

// Text returns the value coerced to its string form. Absent values coerce to
// "" so rule evaluation never dereferences a missing value. Lists and ranges
// join their elements with commas.
func (v Value) Text() string {
	switch v.kind {
	case Scalar:
		return v.scalar
	case List:
		return strings.Join(v.list, ",")
	case Range:
		return v.start + "," + v.end
	default:
		return ""
	}
}

// State maps a field's metaKey to its current value. Keys are unique;
// insertion order is irrelevant.
type State map[string]Value

// Get returns the value stored under metaKey, or the absent value.
func (s State) Get(metaKey string) Value {
	return s[metaKey]
}

// Set stores a value under metaKey.
func (s State) Set(metaKey string, v Value) {
	s[metaKey] = v
}

// Delete clears the value stored under metaKey.
func (s State) Delete(metaKey string) {
	delete(s, metaKey)
}

// Clone returns a shallow copy of the state.
func (s State) Clone() State {
	out := make(State, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
