// Package payload assembles a listing submission as a small tagged tree and
// flattens it into the multipart key/value grammar the marketplace backend
// expects. The tree is built once at submit time and is write-once: encoding
// dispatches on explicit tags, never on runtime shape-sniffing.
package payload

import "strconv"

// Kind tags a node of the submission tree.
type Kind int

const (
	// Scalar is a plain text or numeric value.
	Scalar Kind = iota
	// File references an already-resolved binary descriptor.
	File
	// List is an ordered collection.
	List
	// Record is an insertion-ordered set of key/value entries, which keeps
	// encoding deterministic for equal input.
	Record
)

// FileRef points at an already-resolved local file; the engine never opens it.
type FileRef struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	ContentType string `json:"content_type,omitempty"`
}

// Entry is one key/value member of a record.
type Entry struct {
	Key   string
	Value Value
}

// Value is a tagged node: scalar, file reference, list, or record.
type Value struct {
	kind    Kind
	scalar  string
	file    FileRef
	list    []Value
	entries []Entry
}

// Kind reports the node's tag.
func (v Value) Kind() Kind { return v.kind }

// Text wraps a scalar.
func Text(s string) Value {
	return Value{kind: Scalar, scalar: s}
}

// Bool wraps a boolean as a scalar "true"/"false".
func Bool(b bool) Value {
	return Value{kind: Scalar, scalar: strconv.FormatBool(b)}
}

// Int wraps an integer scalar.
func Int(n int64) Value {
	return Value{kind: Scalar, scalar: strconv.FormatInt(n, 10)}
}

// Attach wraps a file reference.
func Attach(ref FileRef) Value {
	return Value{kind: File, file: ref}
}

// ListOf wraps an ordered collection.
func ListOf(vs ...Value) Value {
	return Value{kind: List, list: vs}
}

// RecordOf wraps entries preserving their order.
func RecordOf(entries ...Entry) Value {
	return Value{kind: Record, entries: entries}
}

// Field builds a record entry.
func Field(key string, v Value) Entry {
	return Entry{Key: key, Value: v}
}

// get returns the entry value stored under key, if any.
func (v Value) get(key string) (Value, bool) {
	for _, e := range v.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return Value{}, false
}
