package rtsp

import "strings"

// headerField is one "Name: value" pair, in the order it appeared on
// the wire.
type headerField struct {
	name  string
	value string
}

// Header is an ordered list of RTSP header fields. Lookup is
// case-insensitive; duplicate names are preserved in arrival order.
type Header struct {
	fields []headerField
}

// Add appends a header field.
func (h *Header) Add(name, value string) {
	h.fields = append(h.fields, headerField{name: name, value: value})
}

// Get returns the value of the first field matching name
// case-insensitively, and whether it was found.
func (h Header) Get(name string) (string, bool) {
	for _, f := range h.fields {
		if strings.EqualFold(f.name, name) {
			return f.value, true
		}
	}
	return "", false
}

// GetOr returns Get(name), or def if the header is absent.
func (h Header) GetOr(name, def string) string {
	if v, ok := h.Get(name); ok {
		return v
	}
	return def
}

// All returns the ordered name/value pairs as they were added.
func (h Header) All() []struct{ Name, Value string } {
	out := make([]struct{ Name, Value string }, len(h.fields))
	for i, f := range h.fields {
		out[i] = struct{ Name, Value string }{f.name, f.value}
	}
	return out
}
