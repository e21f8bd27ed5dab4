// Copyright 2026 The fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import "strings"

// A Header is the set of header fields to be sent with a request. It
// maps each field name to a single value: names are case-insensitive,
// and setting a name that is already present replaces its value ("set"
// semantics, not "append"). The casing reported back for a name is the
// casing it was first set with.
//
// Iteration order is the order in which names were first set, so the
// fields are copied onto the wire deterministically.
//
// The zero value is an empty header ready for use. A Header is not
// safe for concurrent use by multiple goroutines.
type Header struct {
	names  map[string]string // lowercased name → casing as first set
	values map[string]string // lowercased name → current value
	order  []string          // lowercased names in first-set order
}

// NewHeader returns an empty Header.
func NewHeader() *Header {
	return &Header{}
}

// Set sets the header field name to value, replacing any existing
// value. If the field is new, its casing and position are recorded;
// otherwise the casing and position from the first Set are kept.
func (h *Header) Set(name, value string) {
	key := strings.ToLower(name)
	if h.values == nil {
		h.names = make(map[string]string)
		h.values = make(map[string]string)
	}
	if _, ok := h.names[key]; !ok {
		h.names[key] = name
		h.order = append(h.order, key)
	}
	h.values[key] = value
}

// Get returns the value of the header field name, or the empty string
// if the field is not present. Name matching is case-insensitive.
func (h *Header) Get(name string) string {
	return h.values[strings.ToLower(name)]
}

// Has reports whether the header field name is present.
func (h *Header) Has(name string) bool {
	_, ok := h.values[strings.ToLower(name)]
	return ok
}

// Del removes the header field name, if present.
func (h *Header) Del(name string) {
	key := strings.ToLower(name)
	if _, ok := h.values[key]; !ok {
		return
	}
	delete(h.names, key)
	delete(h.values, key)
	for i, k := range h.order {
		if k == key {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of header fields.
func (h *Header) Len() int {
	return len(h.values)
}

// Each calls f once per header field, in first-set order, passing the
// field name in its first-set casing and the current value. The header
// must not be modified from within f.
func (h *Header) Each(f func(name, value string)) {
	for _, key := range h.order {
		f(h.names[key], h.values[key])
	}
}

// Clone returns a deep copy of the header.
func (h *Header) Clone() *Header {
	h2 := NewHeader()
	h.Each(h2.Set)
	return h2
}
