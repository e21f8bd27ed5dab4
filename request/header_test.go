// Copyright 2026 The fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeader(t *testing.T) {
	t.Run("zero value", testHeaderZeroValue)
	t.Run("set replaces", testHeaderSetReplaces)
	t.Run("case insensitive", testHeaderCaseInsensitive)
	t.Run("first casing wins", testHeaderFirstCasingWins)
	t.Run("iteration order", testHeaderIterationOrder)
	t.Run("del", testHeaderDel)
	t.Run("clone", testHeaderClone)
}

func testHeaderZeroValue(t *testing.T) {
	t.Parallel()
	var h Header
	assert.Equal(t, "", h.Get("Accept"))
	assert.False(t, h.Has("Accept"))
	assert.Zero(t, h.Len())
	h.Each(func(string, string) {
		t.Error("empty header must not iterate")
	})
	h.Set("Accept", "application/json")
	assert.Equal(t, "application/json", h.Get("Accept"))
}

func testHeaderSetReplaces(t *testing.T) {
	t.Parallel()
	h := NewHeader()
	h.Set("Accept", "text/plain")
	h.Set("Accept", "application/json")
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, "application/json", h.Get("Accept"))
}

func testHeaderCaseInsensitive(t *testing.T) {
	t.Parallel()
	h := NewHeader()
	h.Set("Content-Type", "text/plain")
	assert.Equal(t, "text/plain", h.Get("content-type"))
	assert.Equal(t, "text/plain", h.Get("CONTENT-TYPE"))
	assert.True(t, h.Has("cOnTeNt-TyPe"))
	h.Set("CONTENT-TYPE", "application/json")
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, "application/json", h.Get("Content-Type"))
}

func testHeaderFirstCasingWins(t *testing.T) {
	t.Parallel()
	h := NewHeader()
	h.Set("x-custom-header", "1")
	h.Set("X-Custom-Header", "2")
	var names []string
	h.Each(func(name, value string) {
		names = append(names, name)
		assert.Equal(t, "2", value)
	})
	assert.Equal(t, []string{"x-custom-header"}, names)
}

func testHeaderIterationOrder(t *testing.T) {
	t.Parallel()
	h := NewHeader()
	h.Set("B", "2")
	h.Set("A", "1")
	h.Set("C", "3")
	h.Set("A", "updated") // does not move A

	var got [][2]string
	h.Each(func(name, value string) {
		got = append(got, [2]string{name, value})
	})
	assert.Equal(t, [][2]string{{"B", "2"}, {"A", "updated"}, {"C", "3"}}, got)
}

func testHeaderDel(t *testing.T) {
	t.Parallel()
	h := NewHeader()
	h.Del("Missing") // no-op
	h.Set("A", "1")
	h.Set("B", "2")
	h.Del("a")
	assert.Equal(t, 1, h.Len())
	assert.False(t, h.Has("A"))
	var names []string
	h.Each(func(name, _ string) {
		names = append(names, name)
	})
	assert.Equal(t, []string{"B"}, names)

	// A name re-set after deletion takes the new casing and position.
	h.Set("a", "3")
	names = names[:0]
	h.Each(func(name, _ string) {
		names = append(names, name)
	})
	assert.Equal(t, []string{"B", "a"}, names)
}

func testHeaderClone(t *testing.T) {
	t.Parallel()
	h := NewHeader()
	h.Set("A", "1")
	h.Set("B", "2")
	h2 := h.Clone()
	require.Equal(t, 2, h2.Len())
	h2.Set("A", "changed")
	h2.Set("C", "3")
	assert.Equal(t, "1", h.Get("A"))
	assert.False(t, h.Has("C"))
	assert.Equal(t, "changed", h2.Get("A"))
}
