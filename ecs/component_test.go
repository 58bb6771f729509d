package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreColumns(t *testing.T) {
	s := newStore()
	e1 := newEntity(0, 1)
	e2 := newEntity(1, 1)

	s.set(e1, "pos", 3.5)
	s.set(e1, "name", "scout")
	s.set(e2, "pos", 7.0)

	v, ok := s.get(e1, "pos")
	assert.True(t, ok)
	assert.Equal(t, 3.5, v)

	assert.True(t, s.has(e2, "pos"))
	assert.False(t, s.has(e2, "name"))

	_, ok = s.get(e1, "missing")
	assert.False(t, ok)

	// Overwrite in place.
	s.set(e1, "pos", 4.5)
	v, _ = s.get(e1, "pos")
	assert.Equal(t, 4.5, v)

	s.remove(e1, "pos")
	assert.False(t, s.has(e1, "pos"))
	assert.True(t, s.has(e2, "pos"), "columns are independent per entity")

	// Removing from an unknown column is a no-op.
	s.remove(e1, "missing")

	s.removeAll(e2)
	assert.False(t, s.has(e2, "pos"))
	assert.True(t, s.has(e1, "name"))
}
