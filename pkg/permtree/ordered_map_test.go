package permtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderedMapPreservesInsertionOrder(t *testing.T) {
	om := NewOrderedMap()
	om.Set("c", StrNode("3"))
	om.Set("a", StrNode("1"))
	om.Set("b", StrNode("2"))

	assert.Equal(t, []string{"c", "a", "b"}, om.Keys())

	om.Set("a", StrNode("1-updated"))
	assert.Equal(t, []string{"c", "a", "b"}, om.Keys(), "updating an existing key must not move it")

	v, ok := om.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1-updated", v.Str)
}

func TestOrderedMapDelete(t *testing.T) {
	om := NewOrderedMap()
	om.Set("a", StrNode("1"))
	om.Set("b", StrNode("2"))
	om.Set("c", StrNode("3"))

	om.Delete("b")
	assert.Equal(t, []string{"a", "c"}, om.Keys())
	assert.Equal(t, 2, om.Len())

	_, ok := om.Get("b")
	assert.False(t, ok)

	om.Delete("missing")
	assert.Equal(t, 2, om.Len())
}

func TestOrderedMapEach(t *testing.T) {
	om := NewOrderedMap()
	om.Set("a", StrNode("1"))
	om.Set("b", StrNode("2"))
	om.Set("c", StrNode("3"))

	var seen []string
	om.Each(func(k string, v Node) bool {
		seen = append(seen, k)
		return k != "b"
	})
	assert.Equal(t, []string{"a", "b"}, seen, "Each must stop as soon as fn returns false")
}

func TestOrderedMapClone(t *testing.T) {
	om := NewOrderedMap()
	om.Set("a", ListNode(StrNode("x")))

	clone := om.Clone()
	v, _ := clone.Get("a")
	v.List[0] = StrNode("mutated")

	orig, _ := om.Get("a")
	assert.Equal(t, "x", orig.List[0].Str, "Clone must be a deep copy")
}

func TestOrderedMapEqualIgnoresOrder(t *testing.T) {
	a := NewOrderedMap()
	a.Set("x", StrNode("1"))
	a.Set("y", StrNode("2"))

	b := NewOrderedMap()
	b.Set("y", StrNode("2"))
	b.Set("x", StrNode("1"))

	assert.True(t, a.Equal(b))

	b.Set("z", StrNode("3"))
	assert.False(t, a.Equal(b))
}

func TestNodeIsEmpty(t *testing.T) {
	assert.True(t, ListNode().IsEmpty())
	assert.True(t, MapNode(NewOrderedMap()).IsEmpty())
	assert.False(t, BoolNode(false).IsEmpty())
	assert.False(t, StrNode("").IsEmpty())

	om := NewOrderedMap()
	om.Set("role", StrNode("admin"))
	assert.False(t, MapNode(om).IsEmpty())
}
