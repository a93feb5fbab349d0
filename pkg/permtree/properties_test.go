package permtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDeMorganNandIsNotAnd and TestDeMorganNorIsNotOr verify the gate
// routines satisfy De Morgan's laws across every combination of three
// boolean inputs, rather than spot-checking a handful of cases.
func TestDeMorganNandIsNotAnd(t *testing.T) {
	for mask := 0; mask < 8; mask++ {
		granted := []string{}
		for i := 0; i < 3; i++ {
			if mask&(1<<i) != 0 {
				granted = append(granted, idx(i))
			}
		}
		ev := newFlagEvaluator(granted...)

		and, err := ev.CheckAccessDefault(gateTree(KeyAnd, idx(0), idx(1), idx(2)))
		require.NoError(t, err)
		nand, err := ev.CheckAccessDefault(gateTree(KeyNand, idx(0), idx(1), idx(2)))
		require.NoError(t, err)

		assert.Equal(t, !and, nand, "NAND must be the exact negation of AND for mask %03b", mask)
	}
}

func TestDeMorganNorIsNotOr(t *testing.T) {
	for mask := 0; mask < 8; mask++ {
		granted := []string{}
		for i := 0; i < 3; i++ {
			if mask&(1<<i) != 0 {
				granted = append(granted, idx(i))
			}
		}
		ev := newFlagEvaluator(granted...)

		or, err := ev.CheckAccessDefault(gateTree(KeyOr, idx(0), idx(1), idx(2)))
		require.NoError(t, err)
		nor, err := ev.CheckAccessDefault(gateTree(KeyNor, idx(0), idx(1), idx(2)))
		require.NoError(t, err)

		assert.Equal(t, !or, nor, "NOR must be the exact negation of OR for mask %03b", mask)
	}
}

func idx(i int) string {
	return []string{"v0", "v1", "v2"}[i]
}

// TestBypassGrantsWhenAllowed verifies a satisfied bypass predicate always
// short-circuits to grant regardless of what the tree itself would decide,
// as long as allowBypass is true and no NO_BYPASS entry suppresses it.
func TestBypassGrantsWhenAllowed(t *testing.T) {
	ev := roleEvaluator("admin")
	_ = ev.Bypass.Set(func(Context) (bool, error) { return true, nil })

	denyingTree := singleEntryMap("role", StrNode("nobody-has-this-role"))

	granted, err := ev.CheckAccessDefault(denyingTree)
	require.NoError(t, err)
	assert.True(t, granted, "a granting bypass predicate must override an otherwise-denying tree")
}

// TestRegistrySetAllIdempotence verifies SetAll followed immediately by
// GetAll round-trips to an equivalent key set.
func TestRegistrySetAllIdempotence(t *testing.T) {
	r := NewTypeRegistry()
	input := map[string]Callback{"role": noopCallback, "flag": noopCallback, "tenant": noopCallback}

	require.NoError(t, r.SetAll(input))
	got := r.GetAll()
	assert.Len(t, got, len(input))
	for name := range input {
		assert.Contains(t, got, name)
	}

	require.NoError(t, r.SetAll(input))
	got2 := r.GetAll()
	assert.Len(t, got2, len(input))
}

// TestListMapGateBodyEquivalenceFuzz extends TestGateListAndMapBodyEquivalence
// across every subset of a five-element universe, rather than one fixed
// case, to pin down the List<->Map equivalence property more broadly.
func TestListMapGateBodyEquivalenceFuzz(t *testing.T) {
	universe := []string{"a", "b", "c", "d", "e"}

	for mask := 0; mask < (1 << len(universe)); mask++ {
		var granted []string
		for i, v := range universe {
			if mask&(1<<i) != 0 {
				granted = append(granted, v)
			}
		}
		ev := newFlagEvaluator(granted...)

		listInner := NewOrderedMap()
		listInner.Set(KeyOr, ListNode(strNodes(universe)...))
		listOuter := singleEntryMap("flag", MapNode(listInner))

		indexed := NewOrderedMap()
		for i, v := range universe {
			indexed.Set(idxKey(i), StrNode(v))
		}
		mapInner := NewOrderedMap()
		mapInner.Set(KeyOr, MapNode(indexed))
		mapOuter := singleEntryMap("flag", MapNode(mapInner))

		listResult, err := ev.CheckAccessDefault(listOuter)
		require.NoError(t, err)
		mapResult, err := ev.CheckAccessDefault(mapOuter)
		require.NoError(t, err)

		assert.Equal(t, listResult, mapResult, "list and index-keyed map gate bodies must agree for mask %05b", mask)
	}
}

func idxKey(i int) string {
	return string(rune('0' + i))
}
