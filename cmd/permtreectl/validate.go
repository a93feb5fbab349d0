package main

import (
	"fmt"
	"math"
	"strconv"

	"github.com/ordermind/logical-permissions-go/pkg/permtree"
)

// validateTree performs a structural-only check of tree (NO_BYPASS
// placement, nested types, boolean literals under a type, bare strings
// without a type, gate shape and arity), without invoking any
// permission-type or bypass callback and without a registry, so
// unregistered type names are not reported. Unlike the core Evaluator, which
// returns the first error encountered, this walker is best-effort: it
// keeps descending after finding a violation so a single `validate` run
// can report every structural problem in a tree at once.
func validateTree(tree permtree.Node) []string {
	var violations []string
	walkValidate(tree, "", true, "$", &violations)
	return violations
}

func walkValidate(n permtree.Node, activeType string, atRoot bool, path string, out *[]string) {
	switch n.Kind {
	case permtree.KindBool:
		if activeType != "" {
			*out = append(*out, fmt.Sprintf("%s: boolean literal is not valid under active permission type %q", path, activeType))
		}

	case permtree.KindStr:
		if _, ok := boolLiteral(n.Str); ok {
			if activeType != "" {
				*out = append(*out, fmt.Sprintf("%s: boolean literal string %q is not valid under active permission type %q", path, n.Str, activeType))
			}
			return
		}
		if activeType == "" {
			*out = append(*out, fmt.Sprintf("%s: bare permission string %q requires a surrounding permission type", path, n.Str))
		}

	case permtree.KindList:
		for i, child := range n.List {
			walkValidate(child, activeType, false, fmt.Sprintf("%s[%d]", path, i), out)
		}

	case permtree.KindMap:
		walkValidateMap(n, activeType, atRoot, path, out)

	default:
		*out = append(*out, fmt.Sprintf("%s: unrecognized node kind", path))
	}
}

func walkValidateMap(n permtree.Node, activeType string, atRoot bool, path string, out *[]string) {
	size := n.Map.Len()
	if size == 0 {
		return
	}
	if size >= 2 {
		// Shorthand OR: each entry is checked as its own single-entry map,
		// the way the evaluator splits it.
		n.Map.Each(func(k string, v permtree.Node) bool {
			entry := permtree.NewOrderedMap()
			entry.Set(k, v)
			walkValidateMap(permtree.MapNode(entry), activeType, atRoot, path, out)
			return true
		})
		return
	}

	k := n.Map.Keys()[0]
	v, _ := n.Map.Get(k)
	up := upper(k)
	childPath := path + "." + k

	switch {
	case up == permtree.KeyNoBypass:
		if !atRoot {
			*out = append(*out, fmt.Sprintf("%s: NO_BYPASS is only legal at the top level of the root map", childPath))
			return
		}
		// At the root, NO_BYPASS's own payload follows the same implicit-OR
		// shape as a gate body; validated with no active type and never
		// itself treated as "root" for nested purposes.
		walkValidate(v, "", false, childPath, out)

	case up == permtree.KeyAnd || up == permtree.KeyNand || up == permtree.KeyOr || up == permtree.KeyNor:
		validateGateArity(v, up, 1, childPath, out)
		walkValidate(v, activeType, false, childPath, out)

	case up == permtree.KeyXor:
		validateGateArity(v, up, 2, childPath, out)
		walkValidate(v, activeType, false, childPath, out)

	case up == permtree.KeyNot:
		if v.Kind != permtree.KindMap && !(v.Kind == permtree.KindStr && v.Str != "") {
			*out = append(*out, fmt.Sprintf("%s: NOT requires a single-key map or a non-empty string", childPath))
		}
		if v.Kind == permtree.KindMap && v.Map.Len() != 1 {
			*out = append(*out, fmt.Sprintf("%s: NOT requires a single-key map or a non-empty string", childPath))
		}
		walkValidate(v, activeType, false, childPath, out)

	case up == permtree.KeyTrue || up == permtree.KeyFalse:
		*out = append(*out, fmt.Sprintf("%s: boolean literal %q cannot have children", childPath, up))

	default:
		if activeType != "" && isIndexKey(k) {
			walkValidate(v, activeType, false, childPath, out)
			return
		}
		if activeType != "" {
			*out = append(*out, fmt.Sprintf("%s: nested permission type %q is not allowed under active type %q", childPath, k, activeType))
			return
		}
		walkValidate(v, k, false, childPath, out)
	}
}

func validateGateArity(value permtree.Node, gateName string, minArgs int, path string, out *[]string) {
	var count int
	switch value.Kind {
	case permtree.KindList:
		count = len(value.List)
	case permtree.KindMap:
		count = value.Map.Len()
	default:
		*out = append(*out, fmt.Sprintf("%s: %s requires a list or map value", path, gateName))
		return
	}
	if count < minArgs {
		*out = append(*out, fmt.Sprintf("%s: %s requires at least %d element(s), got %d", path, gateName, minArgs, count))
	}
}

// isIndexKey reports whether k parses as a finite number; under an active
// type such a key indexes a gate or type body instead of naming a type.
func isIndexKey(k string) bool {
	f, err := strconv.ParseFloat(k, 64)
	return err == nil && !math.IsInf(f, 0) && !math.IsNaN(f)
}

func boolLiteral(s string) (bool, bool) {
	switch upper(s) {
	case "TRUE":
		return true, true
	case "FALSE":
		return false, true
	default:
		return false, false
	}
}
