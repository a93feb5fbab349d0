package permtree

// cloneNode produces a deep copy of n. This is the sole mechanism behind
// non-mutation of the caller's tree: CheckAccess clones the root once, up
// front, and every subsequent step (NO_BYPASS stripping, dispatch, gate
// routines) operates on the clone, never on the caller's tree.
func cloneNode(n Node) Node {
	switch n.Kind {
	case KindList:
		out := make([]Node, len(n.List))
		for i, child := range n.List {
			out[i] = cloneNode(child)
		}
		return Node{Kind: KindList, List: out}
	case KindMap:
		return Node{Kind: KindMap, Map: n.Map.Clone()}
	default:
		return n
	}
}

// nodesEqual reports deep equality between two nodes, used by the
// non-mutation property tests to compare a tree before and after a
// CheckAccess call.
func nodesEqual(a, b Node) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindBool:
		return a.Bool == b.Bool
	case KindStr:
		return a.Str == b.Str
	case KindList:
		if len(a.List) != len(b.List) {
			return false
		}
		for i := range a.List {
			if !nodesEqual(a.List[i], b.List[i]) {
				return false
			}
		}
		return true
	case KindMap:
		return a.Map.Equal(b.Map)
	default:
		return false
	}
}

// Equal reports whether n and other are deep-equal, ignoring Map key
// insertion order.
func (n Node) Equal(other Node) bool {
	return nodesEqual(n, other)
}
