package permtree

import "strings"

// NodeKind identifies which variant of the permission tree tagged union a
// Node holds.
type NodeKind int

const (
	// KindBool is a literal true/false grant decision.
	KindBool NodeKind = iota
	// KindStr is either a case-insensitive "TRUE"/"FALSE" literal or a
	// permission value destined for a registered type callback.
	KindStr
	// KindList is an ordered sequence of nodes, implicit-OR when used as a
	// gate body.
	KindList
	// KindMap is a key-to-node mapping: either a single-key gate/type
	// dispatch or a multi-key shorthand OR.
	KindMap
)

func (k NodeKind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindStr:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Node is a permission tree node: a tagged union over bool, string, list and
// map. The zero Node has Kind KindBool and Bool false, i.e. a literal deny.
type Node struct {
	Kind NodeKind
	Bool bool
	Str  string
	List []Node
	Map  *OrderedMap
}

// BoolNode builds a literal grant/deny node.
func BoolNode(b bool) Node {
	return Node{Kind: KindBool, Bool: b}
}

// StrNode builds a string leaf node.
func StrNode(s string) Node {
	return Node{Kind: KindStr, Str: s}
}

// ListNode builds a list node from the given children, in order.
func ListNode(items ...Node) Node {
	return Node{Kind: KindList, List: items}
}

// MapNode builds a map node from an existing OrderedMap. A nil om is
// treated as an empty map.
func MapNode(om *OrderedMap) Node {
	if om == nil {
		om = NewOrderedMap()
	}
	return Node{Kind: KindMap, Map: om}
}

// IsEmpty reports whether the node is a zero-length list or map (the "no
// constraints" shortcut of step 4 / dispatch's size-0 map rule).
func (n Node) IsEmpty() bool {
	switch n.Kind {
	case KindList:
		return len(n.List) == 0
	case KindMap:
		return n.Map == nil || n.Map.Len() == 0
	default:
		return false
	}
}

// boolLiteral reports whether s is the case-insensitive spelling of a
// boolean literal, returning its value.
func boolLiteral(s string) (value bool, ok bool) {
	switch strings.ToUpper(s) {
	case "TRUE":
		return true, true
	case "FALSE":
		return false, true
	default:
		return false, false
	}
}

// Context is the opaque, caller-supplied runtime context handed to every
// permission-type and bypass callback. The evaluator never inspects its
// contents; it is pure passthrough.
type Context map[string]interface{}

// Callback is a registered permission-type predicate. It receives the raw
// permission string found at a leaf (e.g. "admin" in {role: "admin"}) and
// the runtime context, and must answer whether that permission is granted.
type Callback func(permissionValue string, ctx Context) (bool, error)

// BypassCallback is the optional global bypass predicate. If it returns
// true, CheckAccess short-circuits to grant (subject to NO_BYPASS and
// allowBypass).
type BypassCallback func(ctx Context) (bool, error)
