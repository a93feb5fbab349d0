package main

import "github.com/ordermind/logical-permissions-go/pkg/permtree"

// reservedUpper is the CLI's own copy of the grammar's reserved keyword
// set (pkg/permtree keeps its equivalent unexported), used by
// registerStubTypes to recognize gate/literal keys without guessing at a
// type name.
var reservedUpper = map[string]bool{
	permtree.KeyNoBypass: true,
	permtree.KeyAnd:      true,
	permtree.KeyNand:     true,
	permtree.KeyOr:       true,
	permtree.KeyNor:      true,
	permtree.KeyXor:      true,
	permtree.KeyNot:      true,
	permtree.KeyTrue:     true,
	permtree.KeyFalse:    true,
}

func upper(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}

// registerStubTypes scans tree for every candidate permission-type name
// (a non-reserved map key) and registers a stub callback that always
// grants, so that `check` can be run against an ad-hoc tree without the
// caller having wired real backends, reporting a real decision rooted in
// gate/bypass logic even when type callbacks are uninteresting.
func registerStubTypes(ev *permtree.Evaluator, tree permtree.Node) {
	seen := map[string]bool{}
	collectTypeNames(tree, seen)
	for name := range seen {
		_ = ev.Types.Add(name, func(string, permtree.Context) (bool, error) {
			return true, nil
		})
	}
}

func collectTypeNames(n permtree.Node, out map[string]bool) {
	switch n.Kind {
	case permtree.KindList:
		for _, child := range n.List {
			collectTypeNames(child, out)
		}
	case permtree.KindMap:
		n.Map.Each(func(k string, v permtree.Node) bool {
			if !reservedUpper[upper(k)] {
				out[k] = true
			}
			collectTypeNames(v, out)
			return true
		})
	}
}
