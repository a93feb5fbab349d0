package permtree

import "strings"

// path tracks the chain of map keys/gate names dispatch has descended
// through, so an error raised deep in a tree can report where it happened
// without the caller having to re-walk the tree to find it. Grounded on the
// teacher's tree.Cursor (internal/utils/tree/cursor.go), trimmed to the one
// operation the evaluator needs: append-and-render.
type path struct {
	nodes []string
}

// push returns a new path with name appended; it never mutates p, since
// dispatch holds many live paths concurrently across gate branches.
func (p path) push(name string) path {
	nodes := make([]string, len(p.nodes), len(p.nodes)+1)
	copy(nodes, p.nodes)
	nodes = append(nodes, name)
	return path{nodes: nodes}
}

func (p path) String() string {
	if len(p.nodes) == 0 {
		return "$"
	}
	return "$." + strings.Join(p.nodes, ".")
}
