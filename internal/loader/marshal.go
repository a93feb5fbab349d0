package loader

import (
	"encoding/json"

	legacyyaml "github.com/geofffranks/yaml"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ordermind/logical-permissions-go/pkg/permtree"
)

// ToInterface converts a Node into a plain interface{} tree of
// bool/string/[]interface{}/map[string]interface{}, for callers that want
// to hand a tree to a generic library function. Because a Go map carries
// no order, this loses OrderedMap's key order; callers that need an
// order-preserving rendering should use MarshalYAML or MarshalJSON
// instead, which encode the Node tree directly.
func ToInterface(n permtree.Node) interface{} {
	switch n.Kind {
	case permtree.KindBool:
		return n.Bool
	case permtree.KindStr:
		return n.Str
	case permtree.KindList:
		out := make([]interface{}, len(n.List))
		for i, child := range n.List {
			out[i] = ToInterface(child)
		}
		return out
	case permtree.KindMap:
		out := make(map[string]interface{}, n.Map.Len())
		n.Map.Each(func(k string, v permtree.Node) bool {
			out[k] = ToInterface(v)
			return true
		})
		return out
	default:
		return nil
	}
}

// MarshalYAML renders n as YAML via gopkg.in/yaml.v3, preserving Map key
// order using yaml.v3's low-level yaml.Node so that debug output matches
// the order an evaluator actually walked, not an alphabetical re-sort.
func MarshalYAML(n permtree.Node) ([]byte, error) {
	node := toYAMLNode(n)
	return yamlv3.Marshal(node)
}

func toYAMLNode(n permtree.Node) *yamlv3.Node {
	switch n.Kind {
	case permtree.KindBool:
		node := &yamlv3.Node{}
		_ = node.Encode(n.Bool)
		return node
	case permtree.KindStr:
		node := &yamlv3.Node{}
		_ = node.Encode(n.Str)
		return node
	case permtree.KindList:
		node := &yamlv3.Node{Kind: yamlv3.SequenceNode}
		for _, child := range n.List {
			node.Content = append(node.Content, toYAMLNode(child))
		}
		return node
	case permtree.KindMap:
		node := &yamlv3.Node{Kind: yamlv3.MappingNode}
		n.Map.Each(func(k string, v permtree.Node) bool {
			keyNode := &yamlv3.Node{}
			_ = keyNode.Encode(k)
			node.Content = append(node.Content, keyNode, toYAMLNode(v))
			return true
		})
		return node
	default:
		node := &yamlv3.Node{}
		_ = node.Encode(nil)
		return node
	}
}

// MarshalLegacyYAML renders n through github.com/geofffranks/yaml, a
// forked yaml.v2. It goes through ToInterface first, so it does not
// preserve Map key order; prefer MarshalYAML when order-exact output
// matters.
func MarshalLegacyYAML(n permtree.Node) ([]byte, error) {
	return legacyyaml.Marshal(ToInterface(n))
}

// MarshalJSON renders n as JSON, preserving Map key order by building the
// object body directly rather than through a Go map (whose key order
// encoding/json cannot control).
func MarshalJSON(n permtree.Node) ([]byte, error) {
	return appendJSON(nil, n)
}

func appendJSON(buf []byte, n permtree.Node) ([]byte, error) {
	switch n.Kind {
	case permtree.KindBool:
		b, err := json.Marshal(n.Bool)
		if err != nil {
			return nil, err
		}
		return append(buf, b...), nil

	case permtree.KindStr:
		b, err := json.Marshal(n.Str)
		if err != nil {
			return nil, err
		}
		return append(buf, b...), nil

	case permtree.KindList:
		buf = append(buf, '[')
		for i, child := range n.List {
			if i > 0 {
				buf = append(buf, ',')
			}
			var err error
			buf, err = appendJSON(buf, child)
			if err != nil {
				return nil, err
			}
		}
		return append(buf, ']'), nil

	case permtree.KindMap:
		buf = append(buf, '{')
		first := true
		var outerErr error
		n.Map.Each(func(k string, v permtree.Node) bool {
			if !first {
				buf = append(buf, ',')
			}
			first = false
			keyJSON, err := json.Marshal(k)
			if err != nil {
				outerErr = err
				return false
			}
			buf = append(buf, keyJSON...)
			buf = append(buf, ':')
			buf, err = appendJSON(buf, v)
			if err != nil {
				outerErr = err
				return false
			}
			return true
		})
		if outerErr != nil {
			return nil, outerErr
		}
		return append(buf, '}'), nil

	default:
		return append(buf, []byte("null")...), nil
	}
}
