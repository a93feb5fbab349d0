// Package loader parses a permtree.Node out of YAML or JSON bytes, and
// marshals one back out for inspection and debugging. It is a convenience
// layer outside the core evaluator's contract: the evaluator itself never
// imports this package.
//
// Uses the forked github.com/geofffranks/simpleyaml + github.com/geofffranks/yaml
// to sidestep a known upstream go-yaml bug mangling certain map keys,
// which matters here since a permission tree is itself an arbitrarily-keyed
// map.
package loader

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/geofffranks/simpleyaml"

	"github.com/ordermind/logical-permissions-go/pkg/permtree"
)

// ParseYAML parses a permission tree from YAML bytes. The document root
// may be a map, a list, or (rarely) a bare scalar.
//
// Known limitation: simpleyaml (like the upstream go-yaml v2 it forks)
// decodes mappings into a map[interface{}]interface{} with no preserved
// source order, so a tree loaded from YAML has its Map entries re-sorted
// alphabetically by key rather than carrying the file's original key
// order. Trees that depend on non-alphabetical evaluation order (the
// rolling side-effect / short-circuit ordering described for gate bodies)
// should use the List form in YAML, which round-trips order-exact.
func ParseYAML(data []byte) (permtree.Node, error) {
	y, err := simpleyaml.NewYaml(data)
	if err != nil {
		return permtree.Node{}, fmt.Errorf("parsing YAML: %w", err)
	}

	if m, merr := y.Map(); merr == nil {
		return fromInterface(deinterface(m))
	}
	if a, aerr := y.Array(); aerr == nil {
		return fromInterface(deinterface(a))
	}
	if s, serr := y.String(); serr == nil {
		return fromInterface(s)
	}
	if b, berr := y.Bool(); berr == nil {
		return fromInterface(b)
	}
	return permtree.Node{}, fmt.Errorf("parsing YAML: document root is not a map, list, string or bool")
}

// ParseJSON parses a permission tree from JSON bytes. Unlike ParseYAML,
// Go's encoding/json already decodes object members as
// map[string]interface{}, but still offers no ordering guarantee across a
// single Unmarshal call, so the same alphabetical re-sort applies.
func ParseJSON(data []byte) (permtree.Node, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return permtree.Node{}, fmt.Errorf("parsing JSON: %w", err)
	}
	return fromInterface(raw)
}

// deinterface recursively normalizes map[interface{}]interface{} (what
// simpleyaml/yaml.v2-style decoding produces) into map[string]interface{}.
func deinterface(o interface{}) interface{} {
	switch v := o.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, val := range v {
			out[fmt.Sprintf("%v", k)] = deinterface(val)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, val := range v {
			out[k] = deinterface(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, val := range v {
			out[i] = deinterface(val)
		}
		return out
	default:
		return o
	}
}

// fromInterface converts a generic decoded value into a permtree.Node.
func fromInterface(v interface{}) (permtree.Node, error) {
	switch val := v.(type) {
	case nil:
		return permtree.MapNode(permtree.NewOrderedMap()), nil
	case bool:
		return permtree.BoolNode(val), nil
	case string:
		return permtree.StrNode(val), nil
	case []interface{}:
		items := make([]permtree.Node, len(val))
		for i, e := range val {
			n, err := fromInterface(e)
			if err != nil {
				return permtree.Node{}, err
			}
			items[i] = n
		}
		return permtree.ListNode(items...), nil
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		om := permtree.NewOrderedMap()
		for _, k := range keys {
			n, err := fromInterface(val[k])
			if err != nil {
				return permtree.Node{}, err
			}
			om.Set(k, n)
		}
		return permtree.MapNode(om), nil
	default:
		return permtree.Node{}, fmt.Errorf("unsupported value of type %T in permission tree", v)
	}
}
