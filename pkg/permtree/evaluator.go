package permtree

import (
	gocontext "context"
	"strconv"
	"strings"

	"github.com/ordermind/logical-permissions-go/internal/log"
)

// Evaluator is the tree evaluator: the recursive interpreter that walks a
// permission tree, dispatching untyped leaves to registered type callbacks
// under a rolling type context, enforcing the grammar's structural
// invariants, and implementing gate semantics including the pre-walk
// handling of NO_BYPASS. It owns a TypeRegistry and a BypassEvaluator.
type Evaluator struct {
	Types  *TypeRegistry
	Bypass *BypassEvaluator
	Log    log.Logger
}

// NewEvaluator returns an Evaluator with an empty type registry and no
// bypass predicate.
func NewEvaluator() *Evaluator {
	return &Evaluator{
		Types:  NewTypeRegistry(),
		Bypass: NewBypassEvaluator(),
		Log:    log.Default(),
	}
}

// CheckAccessDefault evaluates tree with an empty context and bypass
// allowed, matching the documented defaults.
func (ev *Evaluator) CheckAccessDefault(tree Node) (bool, error) {
	return ev.CheckAccess(gocontext.Background(), tree, Context{}, true)
}

// CheckAccess is the entry point. ctx is a Go context.Context used only for
// cooperative cancellation between gate elements; it is never passed
// to user callbacks. permCtx is the opaque runtime Context handed to
// callbacks. allowBypass gates whether the bypass predicate may be
// consulted (subject to override by a NO_BYPASS entry in tree).
func (ev *Evaluator) CheckAccess(ctx gocontext.Context, tree Node, permCtx Context, allowBypass bool) (bool, error) {
	if permCtx == nil {
		permCtx = Context{}
	}

	switch tree.Kind {
	case KindBool, KindStr, KindList, KindMap:
		// valid
	default:
		return false, newError(InvalidArgumentType, path{}, tree.Kind, "permission tree root must be a bool, string, list or map")
	}

	ev.Log.Debugf("check_access: starting evaluation, allow_bypass=%v", allowBypass)

	// Step 1: clone so the caller's tree is never observably mutated (I1).
	working := cloneNode(tree)

	// Step 2: resolve NO_BYPASS (root-map only).
	resolvedAllowBypass, err := ev.resolveNoBypass(ctx, &working, permCtx, allowBypass)
	if err != nil {
		return false, err
	}

	// Step 3: bypass check.
	if resolvedAllowBypass {
		granted, err := ev.Bypass.Invoke(permCtx)
		if err != nil {
			ev.Log.Warnf("bypass callback returned an error: %v", err)
			return false, err
		}
		if granted {
			ev.Log.Debugf("check_access: bypass predicate granted access")
			return true, nil
		}
	}

	// Step 4: empty shortcut, or dispatch.
	if working.IsEmpty() {
		return true, nil
	}

	switch working.Kind {
	case KindStr, KindBool:
		return ev.dispatch(ctx, working, "", permCtx, path{})
	default:
		return ev.processOr(ctx, working, "", permCtx, path{})
	}
}

// resolveNoBypass mutates working in place (it is already the private
// clone made on entry to CheckAccess) by stripping any NO_BYPASS entry,
// and returns the effective allow-bypass flag to use afterward.
func (ev *Evaluator) resolveNoBypass(ctx gocontext.Context, working *Node, permCtx Context, allowBypass bool) (bool, error) {
	if working.Kind != KindMap {
		return allowBypass, nil
	}

	key, value, found := findReservedEntry(working.Map, KeyNoBypass)
	if !found {
		return allowBypass, nil
	}
	working.Map.Delete(key)

	if !allowBypass {
		// Ignored, but still removed above.
		return false, nil
	}

	switch value.Kind {
	case KindBool:
		return !value.Bool, nil
	case KindStr:
		lit, ok := boolLiteral(value.Str)
		if !ok {
			return false, newError(InvalidArgumentValue, path{}.push(KeyNoBypass), value.Str, "NO_BYPASS string payload must be TRUE or FALSE")
		}
		return !lit, nil
	case KindMap:
		subResult, err := ev.processOr(ctx, value, "", permCtx, path{}.push(KeyNoBypass))
		if err != nil {
			return false, err
		}
		return !subResult, nil
	default:
		return false, newError(InvalidArgumentValue, path{}.push(KeyNoBypass), value.Kind, "NO_BYPASS payload must be a bool, string or map")
	}
}

// findReservedEntry looks up a single-entry-or-more map for a key that
// case-insensitively matches reservedUpper, returning its original-case key
// and value. This is how the legacy lower-case "no_bypass" spelling is
// accepted interchangeably with "NO_BYPASS".
func findReservedEntry(m *OrderedMap, reservedUpper string) (key string, value Node, found bool) {
	var out string
	var node Node
	ok := false
	m.Each(func(k string, v Node) bool {
		if strings.ToUpper(k) == reservedUpper {
			out, node, ok = k, v, true
			return false
		}
		return true
	})
	return out, node, ok
}

// dispatch resolves a single node to a boolean given the currently active
// permission type (empty string means none).
func (ev *Evaluator) dispatch(ctx gocontext.Context, node Node, activeType string, permCtx Context, p path) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	switch node.Kind {
	case KindBool:
		if activeType != "" {
			return false, newError(InvalidArgumentValue, p, node.Bool, "boolean literal is not valid under active permission type %q", activeType)
		}
		return node.Bool, nil

	case KindStr:
		if lit, ok := boolLiteral(node.Str); ok {
			if activeType != "" {
				return false, newError(InvalidArgumentValue, p, node.Str, "boolean literal string is not valid under active permission type %q", activeType)
			}
			return lit, nil
		}
		if activeType == "" {
			return false, newError(InvalidArgumentValue, p, node.Str, "a bare permission string requires a surrounding permission type")
		}
		return ev.invokeType(activeType, node.Str, permCtx, p)

	case KindList:
		if len(node.List) == 0 {
			return true, nil
		}
		return ev.processOr(ctx, node, activeType, permCtx, p)

	case KindMap:
		return ev.dispatchMap(ctx, node, activeType, permCtx, p)

	default:
		return false, newError(InvalidArgumentType, p, node.Kind, "unrecognized permission tree node kind")
	}
}

func (ev *Evaluator) dispatchMap(ctx gocontext.Context, node Node, activeType string, permCtx Context, p path) (bool, error) {
	size := node.Map.Len()
	if size == 0 {
		return true, nil
	}
	if size >= 2 {
		return ev.processOr(ctx, node, activeType, permCtx, p)
	}

	k := node.Map.Keys()[0]
	v, _ := node.Map.Get(k)
	upper := strings.ToUpper(k)

	switch {
	case upper == KeyNoBypass:
		return false, newError(InvalidArgumentValue, p.push(k), nil, "NO_BYPASS is only legal at the top level of the root map")

	case isGateKey(upper):
		return ev.dispatchGate(ctx, upper, v, activeType, permCtx, p.push(upper))

	case upper == KeyTrue || upper == KeyFalse:
		return false, newError(InvalidArgumentValue, p.push(k), nil, "boolean literal %q cannot have children", upper)

	default:
		if activeType != "" {
			return false, newError(InvalidArgumentValue, p.push(k), k, "nested permission type %q is not allowed under active type %q", k, activeType)
		}
		if !ev.Types.Exists(k) {
			return false, newError(PermissionTypeNotRegistered, p.push(k), k, "permission type %q is not registered", k)
		}
		childPath := p.push(k)
		switch v.Kind {
		case KindList, KindMap:
			return ev.processOr(ctx, v, k, permCtx, childPath)
		default:
			return ev.dispatch(ctx, v, k, permCtx, childPath)
		}
	}
}

// invokeType looks up activeType in the registry and invokes it with
// permissionValue.
func (ev *Evaluator) invokeType(activeType, permissionValue string, permCtx Context, p path) (bool, error) {
	cb, err := ev.Types.Get(activeType)
	if err != nil {
		return false, err
	}
	ev.Log.Debugf("invoking permission type %q with value %q at %s", activeType, permissionValue, p.String())
	granted, err := cb(permissionValue, permCtx)
	if err != nil {
		return false, err
	}
	return granted, nil
}

// processOr implements the "implicit OR" desugaring shared by bare lists,
// multi-key maps (shorthand OR), a registered type's collection value, and
// NO_BYPASS's map payload. An empty value yields false; arity is not
// validated here, that is the gate routines' job (gateElements) before they
// extract sub-nodes.
func (ev *Evaluator) processOr(ctx gocontext.Context, value Node, activeType string, permCtx Context, p path) (bool, error) {
	subs, err := subNodes(value, activeType)
	if err != nil {
		return false, err
	}
	for i, sub := range subs {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		res, err := ev.dispatch(ctx, sub, activeType, permCtx, p.push(strconv.Itoa(i)))
		if err != nil {
			return false, err
		}
		if res {
			return true, nil
		}
	}
	return false, nil
}

// subNodes extracts the ordered sub-nodes of a gate/implicit-OR body.
//
// For a List, elements are the sub-nodes directly.
//
// For a Map, each entry {k: v} is wrapped into a synthetic single-entry map
// so it re-enters dispatch's ordinary type-or-gate resolution (this is what
// lets {OR: {flag: "x", role: "admin"}} behave like {OR: [{flag: "x"},
// {role: "admin"}]}, and what keeps gate keys such as {AND: [...]} and
// nested-type checks working under an active type). The one exception is a
// numeric-looking key under an active type: such a key is an array-like
// index (e.g. {"0": "admin", "1": "editor"}), so the entry's value is taken
// as the sub-node directly. This is what makes list and index-keyed map
// gate bodies evaluate identically.
func subNodes(value Node, activeType string) ([]Node, error) {
	switch value.Kind {
	case KindList:
		return value.List, nil
	case KindMap:
		subs := make([]Node, 0, value.Map.Len())
		value.Map.Each(func(k string, v Node) bool {
			if activeType != "" && isNumericLooking(k) {
				subs = append(subs, v)
				return true
			}
			om := NewOrderedMap()
			om.Set(k, v)
			subs = append(subs, MapNode(om))
			return true
		})
		return subs, nil
	default:
		return nil, newError(InvalidArgumentType, path{}, value.Kind, "expected a list or map")
	}
}
