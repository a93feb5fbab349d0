/*
Package permtree evaluates a permission tree, a small, recursive,
JSON-shaped expression language, against a runtime context, producing a
boolean access decision.

# Overview

A permission tree composes user-registered permission types (opaque
predicates such as "role" or "flag") with boolean logic gates (AND, NAND,
OR, NOR, XOR, NOT) and literal constants (TRUE, FALSE), plus a
bypass-suppression marker (NO_BYPASS). An Evaluator may first consult a
bypass predicate that shortcuts straight to "grant".

# Quick Start

	ev := permtree.NewEvaluator()

	err := ev.Types.Add("role", func(value string, ctx permtree.Context) (bool, error) {
		roles, _ := ctx["roles"].([]string)
		for _, r := range roles {
			if r == value {
				return true, nil
			}
		}
		return false, nil
	})

	om := permtree.NewOrderedMap()
	om.Set("role", permtree.StrNode("admin"))
	tree := permtree.MapNode(om)
	granted, err := ev.CheckAccessDefault(tree)

# Gates

Trees nest AND/NAND/OR/NOR/XOR/NOT over lists or maps of sub-permissions:

	{"role": {"AND": ["admin", "editor"]}}

# Bypass

Registering a bypass callback lets a global predicate short-circuit
evaluation to grant; a tree can suppress this per-call with NO_BYPASS:

	ev.Bypass.Set(func(ctx permtree.Context) (bool, error) {
		su, _ := ctx["superuser"].(bool)
		return su, nil
	})

# Error Handling

Errors raised by this package itself are *permtree.Error, carrying a Kind
discriminant (see the Kind constants) and a Path locating the offending
subtree. An error returned by a type callback or the bypass predicate, and
the context's error on cancellation, are returned unchanged:

	granted, err := ev.CheckAccessDefault(tree)
	if err != nil {
		var pe *permtree.Error
		if errors.As(err, &pe) {
			switch pe.Kind {
			case permtree.PermissionTypeNotRegistered:
				// ...
			}
		}
	}

# Non-goals

The evaluator does not cache results, does not evaluate asynchronously,
and does not persist trees or registry state between calls. Parsing a tree
from YAML/JSON is not part of this package's contract; see internal/loader
for a convenience implementation.
*/
package permtree
