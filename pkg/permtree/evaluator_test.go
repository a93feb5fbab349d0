package permtree

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// roleEvaluator builds an Evaluator with a "role" type granting membership
// in roles, and a "flag" type granting the flags set to true in the
// context's "flags" map.
func roleEvaluator(roles ...string) *Evaluator {
	ev := NewEvaluator()
	set := make(map[string]bool, len(roles))
	for _, r := range roles {
		set[r] = true
	}
	_ = ev.Types.Add("role", func(value string, ctx Context) (bool, error) {
		return set[value], nil
	})
	_ = ev.Types.Add("flag", func(value string, ctx Context) (bool, error) {
		flags, _ := ctx["flags"].(map[string]bool)
		return flags[value], nil
	})
	return ev
}

func singleEntryMap(key string, value Node) Node {
	om := NewOrderedMap()
	om.Set(key, value)
	return MapNode(om)
}

func TestConcreteScenarios(t *testing.T) {
	Convey("Scenario 1: a bare registered-type string leaf", t, func() {
		ev := roleEvaluator("admin")
		tree := singleEntryMap("role", StrNode("admin"))

		granted, err := ev.CheckAccessDefault(tree)
		So(err, ShouldBeNil)
		So(granted, ShouldBeTrue)

		tree2 := singleEntryMap("role", StrNode("editor"))
		granted, err = ev.CheckAccessDefault(tree2)
		So(err, ShouldBeNil)
		So(granted, ShouldBeFalse)
	})

	Convey("Scenario 2: an unregistered permission type fails closed with a typed error", t, func() {
		ev := roleEvaluator("admin")
		tree := singleEntryMap("department", StrNode("engineering"))

		_, err := ev.CheckAccessDefault(tree)
		So(err, ShouldNotBeNil)
		So(IsKind(err, PermissionTypeNotRegistered), ShouldBeTrue)
	})

	Convey("Scenario 3: AND truth table under an active role type, list body", t, func() {
		ev := roleEvaluator("admin", "editor")
		gate := NewOrderedMap()
		gate.Set(KeyAnd, ListNode(StrNode("admin"), StrNode("editor")))
		tree := singleEntryMap("role", MapNode(gate))

		granted, err := ev.CheckAccessDefault(tree)
		So(err, ShouldBeNil)
		So(granted, ShouldBeTrue)

		gate2 := NewOrderedMap()
		gate2.Set(KeyAnd, ListNode(StrNode("admin"), StrNode("writer")))
		tree2 := singleEntryMap("role", MapNode(gate2))

		granted, err = ev.CheckAccessDefault(tree2)
		So(err, ShouldBeNil)
		So(granted, ShouldBeFalse)
	})

	Convey("Scenario 4: a multi-key map is shorthand OR across permission types", t, func() {
		ev := roleEvaluator("admin")

		tree := NewOrderedMap()
		tree.Set("role", StrNode("missing"))
		tree.Set("flag", StrNode("beta"))

		granted, err := ev.CheckAccessDefault(MapNode(tree))
		So(err, ShouldBeNil)
		So(granted, ShouldBeFalse)

		ctx := Context{"flags": map[string]bool{"beta": true}}
		granted, err = ev.CheckAccess(context.Background(), MapNode(tree), ctx, true)
		So(err, ShouldBeNil)
		So(granted, ShouldBeTrue)
	})

	Convey("Scenario 5: NO_BYPASS as a map payload, routed through processOr", t, func() {
		ev := roleEvaluator("admin")
		_ = ev.Types.Add("meta", func(value string, ctx Context) (bool, error) {
			return value == "never_bypass", nil
		})
		_ = ev.Bypass.Set(func(ctx Context) (bool, error) { return true, nil })

		root := NewOrderedMap()
		root.Set(KeyNoBypass, singleEntryMap("meta", StrNode("never_bypass")))
		root.Set("role", StrNode("missing"))

		granted, err := ev.CheckAccessDefault(MapNode(root))
		So(err, ShouldBeNil)
		So(granted, ShouldBeFalse, "NO_BYPASS resolving true must suppress the otherwise-granting bypass predicate")
	})

	Convey("Scenario 6: an empty tree grants unconditionally", t, func() {
		ev := roleEvaluator()

		granted, err := ev.CheckAccessDefault(MapNode(NewOrderedMap()))
		So(err, ShouldBeNil)
		So(granted, ShouldBeTrue)

		granted, err = ev.CheckAccessDefault(ListNode())
		So(err, ShouldBeNil)
		So(granted, ShouldBeTrue)
	})
}

func TestNoBypassLiteralForms(t *testing.T) {
	Convey("NO_BYPASS as a bool literal", t, func() {
		ev := roleEvaluator("admin")
		_ = ev.Bypass.Set(func(Context) (bool, error) { return true, nil })

		root := NewOrderedMap()
		root.Set(KeyNoBypass, BoolNode(true))
		root.Set("role", StrNode("missing"))

		granted, err := ev.CheckAccessDefault(MapNode(root))
		So(err, ShouldBeNil)
		So(granted, ShouldBeFalse)
	})

	Convey("NO_BYPASS as a TRUE/FALSE string literal", t, func() {
		ev := roleEvaluator("admin")
		_ = ev.Bypass.Set(func(Context) (bool, error) { return true, nil })

		root := NewOrderedMap()
		root.Set(KeyNoBypass, StrNode("FALSE"))
		root.Set("role", StrNode("missing"))

		granted, err := ev.CheckAccessDefault(MapNode(root))
		So(err, ShouldBeNil)
		So(granted, ShouldBeTrue, "NO_BYPASS: FALSE means bypass stays allowed")
	})

	Convey("the legacy lower-case no_bypass spelling is accepted", t, func() {
		ev := roleEvaluator("admin")
		_ = ev.Bypass.Set(func(Context) (bool, error) { return true, nil })

		root := NewOrderedMap()
		root.Set("no_bypass", BoolNode(true))
		root.Set("role", StrNode("missing"))

		granted, err := ev.CheckAccessDefault(MapNode(root))
		So(err, ShouldBeNil)
		So(granted, ShouldBeFalse)
	})

	Convey("NO_BYPASS is rejected below the root map", t, func() {
		ev := roleEvaluator("admin")

		nested := NewOrderedMap()
		nested.Set(KeyNoBypass, BoolNode(true))
		root := singleEntryMap("role", MapNode(nested))

		_, err := ev.CheckAccessDefault(root)
		So(err, ShouldNotBeNil)
		So(IsKind(err, InvalidArgumentValue), ShouldBeTrue)
	})
}

func TestGrammarInvariants(t *testing.T) {
	Convey("I5: a boolean leaf under an active permission type is rejected", t, func() {
		ev := roleEvaluator("admin")
		tree := singleEntryMap("role", BoolNode(true))

		_, err := ev.CheckAccessDefault(tree)
		So(err, ShouldNotBeNil)
		So(IsKind(err, InvalidArgumentValue), ShouldBeTrue)
	})

	Convey("I4: nesting a permission type under an active permission type is rejected", t, func() {
		ev := roleEvaluator("admin")
		nested := singleEntryMap("flag", StrNode("beta"))
		tree := singleEntryMap("role", nested)

		_, err := ev.CheckAccessDefault(tree)
		So(err, ShouldNotBeNil)
		So(IsKind(err, InvalidArgumentValue), ShouldBeTrue)
	})

	Convey("a bare string leaf with no active type is rejected", t, func() {
		ev := roleEvaluator("admin")

		_, err := ev.CheckAccessDefault(StrNode("admin"))
		So(err, ShouldNotBeNil)
		So(IsKind(err, InvalidArgumentValue), ShouldBeTrue)
	})

	Convey("a bare TRUE/FALSE literal at the root needs no active type", t, func() {
		ev := roleEvaluator()

		granted, err := ev.CheckAccessDefault(StrNode("TRUE"))
		So(err, ShouldBeNil)
		So(granted, ShouldBeTrue)

		granted, err = ev.CheckAccessDefault(BoolNode(false))
		So(err, ShouldBeNil)
		So(granted, ShouldBeFalse)
	})
}

func TestNonMutation(t *testing.T) {
	Convey("CheckAccess never observably mutates the caller's tree (I1)", t, func() {
		ev := roleEvaluator("admin")

		root := NewOrderedMap()
		root.Set(KeyNoBypass, BoolNode(true))
		root.Set("role", StrNode("admin"))
		tree := MapNode(root)
		before := cloneNode(tree)

		_, err := ev.CheckAccessDefault(tree)
		So(err, ShouldBeNil)
		So(tree.Equal(before), ShouldBeTrue)
	})
}
