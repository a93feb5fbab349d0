package main

import (
	"testing"

	"github.com/ordermind/logical-permissions-go/pkg/permtree"
)

func singleEntry(key string, value permtree.Node) permtree.Node {
	om := permtree.NewOrderedMap()
	om.Set(key, value)
	return permtree.MapNode(om)
}

func TestValidateTreeAcceptsWellFormedTree(t *testing.T) {
	gate := permtree.NewOrderedMap()
	gate.Set(permtree.KeyAnd, permtree.ListNode(permtree.StrNode("admin"), permtree.StrNode("editor")))
	tree := singleEntry("role", permtree.MapNode(gate))

	if v := validateTree(tree); len(v) != 0 {
		t.Fatalf("expected no violations, got %v", v)
	}
}

func TestValidateTreeReportsNestedType(t *testing.T) {
	tree := singleEntry("flag", singleEntry("flag", permtree.StrNode("x")))

	v := validateTree(tree)
	if len(v) == 0 {
		t.Fatal("expected at least one violation for a nested type")
	}
}

func TestValidateTreeReportsMultipleViolationsAtOnce(t *testing.T) {
	xor := permtree.NewOrderedMap()
	xor.Set(permtree.KeyXor, permtree.ListNode(permtree.StrNode("admin")))

	notGate := permtree.NewOrderedMap()
	notGate.Set(permtree.KeyNot, permtree.ListNode())

	tree := permtree.ListNode(
		singleEntry("role", permtree.MapNode(xor)),
		singleEntry("role", permtree.MapNode(notGate)),
	)

	v := validateTree(tree)
	if len(v) < 2 {
		t.Fatalf("expected at least two violations collected in one pass, got %v", v)
	}
}

func TestRegisterStubTypesCoversEveryCandidateName(t *testing.T) {
	tree := permtree.ListNode(
		singleEntry("role", permtree.StrNode("admin")),
		singleEntry("flag", permtree.StrNode("beta")),
	)

	ev := permtree.NewEvaluator()
	registerStubTypes(ev, tree)

	if !ev.Types.Exists("role") || !ev.Types.Exists("flag") {
		t.Fatal("expected stub registration for both role and flag")
	}
}
