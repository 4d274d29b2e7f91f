package kb

import (
	"testing"

	"github.com/Sideloading-Research/Inference/pkg/logic/ast"
)

func TestSetMembership(t *testing.T) {
	s := NewSet()
	a := ast.NewAtom("Pedro", "IsA", "estudiante")

	if !s.Add(a) {
		t.Error("first Add should report new")
	}
	if s.Add(ast.NewAtom("Pedro", "IsA", "estudiante")) {
		t.Error("structurally equal expression should be a duplicate")
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 item, got %d", s.Len())
	}
	if !s.Has(a) {
		t.Error("Has should report membership")
	}
	if s.Has(ast.NewAtom("Pedro", "IsA", "profesor")) {
		t.Error("Has reported a missing expression")
	}
}

func TestSetClear(t *testing.T) {
	s := NewSet()
	s.Add(ast.NewAtom("A", "P"))
	s.Add(ast.NewNot(ast.NewAtom("A", "P")))
	s.Clear()
	if s.Len() != 0 {
		t.Errorf("expected empty set after Clear, got %d", s.Len())
	}
}

func TestSetItems(t *testing.T) {
	s := NewSet()
	exprs := []ast.Expr{
		ast.NewAtom("A", "P"),
		ast.NewAtom("B", "Q"),
		ast.NewAnd(ast.NewAtom("A", "P"), ast.NewAtom("B", "Q")),
	}
	for _, e := range exprs {
		s.Add(e)
	}

	items := s.Items()
	if len(items) != len(exprs) {
		t.Fatalf("expected %d items, got %d", len(exprs), len(items))
	}
	for _, want := range exprs {
		found := false
		for _, got := range items {
			if ast.Equal(got, want) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing %v from Items", want)
		}
	}
}
