package parser

import (
	"errors"
	"testing"

	"github.com/Sideloading-Research/Inference/pkg/logic/ast"
	"github.com/Sideloading-Research/Inference/pkg/logic/internalerr"
)

func mustParse(t *testing.T, text string) ast.Expr {
	t.Helper()
	e, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse(%q): %v", text, err)
	}
	return e
}

func TestParseAtom(t *testing.T) {
	e := mustParse(t, "(Pedro)IsA(estudiante)")
	a, ok := e.(ast.Atom)
	if !ok {
		t.Fatalf("expected Atom, got %T", e)
	}
	if a.Subject != "Pedro" || a.Relation != "IsA" || len(a.Objects) != 1 || a.Objects[0] != "estudiante" {
		t.Errorf("unexpected atom %+v", a)
	}
}

func TestParseAtomMultipleObjects(t *testing.T) {
	e := mustParse(t, "( Pedro )Entre( Madrid ,  Toledo )")
	a := e.(ast.Atom)
	if a.Subject != "Pedro" || len(a.Objects) != 2 || a.Objects[0] != "Madrid" || a.Objects[1] != "Toledo" {
		t.Errorf("whitespace not trimmed: %+v", a)
	}
}

func TestParseAtomZeroObjects(t *testing.T) {
	bare := mustParse(t, "(Pedro)Feliz")
	explicit := mustParse(t, "(Pedro)Feliz()")
	if !ast.Equal(bare, explicit) {
		t.Errorf("(Pedro)Feliz and (Pedro)Feliz() should be the same atom")
	}
	if len(bare.(ast.Atom).Objects) != 0 {
		t.Errorf("expected zero objects, got %v", bare.(ast.Atom).Objects)
	}
}

func TestPrecedence(t *testing.T) {
	// AND binds tighter than OR: a ∧ b ∨ c parses as (a ∧ b) ∨ c.
	e := mustParse(t, "(A)P ∧ (B)Q ∨ (C)R")
	or, ok := e.(ast.Compound)
	if !ok || or.Op != ast.Or || len(or.Operands) != 2 {
		t.Fatalf("expected top-level OR, got %v", e)
	}
	and, ok := or.Operands[0].(ast.Compound)
	if !ok || and.Op != ast.And {
		t.Fatalf("expected AND under OR, got %v", or.Operands[0])
	}

	// IMPLIES is lower than both.
	e = mustParse(t, "(A)P ∧ (B)Q → (C)R")
	impl := e.(ast.Compound)
	if impl.Op != ast.Implies {
		t.Fatalf("expected top-level IMPLIES, got %v", e)
	}
	if _, ok := impl.Operands[0].(ast.Compound); !ok {
		t.Errorf("antecedent should be the conjunction")
	}

	// IFF is the lowest.
	e = mustParse(t, "(A)P → (B)Q ↔ (C)R")
	if e.(ast.Compound).Op != ast.Iff {
		t.Errorf("expected top-level IFF, got %v", e)
	}
}

func TestLeftAssociativity(t *testing.T) {
	e := mustParse(t, "(A)P → (B)Q → (C)R")
	outer := e.(ast.Compound)
	if outer.Op != ast.Implies {
		t.Fatalf("expected IMPLIES, got %v", e)
	}
	inner, ok := outer.Operands[0].(ast.Compound)
	if !ok || inner.Op != ast.Implies {
		t.Errorf("expected left-nested implication, got %v", outer.Operands[0])
	}
}

func TestFlattenedNary(t *testing.T) {
	e := mustParse(t, "(A)P ∧ (B)Q ∧ (C)R")
	and := e.(ast.Compound)
	if and.Op != ast.And || len(and.Operands) != 3 {
		t.Errorf("expected flattened 3-ary AND, got %v", e)
	}

	e = mustParse(t, "(A)P ∨ (B)Q ∨ (C)R ∨ (D)S")
	or := e.(ast.Compound)
	if or.Op != ast.Or || len(or.Operands) != 4 {
		t.Errorf("expected flattened 4-ary OR, got %v", e)
	}
}

func TestNotChain(t *testing.T) {
	e := mustParse(t, "¬¬(Pedro)Feliz")
	outer := e.(ast.Compound)
	if outer.Op != ast.Not {
		t.Fatalf("expected NOT, got %v", e)
	}
	inner, ok := outer.Operands[0].(ast.Compound)
	if !ok || inner.Op != ast.Not {
		t.Errorf("expected nested NOT, got %v", outer.Operands[0])
	}
}

func TestAliases(t *testing.T) {
	canonical := mustParse(t, "(X)IsA(estudiante) → (X)estudia")
	for _, text := range []string{
		"(X)IsA(estudiante) -> (X)estudia",
		"(X)IsA(estudiante) => (X)estudia",
		"(X)IsA(estudiante) IMPLIES (X)estudia",
		"(X)IsA(estudiante) implies (X)estudia",
	} {
		if !ast.Equal(mustParse(t, text), canonical) {
			t.Errorf("alias form %q did not normalize", text)
		}
	}

	and := mustParse(t, "(A)P & (B)Q")
	if !ast.Equal(and, mustParse(t, "(A)P and (B)Q")) {
		t.Error("word AND did not normalize")
	}
	if !ast.Equal(and, mustParse(t, "(A)P ^ (B)Q")) {
		t.Error("caret AND did not normalize")
	}

	or := mustParse(t, "(A)P | (B)Q")
	if !ast.Equal(or, mustParse(t, "(A)P v (B)Q")) {
		t.Error("letter v OR did not normalize")
	}

	not := mustParse(t, "~(A)P")
	if !ast.Equal(not, mustParse(t, "!(A)P")) {
		t.Error("bang NOT did not normalize")
	}

	iff := mustParse(t, "(A)P <-> (B)Q")
	if !ast.Equal(iff, mustParse(t, "(A)P <=> (B)Q")) {
		t.Error("iff aliases did not normalize")
	}
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		"",                    // empty input
		"   ",                 // whitespace only
		"(Pedro)IsA @",        // unknown character
		"Pedro",               // bare identifier is not an atom
		"(A)P (B)Q",           // leftover token after complete parse
		"(A)P →",              // dangling operator
		"→ (A)P",              // leading operator
		"((A))P",              // malformed atom shape
		"(A)P ∧ ∧ (B)Q",       // doubled operator
		"(Pedro)123(x)",       // relation must start with letter/underscore
	}
	for _, text := range cases {
		_, err := Parse(text)
		if err == nil {
			t.Errorf("Parse(%q): expected error", text)
			continue
		}
		if !errors.Is(err, internalerr.ErrParse) {
			t.Errorf("Parse(%q): error %v does not wrap ErrParse", text, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	cases := []string{
		"(Pedro)IsA(estudiante)",
		"(Pedro)Feliz",
		"(Pedro)Entre(Madrid, Toledo)",
		"¬(Pedro)Feliz",
		"¬¬(Pedro)Feliz",
		"(X)IsA(estudiante) → (X)estudia",
		"(X)IsA(estudiante) ∧ (X)ViveEn(Madrid) → (X)TieneMetro",
		"(X)Feliz ∨ (X)Triste → (X)TieneEmociones",
		"(X)EsMamifero ↔ (X)TienePelo",
		"(A)P ∧ (B)Q ∨ (C)R",
	}
	for _, text := range cases {
		e := mustParse(t, text)
		back := mustParse(t, e.String())
		if !ast.Equal(e, back) {
			t.Errorf("round-trip of %q failed: %q reparsed as %q", text, e.String(), back.String())
		}
	}
}
