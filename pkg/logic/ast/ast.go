// Package ast defines the expression model for the logic subsystem:
// atomic relational propositions and compound expressions built from the
// closed operator set. Values are treated as immutable after construction;
// equality is deep structural equality over operands in order.
package ast

import (
	"strings"
	"unicode"
)

// Expr is either an Atom or a Compound.
type Expr interface {
	// String renders the expression in the textual grammar accepted by
	// the parser (canonical glyphs, no grouping parentheses).
	String() string

	// Key is a canonical, fully parenthesized serialization used as the
	// structural identity of the expression in set-typed storage. Unlike
	// String it is injective over expression structure.
	Key() string

	isExpr()
}

// Atom is an atomic proposition: (Subject)Relation(Obj1, Obj2, ...).
type Atom struct {
	Subject  string
	Relation string
	Objects  []string
}

// NewAtom builds an atom.
func NewAtom(subject, relation string, objects ...string) Atom {
	return Atom{Subject: subject, Relation: relation, Objects: objects}
}

func (a Atom) isExpr() {}

// String renders the atom. Zero-object atoms render without the trailing
// argument list: (Pedro)Feliz rather than (Pedro)Feliz().
func (a Atom) String() string {
	if len(a.Objects) == 0 {
		return "(" + a.Subject + ")" + a.Relation
	}
	return "(" + a.Subject + ")" + a.Relation + "(" + strings.Join(a.Objects, ", ") + ")"
}

// Key includes the argument list even when empty, so the serialization is
// regular regardless of arity.
func (a Atom) Key() string {
	return "(" + a.Subject + ")" + a.Relation + "(" + strings.Join(a.Objects, ",") + ")"
}

// Compound is an operator applied to ordered sub-expressions: exactly one
// operand for NOT, exactly two for IMPLIES and IFF, two or more for the
// flattened n-ary AND and OR.
type Compound struct {
	Op       Operator
	Operands []Expr
}

func (c Compound) isExpr() {}

func (c Compound) String() string {
	if c.Op == Not {
		return string(Not) + c.Operands[0].String()
	}
	parts := make([]string, len(c.Operands))
	for i, op := range c.Operands {
		parts[i] = op.String()
	}
	return strings.Join(parts, " "+string(c.Op)+" ")
}

func (c Compound) Key() string {
	if c.Op == Not {
		return string(Not) + "(" + c.Operands[0].Key() + ")"
	}
	parts := make([]string, len(c.Operands))
	for i, op := range c.Operands {
		parts[i] = op.Key()
	}
	return "(" + strings.Join(parts, " "+string(c.Op)+" ") + ")"
}

// NewNot negates an expression.
func NewNot(e Expr) Compound { return Compound{Op: Not, Operands: []Expr{e}} }

// NewImplies builds antecedent → consequent.
func NewImplies(antecedent, consequent Expr) Compound {
	return Compound{Op: Implies, Operands: []Expr{antecedent, consequent}}
}

// NewIff builds left ↔ right.
func NewIff(left, right Expr) Compound {
	return Compound{Op: Iff, Operands: []Expr{left, right}}
}

// NewAnd builds an n-ary conjunction.
func NewAnd(operands ...Expr) Compound {
	return Compound{Op: And, Operands: operands}
}

// NewOr builds an n-ary disjunction.
func NewOr(operands ...Expr) Compound {
	return Compound{Op: Or, Operands: operands}
}

// Equal reports deep structural equality of two expressions.
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Key() == b.Key()
}

// IsVariable reports whether a term is a variable: a leading X, Y or Z
// followed only by digits (X, Y2, Z10). Anything else is a constant.
func IsVariable(term string) bool {
	if term == "" {
		return false
	}
	if term[0] != 'X' && term[0] != 'Y' && term[0] != 'Z' {
		return false
	}
	for _, r := range term[1:] {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
