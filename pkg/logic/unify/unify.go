// Package unify implements the simplified unification scheme used by the
// deduction rules: named variables bind to terms, there are no function
// symbols and no occurs-check.
package unify

import "github.com/Sideloading-Research/Inference/pkg/logic/ast"

// Bindings maps variable names to the terms they are bound to.
type Bindings map[string]string

// Clone returns an independent copy of the bindings.
func (b Bindings) Clone() Bindings {
	out := make(Bindings, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Match unifies a pattern atom against a candidate atom. Relations must be
// identical and argument lists must align by arity and position. A variable
// on either side binds to the opposing term, or must agree with its prior
// binding. The input bindings are never mutated; on success the returned
// bindings extend them.
func Match(pattern, candidate ast.Atom, b Bindings) (Bindings, bool) {
	if pattern.Relation != candidate.Relation {
		return nil, false
	}
	if len(pattern.Objects) != len(candidate.Objects) {
		return nil, false
	}

	work := b.Clone()
	if work == nil {
		work = make(Bindings)
	}

	if !matchTerm(pattern.Subject, candidate.Subject, work) {
		return nil, false
	}
	for i := range pattern.Objects {
		if !matchTerm(pattern.Objects[i], candidate.Objects[i], work) {
			return nil, false
		}
	}
	return work, true
}

// matchTerm matches two terms, extending bindings in place.
func matchTerm(t1, t2 string, b Bindings) bool {
	v1 := ast.IsVariable(t1)
	v2 := ast.IsVariable(t2)

	if !v1 && !v2 {
		return t1 == t2
	}
	if v1 {
		if bound, ok := b[t1]; ok {
			return bound == t2
		}
		b[t1] = t2
		return true
	}
	// t2 is a variable
	if bound, ok := b[t2]; ok {
		return bound == t1
	}
	b[t2] = t1
	return true
}

// Substitute replaces bound variable terms throughout an expression,
// returning a new expression. Constants and unbound variables pass through.
func Substitute(e ast.Expr, b Bindings) ast.Expr {
	if len(b) == 0 {
		return e
	}
	switch v := e.(type) {
	case ast.Atom:
		return substituteAtom(v, b)
	case ast.Compound:
		operands := make([]ast.Expr, len(v.Operands))
		for i, op := range v.Operands {
			operands[i] = Substitute(op, b)
		}
		return ast.Compound{Op: v.Op, Operands: operands}
	}
	return e
}

func substituteAtom(a ast.Atom, b Bindings) ast.Atom {
	subject := a.Subject
	if t, ok := b[subject]; ok {
		subject = t
	}
	objects := make([]string, len(a.Objects))
	for i, obj := range a.Objects {
		if t, ok := b[obj]; ok {
			objects[i] = t
		} else {
			objects[i] = obj
		}
	}
	return ast.Atom{Subject: subject, Relation: a.Relation, Objects: objects}
}
