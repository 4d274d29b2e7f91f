// Package kb provides the content-addressed expression set backing the
// knowledge base. Membership is by structural identity (ast.Expr.Key),
// enumeration order is unspecified.
package kb

import "github.com/Sideloading-Research/Inference/pkg/logic/ast"

// Set is a set of expressions keyed by their canonical serialization.
type Set struct {
	items map[string]ast.Expr
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{items: make(map[string]ast.Expr)}
}

// Add inserts an expression and reports whether it was not already present.
func (s *Set) Add(e ast.Expr) bool {
	k := e.Key()
	if _, ok := s.items[k]; ok {
		return false
	}
	s.items[k] = e
	return true
}

// Has reports structural membership.
func (s *Set) Has(e ast.Expr) bool {
	_, ok := s.items[e.Key()]
	return ok
}

// Len returns the number of expressions in the set.
func (s *Set) Len() int { return len(s.items) }

// Items returns the expressions in unspecified order.
func (s *Set) Items() []ast.Expr {
	out := make([]ast.Expr, 0, len(s.items))
	for _, e := range s.items {
		out = append(out, e)
	}
	return out
}

// Clear removes all expressions.
func (s *Set) Clear() {
	s.items = make(map[string]ast.Expr)
}
