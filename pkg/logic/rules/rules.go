// Package rules implements the classical deduction rules applied by the
// forward-chaining engine. Each rule scans the knowledge base and emits
// candidate expressions with a justification; candidates already present
// in the knowledge base or in the current pass's pending set are dropped.
package rules

import (
	"fmt"
	"sort"

	"github.com/Sideloading-Research/Inference/pkg/logic/ast"
	"github.com/Sideloading-Research/Inference/pkg/logic/kb"
	"github.com/Sideloading-Research/Inference/pkg/logic/unify"
)

// Derived is one candidate fact emitted by a rule.
type Derived struct {
	Fact          ast.Expr
	Justification string
}

// Rule is a single deduction strategy. Apply may read the knowledge base
// and the pending set of facts derived earlier in the same pass; emitted
// facts are added to pending immediately so later rules do not repeat them.
type Rule interface {
	Name() string
	Priority() int
	Apply(facts *kb.Set, pending *kb.Set) []Derived
}

// conjunctionAtomLimit gates the Conjunction rule against combinatorial
// explosion: above this many atomic facts it emits nothing.
const conjunctionAtomLimit = 20

// emit appends a candidate unless it is already known or pending.
func emit(derived []Derived, facts, pending *kb.Set, e ast.Expr, justification string) []Derived {
	if facts.Has(e) || pending.Has(e) {
		return derived
	}
	pending.Add(e)
	return append(derived, Derived{Fact: e, Justification: justification})
}

// compoundsWithOp returns every compound in the set with the given operator.
func compoundsWithOp(s *kb.Set, op ast.Operator) []ast.Compound {
	var out []ast.Compound
	for _, e := range s.Items() {
		if c, ok := e.(ast.Compound); ok && c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// matchExpr matches a rule premise against a fact: atom-vs-atom goes
// through unification, anything else requires exact structural equality.
func matchExpr(premise, fact ast.Expr) bool {
	pa, ok1 := premise.(ast.Atom)
	fa, ok2 := fact.(ast.Atom)
	if ok1 && ok2 {
		_, ok := unify.Match(pa, fa, nil)
		return ok
	}
	return ast.Equal(premise, fact)
}

// ModusPonens: from A → C and a fact matching A, derive C (substituted
// when the match bound variables).
type ModusPonens struct{}

func (ModusPonens) Name() string  { return "Modus Ponens" }
func (ModusPonens) Priority() int { return 10 }

func (ModusPonens) Apply(facts, pending *kb.Set) []Derived {
	var derived []Derived
	implications := compoundsWithOp(facts, ast.Implies)

	// Everything except implications can serve as a matching fact.
	var candidates []ast.Expr
	for _, e := range facts.Items() {
		if c, ok := e.(ast.Compound); ok && c.Op == ast.Implies {
			continue
		}
		candidates = append(candidates, e)
	}

	for _, impl := range implications {
		antecedent := impl.Operands[0]
		consequent := impl.Operands[1]

		for _, fact := range candidates {
			pa, ok1 := antecedent.(ast.Atom)
			fa, ok2 := fact.(ast.Atom)
			if ok1 && ok2 {
				bindings, ok := unify.Match(pa, fa, nil)
				if !ok {
					continue
				}
				conclusion := unify.Substitute(consequent, bindings)
				just := fmt.Sprintf("Modus Ponens: %s ∧ (%s) ⊢ %s", fact, impl, conclusion)
				derived = emit(derived, facts, pending, conclusion, just)
			} else if ast.Equal(antecedent, fact) {
				just := fmt.Sprintf("Modus Ponens: %s ∧ (%s) ⊢ %s", fact, impl, consequent)
				derived = emit(derived, facts, pending, consequent, just)
			}
		}
	}
	return derived
}

// ModusTollens: from A → C and ¬x where x matches C, derive ¬A. The
// antecedent is emitted unsubstituted, even when the consequent match
// bound variables that occur in it.
type ModusTollens struct{}

func (ModusTollens) Name() string  { return "Modus Tollens" }
func (ModusTollens) Priority() int { return 9 }

func (ModusTollens) Apply(facts, pending *kb.Set) []Derived {
	var derived []Derived
	implications := compoundsWithOp(facts, ast.Implies)
	negations := compoundsWithOp(facts, ast.Not)

	for _, impl := range implications {
		antecedent := impl.Operands[0]
		consequent := impl.Operands[1]

		for _, neg := range negations {
			if !matchExpr(consequent, neg.Operands[0]) {
				continue
			}
			conclusion := ast.NewNot(antecedent)
			just := fmt.Sprintf("Modus Tollens: %s ∧ (%s) ⊢ %s", neg, impl, conclusion)
			derived = emit(derived, facts, pending, conclusion, just)
		}
	}
	return derived
}

// HypotheticalSyllogism: from A → B and B → C (B exactly equal, no
// unification), derive A → C.
type HypotheticalSyllogism struct{}

func (HypotheticalSyllogism) Name() string  { return "Hypothetical Syllogism" }
func (HypotheticalSyllogism) Priority() int { return 7 }

func (HypotheticalSyllogism) Apply(facts, pending *kb.Set) []Derived {
	var derived []Derived
	implications := compoundsWithOp(facts, ast.Implies)

	for _, first := range implications {
		for _, second := range implications {
			if ast.Equal(first, second) {
				continue
			}
			if !ast.Equal(first.Operands[1], second.Operands[0]) {
				continue
			}
			conclusion := ast.NewImplies(first.Operands[0], second.Operands[1])
			just := fmt.Sprintf("Hypothetical Syllogism: (%s) ∧ (%s) ⊢ %s", first, second, conclusion)
			derived = emit(derived, facts, pending, conclusion, just)
		}
	}
	return derived
}

// DisjunctiveSyllogism: from o1 ∨ ... ∨ on and ¬oi, derive each remaining
// oj as an independent fact. For n > 2 this is weaker than emitting the
// remaining disjunction; that behavior is intentional.
type DisjunctiveSyllogism struct{}

func (DisjunctiveSyllogism) Name() string  { return "Disjunctive Syllogism" }
func (DisjunctiveSyllogism) Priority() int { return 8 }

func (DisjunctiveSyllogism) Apply(facts, pending *kb.Set) []Derived {
	var derived []Derived
	disjunctions := compoundsWithOp(facts, ast.Or)
	negations := compoundsWithOp(facts, ast.Not)

	for _, disj := range disjunctions {
		for _, neg := range negations {
			negated := neg.Operands[0]
			for i, operand := range disj.Operands {
				if !ast.Equal(operand, negated) {
					continue
				}
				for j, other := range disj.Operands {
					if i == j {
						continue
					}
					just := fmt.Sprintf("Disjunctive Syllogism: (%s) ∧ %s ⊢ %s", disj, neg, other)
					derived = emit(derived, facts, pending, other, just)
				}
			}
		}
	}
	return derived
}

// Simplification: from o1 ∧ ... ∧ on, derive each oi.
type Simplification struct{}

func (Simplification) Name() string  { return "Simplification" }
func (Simplification) Priority() int { return 10 }

func (Simplification) Apply(facts, pending *kb.Set) []Derived {
	var derived []Derived
	for _, conj := range compoundsWithOp(facts, ast.And) {
		for _, operand := range conj.Operands {
			just := fmt.Sprintf("Simplification: (%s) ⊢ %s", conj, operand)
			derived = emit(derived, facts, pending, operand, just)
		}
	}
	return derived
}

// Conjunction: from atomic facts fi and fj, derive fi ∧ fj pairwise.
// Opt-in, and skipped entirely above conjunctionAtomLimit atomic facts.
type Conjunction struct{}

func (Conjunction) Name() string  { return "Conjunction" }
func (Conjunction) Priority() int { return 3 }

func (Conjunction) Apply(facts, pending *kb.Set) []Derived {
	var atoms []ast.Atom
	for _, e := range facts.Items() {
		if a, ok := e.(ast.Atom); ok {
			atoms = append(atoms, a)
		}
	}
	if len(atoms) > conjunctionAtomLimit {
		return nil
	}

	var derived []Derived
	for i, first := range atoms {
		for _, second := range atoms[i+1:] {
			conclusion := ast.NewAnd(first, second)
			just := fmt.Sprintf("Conjunction: %s ∧ %s ⊢ %s", first, second, conclusion)
			derived = emit(derived, facts, pending, conclusion, just)
		}
	}
	return derived
}

// Addition would derive A ∨ B for arbitrary B; it generates unbounded
// disjunctions, so it stays disabled and emits nothing.
type Addition struct{}

func (Addition) Name() string  { return "Addition" }
func (Addition) Priority() int { return 1 }

func (Addition) Apply(facts, pending *kb.Set) []Derived { return nil }

// Resolution: from two distinct disjunctions containing a complementary
// literal pair x / ¬x, derive the disjunction of the remaining literals,
// or the sole literal when exactly one remains. When nothing remains the
// pair is skipped; no empty-clause marker is produced.
type Resolution struct{}

func (Resolution) Name() string  { return "Resolution" }
func (Resolution) Priority() int { return 6 }

func (Resolution) Apply(facts, pending *kb.Set) []Derived {
	var derived []Derived
	disjunctions := compoundsWithOp(facts, ast.Or)

	for _, first := range disjunctions {
		for _, second := range disjunctions {
			if ast.Equal(first, second) {
				continue
			}
			for _, lit1 := range first.Operands {
				for _, lit2 := range second.Operands {
					if !complementary(lit1, lit2) {
						continue
					}
					remaining := withoutLiteral(first.Operands, lit1)
					remaining = append(remaining, withoutLiteral(second.Operands, lit2)...)

					if len(remaining) == 0 {
						continue
					}
					var conclusion ast.Expr
					if len(remaining) == 1 {
						conclusion = remaining[0]
					} else {
						conclusion = ast.NewOr(remaining...)
					}
					just := fmt.Sprintf("Resolution: (%s) ∧ (%s) ⊢ %s", first, second, conclusion)
					derived = emit(derived, facts, pending, conclusion, just)
				}
			}
		}
	}
	return derived
}

// complementary reports whether one expression is the negation of the other.
func complementary(a, b ast.Expr) bool {
	if c, ok := a.(ast.Compound); ok && c.Op == ast.Not {
		return ast.Equal(c.Operands[0], b)
	}
	if c, ok := b.(ast.Compound); ok && c.Op == ast.Not {
		return ast.Equal(c.Operands[0], a)
	}
	return false
}

// withoutLiteral drops every occurrence of lit from operands.
func withoutLiteral(operands []ast.Expr, lit ast.Expr) []ast.Expr {
	var out []ast.Expr
	for _, op := range operands {
		if !ast.Equal(op, lit) {
			out = append(out, op)
		}
	}
	return out
}

// BiconditionalElimination: from A ↔ B, derive A → B and B → A.
type BiconditionalElimination struct{}

func (BiconditionalElimination) Name() string  { return "Biconditional Elimination" }
func (BiconditionalElimination) Priority() int { return 9 }

func (BiconditionalElimination) Apply(facts, pending *kb.Set) []Derived {
	var derived []Derived
	for _, iff := range compoundsWithOp(facts, ast.Iff) {
		left := iff.Operands[0]
		right := iff.Operands[1]

		forward := ast.NewImplies(left, right)
		just := fmt.Sprintf("Biconditional Elimination: (%s) ⊢ %s", iff, forward)
		derived = emit(derived, facts, pending, forward, just)

		backward := ast.NewImplies(right, left)
		just = fmt.Sprintf("Biconditional Elimination: (%s) ⊢ %s", iff, backward)
		derived = emit(derived, facts, pending, backward, just)
	}
	return derived
}

// ManagerOptions configures the rule table.
type ManagerOptions struct {
	// EnableConjunction adds the pairwise Conjunction rule, which can be
	// expensive on large fact sets.
	EnableConjunction bool
}

// Manager holds the fixed rule table, ordered by descending priority.
type Manager struct {
	rules []Rule
}

// NewManager builds the rule table once; there is no runtime registration.
func NewManager(opts ManagerOptions) *Manager {
	rs := []Rule{
		ModusPonens{},
		ModusTollens{},
		HypotheticalSyllogism{},
		DisjunctiveSyllogism{},
		Simplification{},
		Resolution{},
		BiconditionalElimination{},
		Addition{},
	}
	if opts.EnableConjunction {
		rs = append(rs, Conjunction{})
	}
	sort.SliceStable(rs, func(i, j int) bool {
		return rs[i].Priority() > rs[j].Priority()
	})
	return &Manager{rules: rs}
}

// ApplyAll runs one pass of every rule against the knowledge base. All
// rules see the same pre-pass fact set; the shared pending set keeps
// later rules from re-deriving what an earlier rule already emitted.
func (m *Manager) ApplyAll(facts *kb.Set) []Derived {
	pending := kb.NewSet()
	var all []Derived
	for _, r := range m.rules {
		all = append(all, r.Apply(facts, pending)...)
	}
	return all
}

// RuleNames lists the active rules in application order.
func (m *Manager) RuleNames() []string {
	names := make([]string, len(m.rules))
	for i, r := range m.rules {
		names[i] = r.Name()
	}
	return names
}
