// Package engine owns the knowledge base and runs forward chaining to
// saturation or to the iteration cap, recording a derivation chain per
// new fact and scanning the final knowledge base for atomic
// contradictions.
package engine

import (
	"fmt"
	"log"
	"sort"

	"github.com/Sideloading-Research/Inference/pkg/logic/ast"
	"github.com/Sideloading-Research/Inference/pkg/logic/kb"
	"github.com/Sideloading-Research/Inference/pkg/logic/parser"
	"github.com/Sideloading-Research/Inference/pkg/logic/rules"
)

// DefaultMaxIterations caps one inference run.
const DefaultMaxIterations = 100

// State tracks the engine lifecycle. Saturated and CapReached are
// terminal for the current run.
type State int

const (
	StateIdle State = iota
	StateIterating
	StateSaturated
	StateCapReached
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateIterating:
		return "iterating"
	case StateSaturated:
		return "saturated"
	case StateCapReached:
		return "cap-reached"
	}
	return "unknown"
}

// DerivationChain records one derived fact, its justification and the
// iteration in which it first appeared.
type DerivationChain struct {
	Conclusion    ast.Expr
	Justification string
	Depth         int
}

func (d DerivationChain) String() string {
	return fmt.Sprintf("[Depth %d] %s ← %s", d.Depth, d.Conclusion, d.Justification)
}

// InferenceResult is the immutable snapshot returned by InferAll.
// Derived preserves discovery order.
type InferenceResult struct {
	OriginalFacts  []ast.Expr
	OriginalRules  []ast.Expr
	Derived        []DerivationChain
	Iterations     int
	Contradictions []string
}

// AllFacts returns the original facts plus every derived conclusion.
func (r *InferenceResult) AllFacts() []ast.Expr {
	seen := kb.NewSet()
	var out []ast.Expr
	for _, e := range r.OriginalFacts {
		if seen.Add(e) {
			out = append(out, e)
		}
	}
	for _, e := range r.OriginalRules {
		if seen.Add(e) {
			out = append(out, e)
		}
	}
	for _, c := range r.Derived {
		if seen.Add(c.Conclusion) {
			out = append(out, c.Conclusion)
		}
	}
	return out
}

// DerivedByDepth groups the derivation chains by iteration depth,
// preserving discovery order within each depth.
func (r *InferenceResult) DerivedByDepth() map[int][]DerivationChain {
	byDepth := make(map[int][]DerivationChain)
	for _, c := range r.Derived {
		byDepth[c.Depth] = append(byDepth[c.Depth], c)
	}
	return byDepth
}

// Options configures an Engine.
type Options struct {
	// MaxIterations caps one InferAll run; zero means DefaultMaxIterations.
	MaxIterations int
	// EnableConjunction turns on the pairwise Conjunction rule.
	EnableConjunction bool
}

// Engine is the forward-chaining inference engine. It is exclusively
// owned by its caller; no internal concurrency.
type Engine struct {
	facts          *kb.Set
	originalFacts  *kb.Set
	originalRules  *kb.Set
	chains         []DerivationChain
	contradictions []string
	maxIterations  int
	manager        *rules.Manager
	state          State
}

// New creates an engine with an empty knowledge base.
func New(opts Options) *Engine {
	maxIter := opts.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}
	return &Engine{
		facts:         kb.NewSet(),
		originalFacts: kb.NewSet(),
		originalRules: kb.NewSet(),
		maxIterations: maxIter,
		manager:       rules.NewManager(rules.ManagerOptions{EnableConjunction: opts.EnableConjunction}),
		state:         StateIdle,
	}
}

// State returns the current lifecycle state.
func (e *Engine) State() State { return e.state }

// Clear removes all knowledge and resets the engine to idle.
func (e *Engine) Clear() {
	e.facts.Clear()
	e.originalFacts.Clear()
	e.originalRules.Clear()
	e.chains = nil
	e.contradictions = nil
	e.state = StateIdle
}

// AddFact adds an expression to the knowledge base as an original fact.
func (e *Engine) AddFact(x ast.Expr) {
	e.facts.Add(x)
	e.originalFacts.Add(x)
}

// AddFactText parses and adds a fact.
func (e *Engine) AddFactText(text string) error {
	x, err := parser.Parse(text)
	if err != nil {
		return err
	}
	e.AddFact(x)
	return nil
}

// AddRule adds an expression expected to be an implication or
// biconditional. Anything else is recorded as an original fact instead.
func (e *Engine) AddRule(x ast.Expr) {
	e.facts.Add(x)
	if c, ok := x.(ast.Compound); ok && (c.Op == ast.Implies || c.Op == ast.Iff) {
		e.originalRules.Add(x)
		return
	}
	e.originalFacts.Add(x)
}

// AddRuleText parses and adds a rule.
func (e *Engine) AddRuleText(text string) error {
	x, err := parser.Parse(text)
	if err != nil {
		return err
	}
	e.AddRule(x)
	return nil
}

// Query reports whether the expression is structurally present in the
// knowledge base (post-inference when called after InferAll).
func (e *Engine) Query(x ast.Expr) bool {
	return e.facts.Has(x)
}

// QueryText parses the expression and queries it.
func (e *Engine) QueryText(text string) (bool, error) {
	x, err := parser.Parse(text)
	if err != nil {
		return false, err
	}
	return e.Query(x), nil
}

// KnowledgeBaseSize returns the number of expressions currently known.
func (e *Engine) KnowledgeBaseSize() int { return e.facts.Len() }

// DerivationFor returns the derivation chain of a derived fact, if any.
func (e *Engine) DerivationFor(x ast.Expr) (DerivationChain, bool) {
	for _, c := range e.chains {
		if ast.Equal(c.Conclusion, x) {
			return c, true
		}
	}
	return DerivationChain{}, false
}

// InferAll saturates the knowledge base: every iteration applies all
// rules once against the pre-iteration fact set, adds everything new, and
// stops on the first empty pass or at the iteration cap. Hitting the cap
// is not an error; it is reported through the iteration count. The final
// knowledge base is then scanned once for atomic contradictions.
func (e *Engine) InferAll(verbose bool) *InferenceResult {
	if verbose {
		log.Printf("inference start: %d facts, %d rules, strategies: %v",
			e.originalFacts.Len(), e.originalRules.Len(), e.manager.RuleNames())
	}

	e.state = StateIterating
	iteration := 0

	for iteration < e.maxIterations {
		iteration++

		derived := e.manager.ApplyAll(e.facts)
		if len(derived) == 0 {
			e.state = StateSaturated
			if verbose {
				log.Printf("iteration %d: no new facts, saturated", iteration)
			}
			break
		}

		for _, d := range derived {
			e.facts.Add(d.Fact)
			e.chains = append(e.chains, DerivationChain{
				Conclusion:    d.Fact,
				Justification: d.Justification,
				Depth:         iteration,
			})
		}
		if verbose {
			log.Printf("iteration %d: derived %d new facts (knowledge base: %d)",
				iteration, len(derived), e.facts.Len())
		}
	}
	if e.state == StateIterating {
		e.state = StateCapReached
		if verbose {
			log.Printf("iteration cap %d reached", e.maxIterations)
		}
	}

	e.detectContradictions()
	if verbose && len(e.contradictions) > 0 {
		log.Printf("contradictions detected: %d", len(e.contradictions))
	}

	return &InferenceResult{
		OriginalFacts:  e.originalFacts.Items(),
		OriginalRules:  e.originalRules.Items(),
		Derived:        append([]DerivationChain(nil), e.chains...),
		Iterations:     iteration,
		Contradictions: append([]string(nil), e.contradictions...),
	}
}

// detectContradictions records every atom A for which ¬A is also present.
// Only the atomic one-level case is detected; complementary compound
// pairs are not.
func (e *Engine) detectContradictions() {
	e.contradictions = nil
	for _, item := range e.facts.Items() {
		neg, ok := item.(ast.Compound)
		if !ok || neg.Op != ast.Not {
			continue
		}
		atom, ok := neg.Operands[0].(ast.Atom)
		if !ok {
			continue
		}
		if e.facts.Has(atom) {
			e.contradictions = append(e.contradictions,
				fmt.Sprintf("Contradiction: %s and %s both present", atom, neg))
		}
	}
	// Stable output regardless of set enumeration order.
	sort.Strings(e.contradictions)
}
