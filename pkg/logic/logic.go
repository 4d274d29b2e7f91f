// Package logic is the facade over the symbolic inference subsystem:
// it wires the forward-chaining engine with an optional run archive.
package logic

import (
	"context"
	"fmt"

	"github.com/Sideloading-Research/Inference/pkg/logic/ast"
	"github.com/Sideloading-Research/Inference/pkg/logic/engine"
	"github.com/Sideloading-Research/Inference/pkg/logic/internalerr"
	"github.com/Sideloading-Research/Inference/pkg/logic/store"
)

// Options configures a System.
type Options struct {
	// MaxIterations caps one inference run; zero means the engine default.
	MaxIterations int
	// EnableConjunction turns on the pairwise Conjunction rule.
	EnableConjunction bool
	// Store, when set, archives inference results.
	Store store.Store
}

// System combines the inference engine with an optional run archive.
type System struct {
	engine *engine.Engine
	store  store.Store
}

// New creates a System with the given dependencies.
func New(opts Options) *System {
	return &System{
		engine: engine.New(engine.Options{
			MaxIterations:     opts.MaxIterations,
			EnableConjunction: opts.EnableConjunction,
		}),
		store: opts.Store,
	}
}

// Close releases the run archive, if any.
func (s *System) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}

// AddFact parses and adds a fact.
func (s *System) AddFact(text string) error { return s.engine.AddFactText(text) }

// AddFactExpr adds an already-built fact expression.
func (s *System) AddFactExpr(e ast.Expr) { s.engine.AddFact(e) }

// AddRule parses and adds a rule (top-level IMPLIES or IFF).
func (s *System) AddRule(text string) error { return s.engine.AddRuleText(text) }

// AddRuleExpr adds an already-built rule expression.
func (s *System) AddRuleExpr(e ast.Expr) { s.engine.AddRule(e) }

// LoadFromFile loads facts and rules from a .inf file.
func (s *System) LoadFromFile(path string) error { return s.engine.LoadFromFile(path) }

// InferAll saturates the knowledge base and returns the result snapshot.
func (s *System) InferAll(verbose bool) *engine.InferenceResult {
	return s.engine.InferAll(verbose)
}

// Query parses the expression and checks structural membership.
func (s *System) Query(text string) (bool, error) { return s.engine.QueryText(text) }

// QueryExpr checks structural membership of a built expression.
func (s *System) QueryExpr(e ast.Expr) bool { return s.engine.Query(e) }

// Clear removes all knowledge.
func (s *System) Clear() { s.engine.Clear() }

// Archive stores a result snapshot in the run archive and returns the
// minted run ID.
func (s *System) Archive(ctx context.Context, res *engine.InferenceResult) (string, error) {
	if s.store == nil {
		return "", fmt.Errorf("archive: %w", internalerr.ErrNoStore)
	}
	run := store.FromResult(res)
	if err := s.store.SaveRun(ctx, run); err != nil {
		return "", err
	}
	return run.ID, nil
}
