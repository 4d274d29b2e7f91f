// Package store defines the archive of completed inference runs. The
// live knowledge base is never persisted; only immutable result
// snapshots are.
package store

import (
	"context"
	"crypto/rand"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Sideloading-Research/Inference/pkg/logic/engine"
)

// DerivedFact is one archived derivation, rendered to text.
type DerivedFact struct {
	Conclusion    string
	Justification string
	Depth         int
}

// Run is one archived inference run.
type Run struct {
	ID             string
	CreatedAt      time.Time
	Facts          []string
	Rules          []string
	Derived        []DerivedFact
	Iterations     int
	Contradictions []string
}

// Store archives inference runs.
type Store interface {
	// SaveRun persists a run snapshot.
	SaveRun(ctx context.Context, r Run) error

	// GetRun returns a run by ID; the bool reports whether it exists.
	GetRun(ctx context.Context, id string) (Run, bool, error)

	// ListRuns returns up to limit runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]Run, error)

	// Close releases underlying resources.
	Close() error
}

var entropy = ulid.Monotonic(rand.Reader, 0)

// NewRunID mints a ULID run identifier.
func NewRunID() string {
	return ulid.MustNew(ulid.Now(), entropy).String()
}

// FromResult converts an inference result into an archivable run with a
// fresh ID. Fact and rule renderings are sorted for stable storage.
func FromResult(res *engine.InferenceResult) Run {
	r := Run{
		ID:             NewRunID(),
		CreatedAt:      time.Now().UTC(),
		Iterations:     res.Iterations,
		Contradictions: append([]string(nil), res.Contradictions...),
	}
	for _, e := range res.OriginalFacts {
		r.Facts = append(r.Facts, e.String())
	}
	for _, e := range res.OriginalRules {
		r.Rules = append(r.Rules, e.String())
	}
	sort.Strings(r.Facts)
	sort.Strings(r.Rules)
	for _, c := range res.Derived {
		r.Derived = append(r.Derived, DerivedFact{
			Conclusion:    c.Conclusion.String(),
			Justification: c.Justification,
			Depth:         c.Depth,
		})
	}
	return r
}
