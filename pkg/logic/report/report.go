// Package report renders an InferenceResult snapshot for the downstream
// consumer: original facts and rules listed lexicographically by rendered
// text, derived facts grouped by ascending depth in discovery order, a
// trailing summary and a contradiction section when non-empty.
package report

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/Sideloading-Research/Inference/pkg/logic/ast"
	"github.com/Sideloading-Research/Inference/pkg/logic/engine"
)

const divider = "======================================================================"

// Render writes the report to w.
func Render(w io.Writer, res *engine.InferenceResult) error {
	if err := section(w, "ORIGINAL FACTS"); err != nil {
		return err
	}
	for _, line := range sortedStrings(res.OriginalFacts) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if err := section(w, "\nORIGINAL RULES"); err != nil {
		return err
	}
	for _, line := range sortedStrings(res.OriginalRules) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if err := section(w, "\nDERIVED FACTS (BY INFERENCE DEPTH)"); err != nil {
		return err
	}
	byDepth := res.DerivedByDepth()
	depths := make([]int, 0, len(byDepth))
	for d := range byDepth {
		depths = append(depths, d)
	}
	sort.Ints(depths)
	for _, d := range depths {
		if _, err := fmt.Fprintf(w, "\n--- Depth %d ---\n", d); err != nil {
			return err
		}
		for _, chain := range byDepth[d] {
			if _, err := fmt.Fprintf(w, "%s\n  <- %s\n", chain.Conclusion, chain.Justification); err != nil {
				return err
			}
		}
	}

	if err := section(w, "\nSUMMARY"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Original facts: %d\nOriginal rules: %d\nDerived facts: %d\nTotal facts: %d\nIterations: %d\n",
		len(res.OriginalFacts), len(res.OriginalRules), len(res.Derived), len(res.AllFacts()), res.Iterations); err != nil {
		return err
	}

	if len(res.Contradictions) > 0 {
		if err := section(w, "\nCONTRADICTIONS DETECTED"); err != nil {
			return err
		}
		for _, c := range res.Contradictions {
			if _, err := fmt.Fprintln(w, c); err != nil {
				return err
			}
		}
	}
	return nil
}

// Write renders the report to a file.
func Write(path string, res *engine.InferenceResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Render(f, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func section(w io.Writer, title string) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n", title, divider)
	return err
}

// sortedStrings renders expressions and sorts them lexicographically.
func sortedStrings(exprs []ast.Expr) []string {
	out := make([]string, len(exprs))
	for i, e := range exprs {
		out[i] = e.String()
	}
	sort.Strings(out)
	return out
}
