package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Sideloading-Research/Inference/pkg/logic/engine"
)

func inferredResult(t *testing.T) *engine.InferenceResult {
	t.Helper()
	e := engine.New(engine.Options{})
	for _, fact := range []string{
		"(Zoe)IsA(profesora)",
		"(Pedro)IsA(estudiante)",
		"¬(Pedro)Vago",
		"(Pedro)Vago",
	} {
		if err := e.AddFactText(fact); err != nil {
			t.Fatal(err)
		}
	}
	for _, rule := range []string{
		"(X)IsA(estudiante) → (X)estudia",
		"(X)estudia → (X)aprende",
	} {
		if err := e.AddRuleText(rule); err != nil {
			t.Fatal(err)
		}
	}
	return e.InferAll(false)
}

func TestRenderOrdering(t *testing.T) {
	var sb strings.Builder
	if err := Render(&sb, inferredResult(t)); err != nil {
		t.Fatal(err)
	}
	out := sb.String()

	// Original facts are lexicographic: (Pedro)... before (Zoe)...
	pedro := strings.Index(out, "(Pedro)IsA(estudiante)\n")
	zoe := strings.Index(out, "(Zoe)IsA(profesora)")
	if pedro < 0 || zoe < 0 || pedro > zoe {
		t.Errorf("original facts not in lexicographic order:\n%s", out)
	}

	// Depth sections ascend.
	d1 := strings.Index(out, "--- Depth 1 ---")
	d2 := strings.Index(out, "--- Depth 2 ---")
	if d1 < 0 || d2 < 0 || d1 > d2 {
		t.Errorf("depth sections missing or out of order:\n%s", out)
	}

	// (Pedro)estudia is derived in pass 1, (Pedro)aprende in pass 2.
	estudia := strings.Index(out, "(Pedro)estudia\n")
	aprende := strings.Index(out, "(Pedro)aprende\n")
	if estudia < 0 || aprende < 0 || estudia > aprende {
		t.Errorf("derived facts not grouped by depth:\n%s", out)
	}

	for _, section := range []string{
		"ORIGINAL FACTS", "ORIGINAL RULES", "DERIVED FACTS (BY INFERENCE DEPTH)",
		"SUMMARY", "Iterations:", "CONTRADICTIONS DETECTED",
	} {
		if !strings.Contains(out, section) {
			t.Errorf("missing section %q", section)
		}
	}
	if !strings.Contains(out, "(Pedro)Vago") {
		t.Error("contradiction entry missing")
	}
}

func TestRenderOmitsContradictionSectionWhenClean(t *testing.T) {
	e := engine.New(engine.Options{})
	if err := e.AddFactText("(Pedro)Feliz"); err != nil {
		t.Fatal(err)
	}
	var sb strings.Builder
	if err := Render(&sb, e.InferAll(false)); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(sb.String(), "CONTRADICTIONS") {
		t.Error("contradiction section rendered for a clean result")
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	if err := Write(path, inferredResult(t)); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "SUMMARY") {
		t.Error("written report incomplete")
	}
}
