package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Sideloading-Research/Inference/pkg/logic/internalerr"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Engine.MaxIterations != 100 {
		t.Errorf("default max_iterations = %d, want 100", cfg.Engine.MaxIterations)
	}
	if cfg.Engine.EnableConjunction {
		t.Error("conjunction should default to off")
	}
	if cfg.Store.Path != "" {
		t.Error("store should default to disabled")
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
engine:
  max_iterations: 25
  enable_conjunction: true
store:
  path: runs.db
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Engine.MaxIterations != 25 || !cfg.Engine.EnableConjunction {
		t.Errorf("unexpected engine config %+v", cfg.Engine)
	}
	if cfg.Store.Path != "runs.db" {
		t.Errorf("unexpected store path %q", cfg.Store.Path)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
store:
  path: runs.db
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Engine.MaxIterations != 100 {
		t.Errorf("omitted max_iterations should default to 100, got %d", cfg.Engine.MaxIterations)
	}
}

func TestLoadInvalid(t *testing.T) {
	for name, content := range map[string]string{
		"bad yaml":       "engine: [",
		"bad iterations": "engine:\n  max_iterations: -1\n",
	} {
		path := writeConfig(t, content)
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected error", name)
		} else if !errors.Is(err, internalerr.ErrInvalidConfig) {
			t.Errorf("%s: error %v does not wrap ErrInvalidConfig", name, err)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
