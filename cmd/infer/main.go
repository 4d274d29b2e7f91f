// Command infer loads a .inf fact/rule file, saturates the knowledge
// base, renders the inference report and optionally archives the run.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/Sideloading-Research/Inference/pkg/logic"
	"github.com/Sideloading-Research/Inference/pkg/logic/config"
	"github.com/Sideloading-Research/Inference/pkg/logic/report"
	"github.com/Sideloading-Research/Inference/pkg/logic/store/sqlite"
)

func main() {
	var (
		inputPath   = flag.String("input", "", "Input .inf file (required)")
		outputPath  = flag.String("output", "", "Report file (default: stdout)")
		configPath  = flag.String("config", "", "YAML configuration file (optional)")
		dbPath      = flag.String("db", "", "SQLite run archive (overrides config)")
		verbose     = flag.Bool("verbose", false, "Log inference progress")
		conjunction = flag.Bool("conjunction", false, "Enable the Conjunction rule")
		maxIter     = flag.Int("max-iterations", 0, "Iteration cap (overrides config)")
	)
	flag.Parse()

	if *inputPath == "" {
		log.Fatal("--input required")
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = *loaded
	}
	if *maxIter > 0 {
		cfg.Engine.MaxIterations = *maxIter
	}
	if *conjunction {
		cfg.Engine.EnableConjunction = true
	}
	if *dbPath != "" {
		cfg.Store.Path = *dbPath
	}

	ctx := context.Background()

	opts := logic.Options{
		MaxIterations:     cfg.Engine.MaxIterations,
		EnableConjunction: cfg.Engine.EnableConjunction,
	}
	if cfg.Store.Path != "" {
		st, err := sqlite.Open(ctx, cfg.Store.Path)
		if err != nil {
			log.Fatal(err)
		}
		opts.Store = st
	}

	system := logic.New(opts)
	defer system.Close()

	if err := system.LoadFromFile(*inputPath); err != nil {
		log.Fatal(err)
	}

	result := system.InferAll(*verbose)

	if *outputPath != "" {
		if err := report.Write(*outputPath, result); err != nil {
			log.Fatal(err)
		}
		log.Printf("report written to %s", *outputPath)
	} else {
		if err := report.Render(os.Stdout, result); err != nil {
			log.Fatal(err)
		}
	}

	if opts.Store != nil {
		id, err := system.Archive(ctx, result)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("run archived as %s", id)
	}
}
