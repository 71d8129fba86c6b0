// ABOUTME: CLI entry point for termdemo with terminal crash recovery
// ABOUTME: Parses flags, loads config, opens the platform backend and runs the interactive demo

package main

import (
	"fmt"
	"os"

	"github.com/mauromedda/termctl/internal/config"
	"github.com/mauromedda/termctl/internal/log"
	"github.com/mauromedda/termctl/pkg/term/terminal"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	args := parseFlags()

	if args.version {
		fmt.Printf("termdemo %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run loads settings, selects the backend and dispatches to the demo or,
// when stdout is not a terminal, to a plain summary.
func run(args cliArgs) error {
	cfg, err := config.Load(args.configPath)
	if err != nil {
		return err
	}

	log.SetLevel(cfg.Level())
	if args.verbose {
		log.SetLevel(log.LevelDebug)
	}

	backend := cfg.BackendName()
	if args.backend != "" {
		backend, err = terminal.ParseBackend(args.backend)
		if err != nil {
			return err
		}
	}

	depth := terminal.DetectColorDepth(os.Stdout)

	if !terminal.IsInteractive(os.Stdout) {
		printSummary(os.Stdout, backend, depth, cfg.Options())
		return nil
	}

	t, err := terminal.Open(backend, cfg.Options())
	if err != nil {
		return err
	}
	if r, ok := t.(terminal.Restorer); ok {
		defer terminal.RestoreOnPanic(r)
	}

	log.Debug("running demo: backend=%s depth=%s", backend, depth)
	return runDemo(t, os.Stdout, depth)
}
