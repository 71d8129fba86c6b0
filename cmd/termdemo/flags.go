// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports --config, --backend, --verbose, --version

package main

import "flag"

type cliArgs struct {
	configPath string
	backend    string
	verbose    bool
	version    bool
}

func parseFlags() cliArgs {
	var args cliArgs

	flag.StringVar(&args.configPath, "config", "", "Path to a YAML config file")
	flag.StringVar(&args.backend, "backend", "", "Terminal backend: auto, ansi or console (overrides config)")
	flag.BoolVar(&args.verbose, "verbose", false, "Enable debug logging")
	flag.BoolVar(&args.version, "version", false, "Show version and exit")

	flag.Parse()
	return args
}
