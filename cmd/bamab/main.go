package main

import (
	"fmt"
	"os"

	"github.com/bbscheffer1-byte/BAMAB-lekdetectie/internal/config"
	"github.com/bbscheffer1-byte/BAMAB-lekdetectie/internal/store"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return true
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

func main() {
	// Handle --help/--version before opening the database (no store needed)
	if isHelpOrVersion() {
		app := newCLIApp(nil, nil, nil)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	backend, err := store.OpenSQLite(cfg.BaseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to open report history: %v\n", err)
		os.Exit(1)
	}
	defer backend.Close()

	st := store.Open(backend)

	app := newCLIApp(st, cfg, geminiFactory(cfg))
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
