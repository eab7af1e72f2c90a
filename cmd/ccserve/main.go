/*
Package main runs the completion engine as a standalone process.

ccserve serves language-aware prefix completions over msgpack IPC on
stdin/stdout, for editor hosts that talk to the engine across a process
boundary instead of embedding the Go packages directly. Dictionaries are
plain JSON documents, one per language, loaded lazily on first request
and cached for the process lifetime.

# Usage

Start the IPC server with dictionaries from a local directory:

	ccserve -data /path/to/dicts

Fetch dictionaries from an HTTP endpoint instead:

	ccserve -url https://example.com/dictionaries

Run the interactive CLI for testing and debugging:

	ccserve -c -lang c -limit 10

# Configuration

Runtime settings live in a TOML file created with defaults on first run:

	[engine]
	max_results = 10
	debounce_ms = 150
	min_prefix = 1
	max_prefix = 60

	[dict]
	dir = "dicts/"
	base_url = ""

# IPC Protocol

Requests are msgpack maps with an id and an op. A completion request:

	{"id": "req1", "op": "complete", "p": "HAL_GP", "lang": "c", "l": 10}

comes back ranked, with timing in microseconds:

	{"id": "req1", "s": [{"w": "HAL_GPIO_Init", "k": "function", "s": 92}], "c": 1, "t": 130}

The "context" op accepts a raw buffer and cursor offset and derives the
prefix server-side; "load" pre-warms a language; "status" reports loaded
languages and the advisory memory estimate.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/hawklogic/ccserve/internal/cli"
	"github.com/hawklogic/ccserve/pkg/config"
	"github.com/hawklogic/ccserve/pkg/corpus"
	"github.com/hawklogic/ccserve/pkg/server"
)

const (
	Version = "0.3.0"
	AppName = "ccserve"
)

// sigHandler exits cleanly on Ctrl+C / SIGTERM.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	sigHandler()
	defaults := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	dataDir := flag.String("data", "", "Directory containing per-language dictionary JSON files")
	baseURL := flag.String("url", "", "Base URL serving per-language dictionary JSON files")
	configPath := flag.String("config", "", "Path to config.toml")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run interactive CLI -- useful for testing and debugging")
	language := flag.String("lang", "c", "Starting language for CLI mode")
	limit := flag.Int("limit", defaults.Engine.MaxResults, "Number of suggestions to return")

	flag.Parse()

	if *showVersion {
		banner := lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		fmt.Println(banner.Render(fmt.Sprintf("%s %s", AppName, Version)))
		fmt.Println("language-aware prefix completion over msgpack IPC")
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	path := *configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			log.Warnf("Cannot determine config path: %v. Using builtin defaults.", err)
		}
	}
	var cfg *config.Config
	if path != "" {
		cfg = config.Init(path)
		log.Debugf("Using config file: (%s)", path)
	} else {
		cfg = config.DefaultConfig()
	}

	manager := corpus.NewManager(pickSource(cfg, *dataDir, *baseURL))

	if *cliMode {
		log.SetReportTimestamp(false)
		handler := cli.NewInputHandler(manager, *language, *limit, cfg.Engine.MaxPrefix)
		if err := handler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(manager, cfg)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// pickSource resolves the dictionary source: flags beat config, URL beats
// local directory.
func pickSource(cfg *config.Config, dataDir, baseURL string) corpus.Source {
	if baseURL == "" {
		baseURL = cfg.Dict.BaseURL
	}
	if baseURL != "" {
		log.Debugf("Fetching dictionaries from %s", baseURL)
		return corpus.HTTPSource{BaseURL: baseURL}
	}
	if dataDir == "" {
		dataDir = cfg.Dict.Dir
	}
	log.Debugf("Using dictionary dir: %s", dataDir)
	return corpus.FileSource{Dir: dataDir}
}
