// Copyright 2026 The Spellbee Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the spellbee solver's server and commandline
interface.

spellbee enumerates dictionary words satisfying a generalized spelling-bee
style letter constraint (available letters, required letters, repeat caps,
length bounds) using a prefix-tree walk, and can optionally enrich the
result against an external dictionary service.

# Server Mode

The server exposes POST /solve, GET /solve/stream (server-sent events), and
GET /health over HTTP.

# CLI Mode

The CLI provides an interactive shell for solving and validating puzzles
from stdin, useful for debugging the solver and validator variants directly.

# Data Files

The dictionary is a UTF-8 text file, one word per line, loaded from the path
named by the SBS_DICT environment variable (default data/dictionary.txt).

# Config

Runtime configuration is managed via a config.toml file, which supports
settings for the server and the validation pipeline. A default configuration
is created automatically if one does not exist.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/spellbee/solver/internal/cli"
	"github.com/spellbee/solver/internal/httpapi"
	"github.com/spellbee/solver/internal/logger"
	"github.com/spellbee/solver/pkg/config"
	"github.com/spellbee/solver/pkg/request"
	"github.com/spellbee/solver/pkg/validate"
	"github.com/spellbee/solver/pkg/wordindex"
)

const (
	Version = "0.1.0-beta"
	AppName = "spellbee"
	gh      = "https://github.com/spellbee/solver"
)

// signalContext returns a context canceled on SIGINT/SIGTERM, so an
// in-flight external validation request gets to unwind through ctx rather
// than being killed outright.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nShutting down...\n")
		cancel()
	}()
	return ctx, cancel
}

func main() {
	ctx, cancel := signalContext()
	defer cancel()

	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	configFile := flag.String("config", "config.toml", "Path to custom config.toml file")
	debugMode := flag.Bool("v", false, "Toggle verbose mode")
	serve := flag.Bool("serve", false, "Run the HTTP server instead of the interactive CLI")
	addr := flag.String("addr", defaultConfig.Server.ListenAddr, "HTTP listen address when -serve is set")
	validatorName := flag.String("validator", defaultConfig.CLI.Validator, "Validator variant: none, free-dictionary, merriam-webster, wordnik, custom")
	apiKey := flag.String("api-key", "", "API key for merriam-webster/wordnik validators")
	validatorURL := flag.String("validator-url", "", "Base URL for the custom validator")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	appConfig, err := config.InitConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dictPath := os.Getenv("SBS_DICT")
	if dictPath == "" {
		dictPath = "data/dictionary.txt"
	}

	buildStart := time.Now()
	idx, err := loadIndex(dictPath, false)
	if err != nil {
		log.Fatalf("Failed to build word index: %v", err)
	}
	buildElapsed := time.Since(buildStart)
	log.Debugf("Loaded word index with %d words from %s in %v", idx.Size(), dictPath, buildElapsed)

	pipelineOpts := request.PipelineOpts{
		Client:   &http.Client{Timeout: appConfig.Validate.HTTPTimeout()},
		Cache:    validate.NewCache(appConfig.Validate.HotCacheSize),
		Throttle: appConfig.Validate.ThrottleDelay(),
		Probe:    true,
	}
	deps := request.Deps{Index: idx, Pipeline: pipelineOpts}

	if *serve {
		runServer(deps, pipelineOpts, *addr, buildElapsed)
		return
	}

	shell := cli.NewShell(deps, *validatorName, *apiKey, *validatorURL)
	if err := shell.Start(ctx); err != nil {
		log.Fatalf("CLI error: %v", err)
	}
}

func loadIndex(path string, caseSensitive bool) (*wordindex.WordIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dictionary %s: %w", path, err)
	}
	defer f.Close()
	return wordindex.Build(f, caseSensitive)
}

func runServer(deps request.Deps, pipelineOpts request.PipelineOpts, addr string, buildElapsed time.Duration) {
	srvLogger := logger.Default("spellbee")
	srv := httpapi.New(deps.Index, pipelineOpts, srvLogger, buildElapsed)

	showStartupInfo(addr, deps.Index.Size())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv.Mux(),
	}
	if err := httpServer.ListenAndServe(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func showStartupInfo(addr string, words int) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("===========")
	println(" spellbee  ")
	println("===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Infof("dictionary size: [ %d words ]", words)
	log.Infof("listening on: ( %s )", addr)
	log.Info("status: ready")
	println("===========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}

func printVersion() {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	l.SetStyles(styles)

	l.Print("")
	l.Print("[spellbee] generalized spelling-bee puzzle solver")
	l.Print("", "version", Version)
	l.Print("")
	l.Print("use --help to see available options")
	l.Print("")
	l.Print("Find out more at", "gh", gh)
}
