// Package cli provides an interactive solve/validate shell for debugging and
// testing the solver and validation pipeline in real time.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/spellbee/solver/pkg/request"
)

// Shell reads one puzzle per line from stdin and prints the resulting
// candidates (and, when a validator is configured, their definitions).
//
// Line grammar: "<letters> [present] [flag=value ...]", e.g.
//
//	abcdefg a
//	abcdefg a min=5
//	abcdefg a max=4 repeats=1
//
// Ctrl+C interrupts the in-flight solve via the shell's context rather than
// killing the process outright, so an in-flight external validation request
// gets to unwind cleanly instead of being killed mid-call.
type Shell struct {
	deps         request.Deps
	validator    string
	apiKey       string
	validatorURL string
}

// NewShell builds a Shell against deps, defaulting every puzzle to the given
// validator (may be "" or "none" for no external lookups). validatorURL is
// only consulted when validator == "custom".
func NewShell(deps request.Deps, validator, apiKey, validatorURL string) *Shell {
	return &Shell{deps: deps, validator: validator, apiKey: apiKey, validatorURL: validatorURL}
}

// Start begins the read-eval-print loop. ctx is checked before each solve,
// so callers can wire os/signal cancellation in to interrupt an in-flight
// external validation request without killing the process.
func (s *Shell) Start(ctx context.Context) error {
	log.Print("spellbee CLI")
	log.Print("type letters [present] [min=N] [max=N] [repeats=N], Ctrl+C to exit:")
	reader := bufio.NewReader(os.Stdin)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		s.handleLine(ctx, line)
	}
}

func (s *Shell) handleLine(ctx context.Context, line string) {
	req, err := parseLine(line, s.validator, s.apiKey)
	req.ValidatorURL = s.validatorURL
	if err != nil {
		log.Errorf("could not parse input: %v", err)
		return
	}

	start := time.Now()
	resp, err := request.Handle(ctx, s.deps, req, nil)
	elapsed := time.Since(start)

	if err != nil {
		log.Errorf("solve failed: %v", err)
		return
	}

	log.Debugf("took %v", elapsed)

	if len(resp.Candidates) == 0 {
		log.Warn("no candidates found")
		return
	}

	log.Printf("found %d candidates:", len(resp.Candidates))
	for i, w := range resp.Candidates {
		colored := fmt.Sprintf("\033[38;5;75m%s\033[0m", w)
		log.Printf("%2d. %s", i+1, colored)
	}
	for _, e := range resp.Entries {
		log.Printf("    %-20s %s", e.Word, e.Definition)
	}
}

func parseLine(line, defaultValidator, apiKey string) (request.SolveRequest, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return request.SolveRequest{}, fmt.Errorf("empty input")
	}

	req := request.SolveRequest{
		Letters:   fields[0],
		Validator: defaultValidator,
		APIKey:    apiKey,
	}

	rest := fields[1:]
	if len(rest) > 0 && !strings.Contains(rest[0], "=") {
		req.Present = rest[0]
		rest = rest[1:]
	}

	for _, kv := range rest {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return request.SolveRequest{}, fmt.Errorf("malformed flag %q", kv)
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return request.SolveRequest{}, fmt.Errorf("flag %q: %w", kv, err)
		}
		switch k {
		case "min":
			req.MinimalWordLength = &n
		case "max":
			req.MaximalWordLength = &n
		case "repeats":
			req.Repeats = &n
		default:
			return request.SolveRequest{}, fmt.Errorf("unknown flag %q", k)
		}
	}

	return req, nil
}
