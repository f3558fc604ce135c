/*
Package httpapi exposes the solve/validate pipeline over HTTP: POST /solve,
GET /solve/stream (server-sent events), and GET /health.

This package is built directly on net/http.ServeMux rather than a router
library: Go 1.22's method-pattern routing ("POST /solve") already covers what
this small, fixed set of endpoints needs.
*/
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/spellbee/solver/pkg/request"
	"github.com/spellbee/solver/pkg/validate"
	"github.com/spellbee/solver/pkg/wordindex"
)

// wireRequest mirrors the hyphenated JSON field names of the public API.
type wireRequest struct {
	Letters           string `json:"letters"`
	Present           string `json:"present"`
	Repeats           *int   `json:"repeats"`
	MinimalWordLength *int   `json:"minimal-word-length"`
	MaximalWordLength *int   `json:"maximal-word-length"`
	CaseSensitive     bool   `json:"case-sensitive"`
	Validator         string `json:"validator"`
	APIKey            string `json:"api-key"`
	ValidatorURL      string `json:"validator-url"`
}

func (w wireRequest) toSolveRequest() request.SolveRequest {
	return request.SolveRequest{
		Letters:           w.Letters,
		Present:           w.Present,
		Repeats:           w.Repeats,
		MinimalWordLength: w.MinimalWordLength,
		MaximalWordLength: w.MaximalWordLength,
		CaseSensitive:     w.CaseSensitive,
		Validator:         w.Validator,
		APIKey:            w.APIKey,
		ValidatorURL:      w.ValidatorURL,
	}
}

// Server holds the shared, immutable WordIndex and validation configuration
// every request is served against.
type Server struct {
	deps         request.Deps
	logger       *log.Logger
	buildElapsed time.Duration
}

// New builds a Server ready to be handed to Mux. buildElapsed is how long
// the WordIndex took to build, surfaced by GET /health.
func New(idx *wordindex.WordIndex, pipelineOpts request.PipelineOpts, logger *log.Logger, buildElapsed time.Duration) *Server {
	return &Server{
		deps:         request.Deps{Index: idx, Pipeline: pipelineOpts},
		logger:       logger,
		buildElapsed: buildElapsed,
	}
}

// Mux returns the routed handler: POST /solve, GET /solve/stream, GET /health.
func (s *Server) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /solve", s.logged(s.handleSolve))
	mux.HandleFunc("GET /solve/stream", s.logged(s.handleSolveStream))
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// logged wraps h to emit one Info line per request with method, path, and
// latency.
func (s *Server) logged(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		h(w, r)
		s.logger.Infof("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	}
}

// healthFact is the body of GET /health: "ok" plus the dictionary size and
// build duration, useful operational detail beyond a plain "ok".
type healthFact struct {
	Status        string `json:"status"`
	WordCount     int    `json:"word_count"`
	BuildDuration string `json:"build_duration"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(healthFact{
		Status:        "ok",
		WordCount:     s.deps.Index.Size(),
		BuildDuration: s.buildElapsed.String(),
	})
}

func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (request.SolveRequest, bool) {
	var wire wireRequest
	if err := json.NewDecoder(r.Body).Decode(&wire); err != nil {
		http.Error(w, fmt.Sprintf("malformed request body: %v", err), http.StatusBadRequest)
		return request.SolveRequest{}, false
	}
	return wire.toSolveRequest(), true
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	resp, err := request.Handle(r.Context(), s.deps, req, nil)
	if err != nil {
		s.writeRejection(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Errorf("encoding solve response: %v", err)
	}
}

func (s *Server) writeRejection(w http.ResponseWriter, err error) {
	var sentinel *request.ErrSentinel
	if errors.As(err, &sentinel) {
		http.Error(w, sentinel.Error(), http.StatusBadRequest)
		return
	}
	s.logger.Errorf("solve request failed: %v", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// handleSolveStream implements the SSE endpoint: each event is
// "data: <json>\n\n", and at most one result event is emitted, always last.
func (s *Server) handleSolveStream(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	write := func(ev validate.Event) {
		data, err := json.Marshal(ev)
		if err != nil {
			s.logger.Errorf("encoding stream event: %v", err)
			return
		}
		fmt.Fprintf(w, "data: %s\n\n", data)
		flusher.Flush()
	}

	resp, err := request.Handle(r.Context(), s.deps, req, write)
	if err != nil {
		write(validate.Event{Err: err.Error()})
		return
	}

	// No validator was selected: request.Handle never calls write, so the
	// single result event is emitted here instead, carrying the bare
	// candidate array under "result".
	if req.Validator == "" || req.Validator == "none" {
		write(validate.Event{Result: resp.Candidates})
	}
}
