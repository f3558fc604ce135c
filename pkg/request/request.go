/*
Package request implements the wire contract glue: turn a SolveRequest into a
ConstraintSet, run the Solver, and either return the candidate list directly
or hand it to a validation pipeline.
*/
package request

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spellbee/solver/pkg/constraintset"
	"github.com/spellbee/solver/pkg/solver"
	"github.com/spellbee/solver/pkg/validate"
	"github.com/spellbee/solver/pkg/wordindex"
)

// SolveRequest is the wire-level request body; hyphenated JSON names are
// mapped onto these fields by the httpapi package.
type SolveRequest struct {
	Letters           string
	Present           string
	Repeats           *int
	MinimalWordLength *int
	MaximalWordLength *int
	CaseSensitive     bool
	Validator         string
	APIKey            string
	ValidatorURL      string
}

// SolveResponse is the wire-level response. When no validator was selected
// it marshals as a bare JSON array of candidate strings; otherwise as the
// {candidates, validated, entries} object.
type SolveResponse struct {
	Candidates []string             `json:"candidates"`
	Validated  int                  `json:"validated"`
	Entries    []validate.WordEntry `json:"entries"`

	validatorUsed bool
}

// MarshalJSON implements the two-shape wire contract described above.
func (r SolveResponse) MarshalJSON() ([]byte, error) {
	if !r.validatorUsed {
		return json.Marshal(r.Candidates)
	}
	type shape struct {
		Candidates int                  `json:"candidates"`
		Validated  int                  `json:"validated"`
		Entries    []validate.WordEntry `json:"entries"`
	}
	return json.Marshal(shape{Candidates: len(r.Candidates), Validated: r.Validated, Entries: r.Entries})
}

// ErrSentinel wraps a request-level rejection, surfaced to callers as a
// structured error before any candidate is computed. Kind names one of a
// fixed set of wire-facing rejection reasons, letting a caller discriminate
// why a request was rejected without parsing Err's message text.
type ErrSentinel struct {
	Kind string
	Err  error
}

func (e *ErrSentinel) Error() string { return fmt.Sprintf("%s: %v", e.Kind, e.Err) }
func (e *ErrSentinel) Unwrap() error { return e.Err }

// ErrCancelled is returned by Handle when ctx was canceled mid-pipeline; no
// partial summary is returned in that case.
var ErrCancelled = errors.New("request: cancelled")

// PipelineOpts carries the process-wide validation configuration (throttle
// delay, HTTP timeout via Client, cache) that Handle needs to build a
// validation pipeline on demand.
type PipelineOpts struct {
	Client   *http.Client
	Cache    *validate.Cache
	Throttle time.Duration
	Probe    bool
}

// Deps bundles the process-wide, shared resources a solve needs: the
// immutable WordIndex (built once at startup, shared read-only across all
// concurrent solves) and the validation configuration.
type Deps struct {
	Index    *wordindex.WordIndex
	Pipeline PipelineOpts
}

// Handle validates req, runs the solve, and, if a validator was selected,
// pipes the candidates through it. sink, if non-nil, receives streaming
// events from the validation pipeline as they occur; when sink is nil the
// pipeline still runs to completion and its Summary is folded into the
// returned SolveResponse.
func Handle(ctx context.Context, deps Deps, req SolveRequest, sink func(validate.Event)) (SolveResponse, error) {
	raw := constraintset.Raw{
		Available:     req.Letters,
		Required:      req.Present,
		Repeats:       req.Repeats,
		MinLength:     req.MinimalWordLength,
		MaxLength:     req.MaximalWordLength,
		CaseSensitive: req.CaseSensitive,
	}

	cs, err := constraintset.FromRequest(raw)
	if err != nil {
		return SolveResponse{}, &ErrSentinel{Kind: classifyConstraintError(err), Err: err}
	}

	if req.Validator == "" || req.Validator == "none" {
		return SolveResponse{Candidates: solver.Collect(ctx, deps.Index, cs)}, nil
	}

	pipeline, err := validate.Resolve(req.Validator, req.APIKey, req.ValidatorURL,
		deps.Pipeline.Client, deps.Pipeline.Cache, deps.Pipeline.Throttle, deps.Pipeline.Probe)
	if err != nil {
		return SolveResponse{}, &ErrSentinel{Kind: classifyValidateError(err), Err: err}
	}

	candidates := solver.Collect(ctx, deps.Index, cs)

	summary, err := pipeline.Run(ctx, candidates, sink)
	if err != nil {
		return SolveResponse{}, fmt.Errorf("%w: %v", ErrCancelled, err)
	}

	return SolveResponse{
		Candidates:    candidates,
		Validated:     summary.Validated,
		Entries:       summary.Entries,
		validatorUsed: true,
	}, nil
}

func classifyConstraintError(err error) string {
	switch {
	case errors.Is(err, constraintset.ErrEmptyLetters):
		return "EmptyLetters"
	case errors.Is(err, constraintset.ErrRequiredNotAvailable):
		return "RequiredNotAvailable"
	case errors.Is(err, constraintset.ErrUnsupportedSymbol):
		return "UnsupportedSymbol"
	case errors.Is(err, constraintset.ErrNonPositiveRepeats):
		return "NonPositiveRepeats"
	case errors.Is(err, constraintset.ErrNonPositiveLength):
		return "NonPositiveLength"
	case errors.Is(err, constraintset.ErrMinExceedsMax):
		return "MinExceedsMax"
	default:
		return "InvalidRequest"
	}
}

func classifyValidateError(err error) string {
	switch {
	case errors.Is(err, validate.ErrMissingAPIKey):
		return "MissingApiKey"
	case errors.Is(err, validate.ErrInvalidCustomValidator):
		return "InvalidCustomValidator"
	case errors.Is(err, validate.ErrUnknownVariant):
		return "UnknownVariant"
	default:
		return "InvalidRequest"
	}
}
