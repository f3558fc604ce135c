package validate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// Summary reports how many candidates went in, how many were validated, and
// the enriched entries for the ones that were.
type Summary struct {
	Candidates int         `json:"candidates"`
	Validated  int         `json:"validated"`
	Entries    []WordEntry `json:"entries"`
}

// Progress is a {done, total} event emitted after each attempted candidate.
type Progress struct {
	Done  int `json:"done"`
	Total int `json:"total"`
}

// Event is one self-contained streaming event: exactly one of Progress,
// Result, or Err is set. Result is `any` rather than *Summary so a caller
// that skipped the pipeline entirely (validator == "none") can still stream
// its bare candidate array through the same event shape.
type Event struct {
	Progress *Progress `json:"progress,omitempty"`
	Result   any        `json:"result,omitempty"`
	Err      string     `json:"error,omitempty"`
}

// Pipeline runs candidates through a single Variant, at most one outbound
// HTTP request in flight at a time, throttled between requests.
type Pipeline struct {
	variant  Variant
	apiKey   string
	client   *http.Client
	cache    *Cache
	throttle time.Duration
}

// NewPipeline builds a Pipeline for variant, using client for outbound calls
// and cache to short-circuit repeated candidates. throttle is the fixed
// delay between consecutive requests; it is not applied after the last one.
func NewPipeline(variant Variant, apiKey string, client *http.Client, cache *Cache, throttle time.Duration) *Pipeline {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Pipeline{variant: variant, apiKey: apiKey, client: client, cache: cache, throttle: throttle}
}

// Run processes every candidate and, if sink is non-nil, emits a Progress
// event after each one completes and a final Result (or Err) event. It
// always returns the final Summary on success, so callers that only need
// the collected form may pass a nil sink.
//
// Cancellation is checked between candidates and between the HTTP call and
// the throttle sleep; on cancellation Run returns ctx.Err() and emits no
// partial summary.
func (p *Pipeline) Run(ctx context.Context, candidates []string, sink func(Event)) (Summary, error) {
	total := len(candidates)
	summary := Summary{Candidates: total}

	for i, word := range candidates {
		select {
		case <-ctx.Done():
			return Summary{}, ctx.Err()
		default:
		}

		entry, validated := p.validateOne(ctx, word)
		if validated {
			summary.Entries = append(summary.Entries, entry)
		}

		done := i + 1
		if sink != nil {
			sink(Event{Progress: &Progress{Done: done, Total: total}})
		}

		if done < total {
			select {
			case <-ctx.Done():
				return Summary{}, ctx.Err()
			case <-time.After(p.throttle):
			}
		}
	}

	summary.Validated = len(summary.Entries)
	if sink != nil {
		sink(Event{Result: &summary})
	}
	return summary, nil
}

// validateOne looks up word's cached entry first, then falls back to the
// external service. Network errors, parse failures, 404s, and 5xx responses
// all silently classify the word as not-validated.
func (p *Pipeline) validateOne(ctx context.Context, word string) (WordEntry, bool) {
	if p.cache != nil {
		if entry, ok := p.cache.Get(word); ok {
			return entry, true
		}
	}

	req, err := p.variant.BuildRequest(word, p.apiKey)
	if err != nil {
		log.Warnf("validate: building request for %q: %v", word, err)
		return WordEntry{}, false
	}
	req = req.WithContext(ctx)

	resp, err := p.client.Do(req)
	if err != nil {
		log.Warnf("validate: request for %q failed: %v", word, err)
		return WordEntry{}, false
	}
	defer resp.Body.Close()

	definition, ok, err := p.variant.Extract(resp)
	if err != nil {
		log.Warnf("validate: parsing response for %q: %v", word, err)
		return WordEntry{}, false
	}
	if !ok {
		return WordEntry{}, false
	}

	entry := WordEntry{Word: word, Definition: definition, URL: p.variant.CanonicalURL(word)}
	if p.cache != nil {
		p.cache.Put(word, entry)
	}
	return entry, true
}

// ErrFatalConfig wraps a configuration error that must abort the pipeline
// before any candidate is processed: a missing API key, a malformed custom
// URL, or a probe failure.
var ErrFatalConfig = errors.New("validate: fatal configuration error")

// Resolve builds a Pipeline for the given wire-level validator selection,
// returning ErrFatalConfig-wrapped errors for anything that must reject the
// request synchronously rather than mid-run.
func Resolve(name, apiKey, customURL string, client *http.Client, cache *Cache, throttle time.Duration, probe bool) (*Pipeline, error) {
	variant, err := ForName(name, customURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFatalConfig, err)
	}
	if variant.RequiresAPIKey() && apiKey == "" {
		return nil, fmt.Errorf("%w: %w", ErrFatalConfig, ErrMissingAPIKey)
	}
	if custom, ok := variant.(Custom); ok && probe {
		if client == nil {
			client = &http.Client{Timeout: 10 * time.Second}
		}
		if err := Probe(client, custom); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFatalConfig, err)
		}
	}
	return NewPipeline(variant, apiKey, client, cache, throttle), nil
}
