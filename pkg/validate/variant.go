/*
Package validate implements the validation pipeline: given a candidate list
from the solver, look each word up in exactly one external dictionary service
and produce a summary, emitting progress events as it goes.

Every variant answers with a JSON array of entries, but the entry shape
differs: free-dictionary and custom carry a
"meanings[].definitions[].definition" path, merriam-webster a "shortdef"
list, and wordnik a "text" field. Each variant's Extract encodes its own
acceptance condition and definition source; CanonicalURL its user-facing URL.
*/
package validate

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WordEntry is a single validated candidate.
type WordEntry struct {
	Word       string `json:"word" msgpack:"word"`
	Definition string `json:"definition" msgpack:"definition"`
	URL        string `json:"url" msgpack:"url"`
}

const noDefinition = "No definition available"

// freeDictionaryEntry mirrors the shape returned by the Free Dictionary API
// and by any "custom" validator that advertises the same shape. Grounded on
// FreeDictionaryResponse in the wordlist-service reference.
type freeDictionaryEntry struct {
	Word     string `json:"word"`
	Meanings []struct {
		Definitions []struct {
			Definition string `json:"definition"`
		} `json:"definitions"`
	} `json:"meanings"`
}

// merriamWebsterEntry holds only what's needed to distinguish "found a real
// entry" from "did you mean" suggestions (which come back as a list of bare
// strings rather than objects).
type merriamWebsterEntry struct {
	Shortdef []string `json:"shortdef"`
}

// wordnikEntry holds the first definition's free-text body.
type wordnikEntry struct {
	Text string `json:"text"`
}

// Variant is one external dictionary service: a URL template, whether it
// needs an API key, and a rule for turning an HTTP response into either a
// definition or "not a word".
type Variant interface {
	// Name is the wire name of this variant ("free-dictionary", ...).
	Name() string
	// RequiresAPIKey reports whether this variant rejects at request
	// validation when no key is supplied.
	RequiresAPIKey() bool
	// BuildRequest returns the outbound request for word.
	BuildRequest(word, apiKey string) (*http.Request, error)
	// CanonicalURL is the user-facing URL to associate with a validated
	// word, independent of the lookup endpoint.
	CanonicalURL(word string) string
	// Extract reports whether resp represents an accepted word and, if so,
	// its definition. ok=false means "not a word", not a Go error.
	Extract(resp *http.Response) (definition string, ok bool, err error)
}

// FreeDictionary is the https://api.dictionaryapi.dev variant.
type FreeDictionary struct{}

func (FreeDictionary) Name() string          { return "free-dictionary" }
func (FreeDictionary) RequiresAPIKey() bool  { return false }
func (FreeDictionary) CanonicalURL(word string) string {
	return "https://en.wiktionary.org/wiki/" + word
}

func (FreeDictionary) BuildRequest(word, _ string) (*http.Request, error) {
	url := fmt.Sprintf("https://api.dictionaryapi.dev/api/v2/entries/en/%s", word)
	return http.NewRequest(http.MethodGet, url, nil)
}

func (FreeDictionary) Extract(resp *http.Response) (string, bool, error) {
	if resp.StatusCode == http.StatusNotFound {
		return "", false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", false, nil
	}
	var entries []freeDictionaryEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return "", false, err
	}
	if len(entries) == 0 {
		return "", false, nil
	}
	for _, m := range entries[0].Meanings {
		if len(m.Definitions) > 0 {
			return m.Definitions[0].Definition, true, nil
		}
	}
	return noDefinition, true, nil
}

// MerriamWebster is the www.merriam-webster.com variant. Requires an API key.
type MerriamWebster struct{}

func (MerriamWebster) Name() string         { return "merriam-webster" }
func (MerriamWebster) RequiresAPIKey() bool { return true }
func (MerriamWebster) CanonicalURL(word string) string {
	return "https://www.merriam-webster.com/dictionary/" + word
}

func (MerriamWebster) BuildRequest(word, apiKey string) (*http.Request, error) {
	url := fmt.Sprintf("https://www.dictionaryapi.com/api/v3/references/collegiate/json/%s?key=%s", word, apiKey)
	return http.NewRequest(http.MethodGet, url, nil)
}

func (MerriamWebster) Extract(resp *http.Response) (string, bool, error) {
	if resp.StatusCode != http.StatusOK {
		return "", false, nil
	}
	// A "did you mean" response is a flat array of strings; decode into
	// json.RawMessage first so we can tell the two shapes apart.
	var raw []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", false, err
	}
	if len(raw) == 0 {
		return "", false, nil
	}
	var entry merriamWebsterEntry
	if err := json.Unmarshal(raw[0], &entry); err != nil {
		// First element isn't an object: suggestion list, reject.
		return "", false, nil
	}
	if len(entry.Shortdef) > 0 {
		return entry.Shortdef[0], true, nil
	}
	return noDefinition, true, nil
}

// Wordnik is the www.wordnik.com variant. Requires an API key.
type Wordnik struct{}

func (Wordnik) Name() string         { return "wordnik" }
func (Wordnik) RequiresAPIKey() bool { return true }
func (Wordnik) CanonicalURL(word string) string {
	return "https://www.wordnik.com/words/" + word
}

func (Wordnik) BuildRequest(word, apiKey string) (*http.Request, error) {
	url := fmt.Sprintf("https://api.wordnik.com/v4/word.json/%s/definitions?api_key=%s", word, apiKey)
	return http.NewRequest(http.MethodGet, url, nil)
}

func (Wordnik) Extract(resp *http.Response) (string, bool, error) {
	if resp.StatusCode != http.StatusOK {
		return "", false, nil
	}
	var entries []wordnikEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return "", false, err
	}
	if len(entries) == 0 {
		return "", false, nil
	}
	if entries[0].Text != "" {
		return entries[0].Text, true, nil
	}
	return noDefinition, true, nil
}

// Custom wraps a user-supplied URL that is expected to answer in the
// free-dictionary shape.
type Custom struct {
	BaseURL string
}

func (Custom) Name() string         { return "custom" }
func (Custom) RequiresAPIKey() bool { return false }
func (c Custom) CanonicalURL(word string) string {
	return c.BaseURL + "/" + word
}

func (c Custom) BuildRequest(word, _ string) (*http.Request, error) {
	return http.NewRequest(http.MethodGet, c.BaseURL+"/"+word, nil)
}

func (Custom) Extract(resp *http.Response) (string, bool, error) {
	return FreeDictionary{}.Extract(resp)
}

// Probe issues a fixed-word lookup against a Custom variant's URL and reports
// whether it is a plausible free-dictionary-shaped service. A 2xx that parses
// into the expected shape, or a plain 404, both pass; any other outcome fails
// the probe.
func Probe(client *http.Client, v Custom) error {
	req, err := v.BuildRequest("test", "")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCustomValidator, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCustomValidator, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		var entries []freeDictionaryEntry
		if err := json.NewDecoder(resp.Body).Decode(&entries); err == nil {
			return nil
		}
	}
	return ErrInvalidCustomValidator
}

// Registry resolves a wire validator name to its Variant. The three built-in
// variants and a "custom" one all go through this single dispatch path
// instead of a hand-written switch repeated at every call site.
type Registry struct {
	builtins map[string]Variant
}

// NewRegistry builds a Registry covering the three named built-in variants;
// "custom" is resolved separately since it carries a caller-supplied URL.
func NewRegistry() Registry {
	return Registry{builtins: map[string]Variant{
		"free-dictionary": FreeDictionary{},
		"merriam-webster": MerriamWebster{},
		"wordnik":         Wordnik{},
	}}
}

// Resolve looks up name, building a Custom variant on the fly when
// name == "custom". name == "none" is handled by callers before reaching
// here: it means skip the pipeline entirely, not a Variant.
func (reg Registry) Resolve(name, customURL string) (Variant, error) {
	if name == "custom" {
		return Custom{BaseURL: customURL}, nil
	}
	v, ok := reg.builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	return v, nil
}

var defaultRegistry = NewRegistry()

// ForName resolves a wire validator name (and, for custom, its base URL)
// against the package's default Registry.
func ForName(name, customURL string) (Variant, error) {
	return defaultRegistry.Resolve(name, customURL)
}
