/*
Package constraintset normalizes and validates a puzzle request into an
immutable ConstraintSet, and precomputes the derived state the Solver needs
for O(1) pruning decisions at every trie node.

FromRequest is pure: it neither logs nor performs I/O, and a successfully
constructed ConstraintSet is never mutated afterwards.
*/
package constraintset

import (
	"fmt"

	"github.com/spellbee/solver/pkg/alphabet"
)

// Raw is the natural-language-shaped input to FromRequest: a puzzle's
// available letters, its required subset, and the optional numeric/boolean
// constraints. pkg/request maps the wire JSON request onto Raw.
type Raw struct {
	Available     string
	Required      string
	Repeats       *int
	MinLength     *int
	MaxLength     *int
	CaseSensitive bool
}

// ConstraintSet is an immutable, validated bundle of puzzle constraints plus
// the masks and repeat cap the Solver consumes directly.
type ConstraintSet struct {
	alphabet      *alphabet.Alphabet
	available     []rune
	required      []rune
	repeats       *int
	minLength     int
	maxLength     *int
	caseSensitive bool

	availableMask Mask
	requiredMask  Mask
	repeatCap     *int // nil means unbounded
}

// Mask is the alphabet bitmask type used by ConstraintSet and Solver.
type Mask = alphabet.Mask

// FromRequest validates raw and returns an immutable ConstraintSet, or the
// first invariant violation encountered as one of the sentinel errors in
// errors.go (wrapped with the offending symbol where there is one).
func FromRequest(raw Raw) (*ConstraintSet, error) {
	alpha := alphabet.For(raw.CaseSensitive)

	available, err := dedupeNormalized(raw.Available, alpha)
	if err != nil {
		return nil, err
	}
	if len(available) == 0 {
		return nil, ErrEmptyLetters
	}

	required, err := dedupeNormalized(raw.Required, alpha)
	if err != nil {
		return nil, err
	}

	availableSet := make(map[rune]bool, len(available))
	for _, r := range available {
		availableSet[r] = true
	}
	for _, r := range required {
		if !availableSet[r] {
			return nil, fmt.Errorf("%w: %q", ErrRequiredNotAvailable, r)
		}
	}

	if raw.Repeats != nil && *raw.Repeats <= 0 {
		return nil, ErrNonPositiveRepeats
	}

	minLength := 1
	if raw.MinLength != nil {
		if *raw.MinLength <= 0 {
			return nil, ErrNonPositiveLength
		}
		minLength = *raw.MinLength
	}

	var maxLength *int
	if raw.MaxLength != nil {
		if *raw.MaxLength <= 0 {
			return nil, ErrNonPositiveLength
		}
		if *raw.MaxLength < minLength {
			return nil, ErrMinExceedsMax
		}
		v := *raw.MaxLength
		maxLength = &v
	}

	availableMask, err := alphabet.MaskFor(alpha, available)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedSymbol, err)
	}
	requiredMask, err := alphabet.MaskFor(alpha, required)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedSymbol, err)
	}

	var repeatCap *int
	switch {
	case raw.Repeats != nil:
		v := *raw.Repeats
		repeatCap = &v
	case maxLength != nil:
		v := *maxLength
		repeatCap = &v
	}

	var repeatsCopy *int
	if raw.Repeats != nil {
		v := *raw.Repeats
		repeatsCopy = &v
	}

	return &ConstraintSet{
		alphabet:      alpha,
		available:     available,
		required:      required,
		repeats:       repeatsCopy,
		minLength:     minLength,
		maxLength:     maxLength,
		caseSensitive: raw.CaseSensitive,
		availableMask: availableMask,
		requiredMask:  requiredMask,
		repeatCap:     repeatCap,
	}, nil
}

// dedupeNormalized normalizes each rune of s to the active case mode and
// returns the distinct symbols in first-occurrence order. It rejects the
// first symbol found outside the alphabet.
func dedupeNormalized(s string, alpha *alphabet.Alphabet) ([]rune, error) {
	seen := make(map[rune]bool)
	var out []rune
	for _, r := range s {
		norm := alpha.Normalize(r)
		if !alpha.Contains(norm) {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedSymbol, r)
		}
		if seen[norm] {
			continue
		}
		seen[norm] = true
		out = append(out, norm)
	}
	return out, nil
}

// Alphabet returns the active alphabet.
func (c *ConstraintSet) Alphabet() *alphabet.Alphabet { return c.alphabet }

// Available returns the available symbols in first-occurrence order.
func (c *ConstraintSet) Available() []rune { return c.available }

// Required returns the required symbols in first-occurrence order.
func (c *ConstraintSet) Required() []rune { return c.required }

// Repeats returns the raw repeats bound (nil if unbounded).
func (c *ConstraintSet) Repeats() *int { return c.repeats }

// MinLength returns the minimum word length (inclusive).
func (c *ConstraintSet) MinLength() int { return c.minLength }

// MaxLength returns the maximum word length (inclusive), nil if unbounded.
func (c *ConstraintSet) MaxLength() *int { return c.maxLength }

// CaseSensitive reports whether this constraint set was built case-sensitive.
func (c *ConstraintSet) CaseSensitive() bool { return c.caseSensitive }

// AvailableMask is the bitmask of available symbols.
func (c *ConstraintSet) AvailableMask() Mask { return c.availableMask }

// RequiredMask is the bitmask of required symbols.
func (c *ConstraintSet) RequiredMask() Mask { return c.requiredMask }

// RepeatCap is the effective per-symbol repeat cap: repeats if present,
// otherwise max_length (the trivial bound), otherwise nil (unbounded).
func (c *ConstraintSet) RepeatCap() *int { return c.repeatCap }
