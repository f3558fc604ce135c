package constraintset

import "errors"

// Sentinel errors for constraint-validation rejections. ErrRequiredNotAvailable
// and ErrUnsupportedSymbol are returned wrapped with fmt.Errorf so the
// offending symbol travels with them; the others are returned as they are.
// Callers compare with errors.Is.
var (
	// ErrEmptyLetters is returned when the available set is empty after
	// normalization.
	ErrEmptyLetters = errors.New("constraintset: available letters must be non-empty")
	// ErrRequiredNotAvailable is returned when a required symbol is not a
	// member of the available set.
	ErrRequiredNotAvailable = errors.New("constraintset: required letters must be a subset of available letters")
	// ErrUnsupportedSymbol is returned when an input symbol falls outside
	// the active alphabet.
	ErrUnsupportedSymbol = errors.New("constraintset: symbol outside the active alphabet")
	// ErrNonPositiveRepeats is returned when repeats is present but <= 0.
	// repeats == 0 is deliberately invalid, not "no repetition".
	ErrNonPositiveRepeats = errors.New("constraintset: repeats must be a positive integer")
	// ErrNonPositiveLength is returned when min_length or max_length is
	// present but <= 0.
	ErrNonPositiveLength = errors.New("constraintset: length bound must be a positive integer")
	// ErrMinExceedsMax is returned when both length bounds are present and
	// min_length > max_length.
	ErrMinExceedsMax = errors.New("constraintset: min_length exceeds max_length")
)
