package validate

import "errors"

// Sentinel errors for request-level validator-configuration rejections.
var (
	// ErrMissingAPIKey is returned when a variant requires a key and none
	// was supplied.
	ErrMissingAPIKey = errors.New("validate: api key required for this validator")
	// ErrInvalidCustomValidator is returned when a custom URL fails the
	// optional probe (neither a free-dictionary-shaped 2xx nor a 404).
	ErrInvalidCustomValidator = errors.New("validate: custom validator url failed probe")
	// ErrUnknownVariant is returned for a validator name outside the four
	// named variants plus "none".
	ErrUnknownVariant = errors.New("validate: unknown validator variant")
)
