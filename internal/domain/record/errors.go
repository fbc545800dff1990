package record

import (
	"errors"
	"fmt"
)

// Sentinel kinds for record validation failures. Callers match them with
// errors.Is through the ValidationError wrapper.
var (
	ErrWrongArity  = errors.New("wrong number of values")
	ErrOutOfBounds = errors.New("value out of bounds")
)

// ValidationError reports why a record was rejected. It wraps one of the
// sentinel kinds above (or the store's duplicate-key sentinel) so callers
// can branch on the kind while still seeing the offending key.
type ValidationError struct {
	Key  string
	Kind error
	Msg  string
}

func (e *ValidationError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("record %q: %s: %s", e.Key, e.Kind, e.Msg)
	}
	return fmt.Sprintf("record %q: %s", e.Key, e.Kind)
}

func (e *ValidationError) Unwrap() error { return e.Kind }

// NewValidationError builds a ValidationError for key wrapping kind.
func NewValidationError(key string, kind error, msg string) *ValidationError {
	return &ValidationError{Key: key, Kind: kind, Msg: msg}
}
