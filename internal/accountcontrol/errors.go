package accountcontrol

import (
	"errors"
	"fmt"
)

var (
	// ErrNumberFormat is matched by every NumberFormatError.
	ErrNumberFormat = errors.New("account control value is not a number")

	// ErrUnknownDirectory is returned by NewEvaluator for an unsupported directory flavor.
	ErrUnknownDirectory = errors.New("unknown directory type")

	// ErrMalformedEvaluation is returned when an evaluation string cannot be parsed.
	ErrMalformedEvaluation = errors.New("malformed account evaluation")
)

// NumberFormatError reports a userAccountControl attribute value that is not a base 10 integer.
type NumberFormatError struct {
	Value string
	Err   error
}

// Error implements error.
func (e *NumberFormatError) Error() string {
	return fmt.Sprintf("%s: %q", ErrNumberFormat, e.Value)
}

// Unwrap returns the underlying strconv error.
func (e *NumberFormatError) Unwrap() error {
	return e.Err
}

// Is matches ErrNumberFormat.
func (e *NumberFormatError) Is(target error) bool {
	return target == ErrNumberFormat //nolint:errorlint
}
