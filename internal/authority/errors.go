package authority

import "errors"

var (
	// ErrBlankAuthority is returned when Normalize is called with an empty or whitespace-only value.
	ErrBlankAuthority = errors.New("authority must not be blank")

	// ErrInvalidPattern is returned when a string replacement pattern does not compile.
	ErrInvalidPattern = errors.New("invalid string replacement pattern")

	// ErrUnknownCaseTransformation is returned for a case transformation other than NONE, TO_UPPER_CASE or TO_LOWER_CASE.
	ErrUnknownCaseTransformation = errors.New("unknown case transformation")
)
