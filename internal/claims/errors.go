package claims

import "errors"

var (
	// ErrClaimResolution is returned when the subject claim is missing, empty or not a scalar.
	ErrClaimResolution = errors.New("required claim could not be resolved")

	// ErrInvalidPath is returned when a configured JSONPath expression does not compile.
	ErrInvalidPath = errors.New("invalid claim path")

	// ErrUnsupportedClaims is returned by ConvertToken when the token does not carry map claims.
	ErrUnsupportedClaims = errors.New("token claims are not a claims map")

	// ErrInvalidToken is returned when a raw token fails parsing or verification.
	ErrInvalidToken = errors.New("invalid token")

	// ErrUnsupportedSigningMethod is returned for signing methods other than HS* and RS*.
	ErrUnsupportedSigningMethod = errors.New("unsupported signing method")

	// ErrMissingKey is returned when the decoder has no secret or public key for its signing method.
	ErrMissingKey = errors.New("missing verification key")
)
