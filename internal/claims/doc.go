// Package claims converts verified token claims into a principal and a set of
// normalized authorities.
//
// Each principal field is located with a JSONPath expression evaluated against
// the claims map. Only the subject is required; unresolvable optional paths
// leave the field empty. The authorities claim is either an array (one
// authority per element) or a single string split on the scope separator.
// The raw authorities are passed to an AuthoritiesMapper, normally an
// *authority.Normalizer.
package claims
