// Package accountcontrol encodes and evaluates the Active Directory userAccountControl bit field.
//
// The Transcoder converts between the string attribute value stored in the
// directory and its integer form, and flips the ACCOUNTDISABLE bit. Evaluators
// derive the four account status predicates (non-expired, non-locked,
// credentials non-expired, enabled) from a directory entry; which evaluator is
// used depends on the directory flavor.
package accountcontrol
