// Package authority normalizes raw role and group names into canonical authorities.
//
// A Normalizer is built once from a Config and can then be shared between
// goroutines. Every call to MapAuthorities returns the configured default roles
// plus the normalized form of each raw value:
//
//   - an explicit role mapping (case-insensitive key) replaces the value verbatim
//   - otherwise the case transformation runs, then every string replacement in order
//   - finally the role prefix is prepended unless the value already carries it
//
// Example usage:
//
//	n, err := authority.New(authority.Config{
//	    DefaultRoles:       []string{"ROLE_LDAP"},
//	    CaseTransformation: authority.ToUpperCase,
//	    StringReplacements: []authority.Replacement{{Pattern: "[-]", Replacement: "_"}},
//	})
//	set := n.MapAuthorities([]string{"junit-developers"}) // ROLE_JUNIT_DEVELOPERS, ROLE_LDAP
package authority
