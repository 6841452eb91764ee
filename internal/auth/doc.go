// Package auth authenticates users against an LDAP directory or an OpenID
// Connect provider and produces normalized authorities for them.
//
// # LDAP
//
// LDAPProvider looks up the user entry, evaluates its account control
// attributes with an accountcontrol.Evaluator, binds as the user and collects
// the names of the groups the user is a member of. The group names are passed
// through an authority.Normalizer. Disabled accounts are rejected before the
// user bind. SetAccountEnabled writes the userAccountControl attribute back.
//
// # OIDC
//
// OIDCProvider runs the authorization code flow with an external identity
// provider, verifies the ID token and converts its claims with a
// claims.Converter.
//
// Example usage:
//
//	provider, err := auth.NewLDAPProvider(ldapConfig, normalizer, evaluator, transcoder)
//	user, err := provider.Authenticate("anna", password)
//	fmt.Println(user.Authorities, user.Password())
package auth
