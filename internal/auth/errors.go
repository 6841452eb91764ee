package auth

import "errors"

var (
	// ErrNoIDToken is returned when the OAuth2 token response doesn't contain an ID token.
	// This typically indicates a misconfigured OIDC provider or an incomplete authentication flow.
	ErrNoIDToken = errors.New("no id_token in token response")

	// ErrUserAccountDisabled is returned when the directory reports the account as disabled.
	ErrUserAccountDisabled = errors.New("user account is disabled")

	// ErrUserAccountUnusable is returned when the account is expired, locked or its credentials expired.
	ErrUserAccountUnusable = errors.New("user account is expired or locked")

	// ErrUserNotFound is returned when a user cannot be found in the directory.
	ErrUserNotFound = errors.New("user not found")

	// ErrMultipleUsersFound is returned when a query expected one user but found multiple.
	// This typically indicates a misconfigured LDAP filter or duplicate entries.
	ErrMultipleUsersFound = errors.New("multiple users found")

	// ErrEmptyPassword is returned for bind attempts without a password.
	// Many directories treat such a bind as an unauthenticated bind that always succeeds.
	ErrEmptyPassword = errors.New("empty password")
)
