package claims

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/GoPowerDNS-Admin/authkit/internal/authority"
)

// Principal is the identity extracted from a claims map.
// Optional fields are empty when their claim path did not resolve.
type Principal struct {
	Subject   string `json:"subject"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
}

// Authentication is the result of a claims conversion.
type Authentication struct {
	Principal   Principal     `json:"principal"`
	Authorities authority.Set `json:"-"`
	// Token is set by ConvertToken.
	Token *jwt.Token `json:"-"`
}

// Name returns the subject.
func (a *Authentication) Name() string {
	return a.Principal.Subject
}

// HasAuthority reports whether the authentication carries the named authority.
func (a *Authentication) HasAuthority(name string) bool {
	return a.Authorities.Contains(name)
}
