package claims

import (
	"github.com/GoPowerDNS-Admin/authkit/internal/authority"
)

// Default claim paths.
const (
	DefaultSubjectPath     = "$.sub"
	DefaultFirstNamePath   = "$.given_name"
	DefaultLastNamePath    = "$.family_name"
	DefaultEmailPath       = "$.email"
	DefaultAuthoritiesPath = "$.scope"
	DefaultScopeSeparator  = " "
)

// Paths holds the JSONPath expression locating each principal field.
type Paths struct {
	Subject     string `mapstructure:"subject" json:"subject" yaml:"subject"`
	FirstName   string `mapstructure:"firstName" json:"firstName" yaml:"firstName"`
	LastName    string `mapstructure:"lastName" json:"lastName" yaml:"lastName"`
	Email       string `mapstructure:"email" json:"email" yaml:"email"`
	Authorities string `mapstructure:"authorities" json:"authorities" yaml:"authorities"`
}

func (p Paths) withDefaults() Paths {
	if p.Subject == "" {
		p.Subject = DefaultSubjectPath
	}

	if p.FirstName == "" {
		p.FirstName = DefaultFirstNamePath
	}

	if p.LastName == "" {
		p.LastName = DefaultLastNamePath
	}

	if p.Email == "" {
		p.Email = DefaultEmailPath
	}

	if p.Authorities == "" {
		p.Authorities = DefaultAuthoritiesPath
	}

	return p
}

// Config configures a Converter.
type Config struct {
	Paths Paths `mapstructure:"paths" json:"paths" yaml:"paths"`
	// RolesAreAnArray treats the authorities claim as a list even when it holds a single string.
	RolesAreAnArray bool `mapstructure:"rolesAreAnArray" json:"rolesAreAnArray" yaml:"rolesAreAnArray"`
	// ScopeSeparator splits a string authorities claim. Defaults to a single space.
	ScopeSeparator string `mapstructure:"scopeSeparator" json:"scopeSeparator" yaml:"scopeSeparator"`
}

// AuthoritiesMapper turns raw authority strings into normalized authorities.
type AuthoritiesMapper interface {
	MapAuthorities(raw []string) authority.Set
}
