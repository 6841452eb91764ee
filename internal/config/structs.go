package config

import (
	"github.com/GoPowerDNS-Admin/authkit/internal/auth"
	"github.com/GoPowerDNS-Admin/authkit/internal/authority"
	"github.com/GoPowerDNS-Admin/authkit/internal/claims"
	"github.com/GoPowerDNS-Admin/authkit/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode bool   `mapstructure:"devMode" json:"devMode" yaml:"devMode"`
	Title   string `mapstructure:"title" json:"title" yaml:"title"`

	Log            logger.Log       `mapstructure:"log" json:"log" yaml:"log"`
	Authorities    authority.Config `mapstructure:"authorities" json:"authorities" yaml:"authorities"`
	JWT            JWT              `mapstructure:"jwt" json:"jwt" yaml:"jwt"`
	AccountControl AccountControl   `mapstructure:"accountControl" json:"accountControl" yaml:"accountControl"`
	LDAP           auth.LDAPConfig  `mapstructure:"ldap" json:"ldap" yaml:"ldap"`
	OIDC           auth.OIDCConfig  `mapstructure:"oidc" json:"oidc" yaml:"oidc"`
}

// JWT holds the claim extraction and token verification settings.
type JWT struct {
	Claims  claims.Config        `mapstructure:"claims" json:"claims" yaml:"claims"`
	Decoder claims.DecoderConfig `mapstructure:"decoder" json:"decoder" yaml:"decoder"`
}

// AccountControl selects the directory flavor used to evaluate account status.
type AccountControl struct {
	// Directory is "none" or "active_directory".
	Directory string `mapstructure:"directory" json:"directory" yaml:"directory" validate:"omitempty,oneof=none active_directory"` //nolint:lll
	// DefaultValue is the userAccountControl value assumed when the attribute is absent.
	// Unset means 66048.
	DefaultValue *int `mapstructure:"defaultValue" json:"defaultValue,omitempty" yaml:"defaultValue,omitempty" validate:"omitempty,min=0"` //nolint:lll
}
