package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/GoPowerDNS-Admin/authkit/internal/claims"
)

// ErrOIDCDisabled is returned when OIDC is disabled via configuration.
var ErrOIDCDisabled = errors.New("oidc authentication is disabled")

// OIDCConfig holds OpenID Connect (OIDC) configuration for authentication.
type OIDCConfig struct {
	// Enabled indicates if OIDC authentication is enabled.
	Enabled bool `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	// ProviderURL is the OIDC provider's issuer URL (e.g., "https://accounts.google.com").
	ProviderURL string `mapstructure:"providerURL" json:"providerURL" yaml:"providerURL" validate:"required_if=Enabled true"`
	// ClientID is the OAuth2 client identifier.
	ClientID string `mapstructure:"clientID" json:"clientID" yaml:"clientID" validate:"required_if=Enabled true"`
	// ClientSecret is the OAuth2 client secret.
	ClientSecret string `mapstructure:"clientSecret" json:"-" yaml:"-"`
	// RedirectURL is the OAuth2 callback URL where the provider redirects after authentication.
	RedirectURL string `mapstructure:"redirectURL" json:"redirectURL" yaml:"redirectURL"`
	// Scopes are the OAuth2 scopes to request (default: ["openid", "profile", "email"]).
	Scopes []string `mapstructure:"scopes" json:"scopes" yaml:"scopes"`
}

// IDTokenVerifier verifies raw ID tokens. *oidc.IDTokenVerifier satisfies it.
type IDTokenVerifier interface {
	Verify(ctx context.Context, rawIDToken string) (*oidc.IDToken, error)
}

// OIDCProvider handles OIDC authentication.
type OIDCProvider struct {
	config    *OIDCConfig
	verifier  IDTokenVerifier
	oauth2    oauth2.Config
	converter *claims.Converter
}

// NewOIDCProvider discovers the provider configuration and creates a new OIDC provider.
func NewOIDCProvider(ctx context.Context, config *OIDCConfig, converter *claims.Converter) (*OIDCProvider, error) {
	if !config.Enabled {
		return nil, ErrOIDCDisabled
	}

	provider, err := oidc.NewProvider(ctx, config.ProviderURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}

	verifier := provider.Verifier(&oidc.Config{
		ClientID: config.ClientID,
	})

	return newOIDCProvider(config, provider.Endpoint(), verifier, converter), nil
}

func newOIDCProvider(
	config *OIDCConfig,
	endpoint oauth2.Endpoint,
	verifier IDTokenVerifier,
	converter *claims.Converter,
) *OIDCProvider {
	scopes := config.Scopes
	if len(scopes) == 0 {
		scopes = []string{oidc.ScopeOpenID, "profile", "email"}
	}

	return &OIDCProvider{
		config:   config,
		verifier: verifier,
		oauth2: oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			RedirectURL:  config.RedirectURL,
			Endpoint:     endpoint,
			Scopes:       scopes,
		},
		converter: converter,
	}
}

// GenerateStateToken generates a random state token for CSRF protection.
func GenerateStateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.URLEncoding.EncodeToString(b), nil
}

// AuthCodeURL returns the authorization URL carrying the state token.
func (p *OIDCProvider) AuthCodeURL(state string) string {
	return p.oauth2.AuthCodeURL(state)
}

// HandleCallback exchanges the authorization code and converts the ID token claims.
func (p *OIDCProvider) HandleCallback(ctx context.Context, code string) (*claims.Authentication, error) {
	oauth2Token, err := p.oauth2.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange token: %w", err)
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		return nil, ErrNoIDToken
	}

	return p.VerifyToken(ctx, rawIDToken)
}

// VerifyToken verifies a raw ID token and converts its claims.
func (p *OIDCProvider) VerifyToken(ctx context.Context, rawIDToken string) (*claims.Authentication, error) {
	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify ID token: %w", err)
	}

	var allClaims map[string]any
	if err = idToken.Claims(&allClaims); err != nil {
		return nil, fmt.Errorf("failed to parse claims: %w", err)
	}

	return p.converter.Convert(ctx, allClaims)
}
