package claims

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DecoderConfig configures token signature and registered claim verification.
type DecoderConfig struct {
	// SigningMethod is one of HS256, HS384, HS512, RS256, RS384 or RS512.
	SigningMethod string `mapstructure:"signingMethod" json:"signingMethod" yaml:"signingMethod" validate:"omitempty,oneof=HS256 HS384 HS512 RS256 RS384 RS512"` //nolint:lll
	// Secret is the shared key for HS* methods.
	Secret string `mapstructure:"secret" json:"-" yaml:"-"`
	// PublicKeyPEM is the PEM encoded public key for RS* methods.
	PublicKeyPEM string        `mapstructure:"publicKeyPEM" json:"publicKeyPEM,omitempty" yaml:"publicKeyPEM,omitempty"`
	Issuer       string        `mapstructure:"issuer" json:"issuer,omitempty" yaml:"issuer,omitempty"`
	Audience     string        `mapstructure:"audience" json:"audience,omitempty" yaml:"audience,omitempty"`
	Leeway       time.Duration `mapstructure:"leeway" json:"leeway,omitempty" yaml:"leeway,omitempty"`
}

// Decoder parses and verifies signed tokens.
type Decoder struct {
	parser *jwt.Parser
	key    any
}

// NewDecoder builds a Decoder for cfg.
func NewDecoder(cfg DecoderConfig) (*Decoder, error) {
	method := strings.ToUpper(cfg.SigningMethod)
	if method == "" {
		method = jwt.SigningMethodHS256.Alg()
	}

	var key any

	switch {
	case strings.HasPrefix(method, "HS") && jwt.GetSigningMethod(method) != nil:
		if cfg.Secret == "" {
			return nil, fmt.Errorf("%w: %s needs a secret", ErrMissingKey, method)
		}

		key = []byte(cfg.Secret)
	case strings.HasPrefix(method, "RS") && jwt.GetSigningMethod(method) != nil:
		if cfg.PublicKeyPEM == "" {
			return nil, fmt.Errorf("%w: %s needs a public key", ErrMissingKey, method)
		}

		pub, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.PublicKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("failed to parse public key: %w", err)
		}

		key = pub
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSigningMethod, cfg.SigningMethod)
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{method})}

	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	if cfg.Leeway > 0 {
		opts = append(opts, jwt.WithLeeway(cfg.Leeway))
	}

	return &Decoder{
		parser: jwt.NewParser(opts...),
		key:    key,
	}, nil
}

// Decode verifies raw and returns the parsed token with jwt.MapClaims.
func (d *Decoder) Decode(raw string) (*jwt.Token, error) {
	token, err := d.parser.Parse(strings.TrimSpace(raw), func(*jwt.Token) (any, error) {
		return d.key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return token, nil
}
