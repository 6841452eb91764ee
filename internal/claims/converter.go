package claims

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/PaesslerAG/gval"
	"github.com/PaesslerAG/jsonpath"
	"github.com/golang-jwt/jwt/v5"
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog/log"
)

type compiledPath struct {
	expr string
	eval gval.Evaluable
}

// Converter maps a claims map to an Authentication. It is safe for concurrent use.
type Converter struct {
	subject     compiledPath
	firstName   compiledPath
	lastName    compiledPath
	email       compiledPath
	authorities compiledPath

	rolesAreAnArray bool
	separator       string
	mapper          AuthoritiesMapper
}

// NewConverter compiles the claim paths of cfg.
func NewConverter(cfg Config, mapper AuthoritiesMapper) (*Converter, error) {
	paths := cfg.Paths.withDefaults()

	c := &Converter{
		rolesAreAnArray: cfg.RolesAreAnArray,
		separator:       cfg.ScopeSeparator,
		mapper:          mapper,
	}

	if c.separator == "" {
		c.separator = DefaultScopeSeparator
	}

	targets := []struct {
		dst  *compiledPath
		expr string
	}{
		{&c.subject, paths.Subject},
		{&c.firstName, paths.FirstName},
		{&c.lastName, paths.LastName},
		{&c.email, paths.Email},
		{&c.authorities, paths.Authorities},
	}

	for _, target := range targets {
		eval, err := jsonpath.New(target.expr)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidPath, target.expr, err)
		}

		*target.dst = compiledPath{expr: target.expr, eval: eval}
	}

	return c, nil
}

// Convert extracts the principal and authorities from claims.
func (c *Converter) Convert(ctx context.Context, claims map[string]any) (*Authentication, error) {
	if claims == nil {
		return nil, fmt.Errorf("%w: no claims", ErrClaimResolution)
	}

	subject, ok := c.resolveString(ctx, c.subject, claims)
	if !ok || subject == "" {
		return nil, fmt.Errorf("%w: subject (%s)", ErrClaimResolution, c.subject.expr)
	}

	principal := Principal{Subject: subject}
	principal.FirstName, _ = c.resolveString(ctx, c.firstName, claims)
	principal.LastName, _ = c.resolveString(ctx, c.lastName, claims)
	principal.Email, _ = c.resolveString(ctx, c.email, claims)

	raw := c.rawAuthorities(ctx, claims)

	auth := &Authentication{Principal: principal}
	if c.mapper != nil {
		auth.Authorities = c.mapper.MapAuthorities(raw)
	}

	log.Debug().
		Str("subject", subject).
		Strs("raw_authorities", raw).
		Int("authorities", auth.Authorities.Len()).
		Msg("claims converted")

	return auth, nil
}

// ConvertToken converts a parsed token carrying jwt.MapClaims.
func (c *Converter) ConvertToken(ctx context.Context, token *jwt.Token) (*Authentication, error) {
	if token == nil {
		return nil, ErrUnsupportedClaims
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedClaims, token.Claims)
	}

	auth, err := c.Convert(ctx, map[string]any(mapClaims))
	if err != nil {
		return nil, err
	}

	auth.Token = token

	return auth, nil
}

// RawAuthorities returns the unnormalized authority strings found in claims.
func (c *Converter) RawAuthorities(ctx context.Context, claims map[string]any) []string {
	return c.rawAuthorities(ctx, claims)
}

func (c *Converter) rawAuthorities(ctx context.Context, claims map[string]any) []string {
	value, ok := c.resolve(ctx, c.authorities, claims)
	if !ok {
		return nil
	}

	if s, isString := value.(string); isString && !c.rolesAreAnArray {
		return strings.Split(s, c.separator)
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		if s, isScalar := scalarString(value); isScalar {
			return []string{s}
		}

		log.Debug().Str("path", c.authorities.expr).Msg("authorities claim is not a scalar or list")

		return nil
	}

	out := make([]string, 0, rv.Len())

	for i := range rv.Len() {
		element := rv.Index(i).Interface()

		s, isScalar := scalarString(element)
		if !isScalar {
			log.Debug().Str("path", c.authorities.expr).Int("index", i).Msg("skipping non-scalar authority")

			continue
		}

		out = append(out, s)
	}

	return out
}

// resolveString evaluates p and converts a string or number result to a string.
func (c *Converter) resolveString(ctx context.Context, p compiledPath, claims map[string]any) (string, bool) {
	value, ok := c.resolve(ctx, p, claims)
	if !ok {
		return "", false
	}

	s, isScalar := scalarString(value)
	if !isScalar {
		log.Debug().Str("path", p.expr).Msgf("claim of type %T is not a string or number", value)

		return "", false
	}

	return s, true
}

// scalarString returns strings as is and weakly decodes numbers.
// Booleans, objects and lists are rejected.
func scalarString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case json.Number, float32, float64,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		var s string
		if err := mapstructure.WeakDecode(v, &s); err != nil {
			return "", false
		}

		return s, true
	default:
		return "", false
	}
}

// resolve evaluates p. Evaluation errors and nil results count as absent.
func (c *Converter) resolve(ctx context.Context, p compiledPath, claims map[string]any) (any, bool) {
	value, err := p.eval(ctx, claims)
	if err != nil {
		log.Debug().Err(err).Str("path", p.expr).Msg("claim not resolved")

		return nil, false
	}

	if value == nil {
		return nil, false
	}

	return value, true
}
