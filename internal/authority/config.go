package authority

import (
	"fmt"
	"strings"
)

// DefaultRolePrefix is prepended to normalized authorities when Config.RolePrefix is nil.
const DefaultRolePrefix = "ROLE_"

// CaseTransformation selects how the case of a raw authority is changed before replacements run.
type CaseTransformation string

const (
	// None keeps the raw value as is.
	None CaseTransformation = "NONE"
	// ToUpperCase upper-cases the raw value.
	ToUpperCase CaseTransformation = "TO_UPPER_CASE"
	// ToLowerCase lower-cases the raw value.
	ToLowerCase CaseTransformation = "TO_LOWER_CASE"
)

// ParseCaseTransformation accepts the configured spelling of a case transformation.
// Matching is case-insensitive and an empty string means None.
func ParseCaseTransformation(s string) (CaseTransformation, error) {
	switch CaseTransformation(strings.ToUpper(strings.TrimSpace(s))) {
	case "", None:
		return None, nil
	case ToUpperCase:
		return ToUpperCase, nil
	case ToLowerCase:
		return ToLowerCase, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCaseTransformation, s)
	}
}

func (c CaseTransformation) apply(s string) string {
	switch c {
	case ToUpperCase:
		return strings.ToUpper(s)
	case ToLowerCase:
		return strings.ToLower(s)
	default:
		return s
	}
}

// Replacement is a single regular expression rewrite.
// Replacement may reference capture groups as $1 or ${name}.
type Replacement struct {
	Pattern     string `mapstructure:"pattern" json:"pattern" yaml:"pattern" validate:"required"`
	Replacement string `mapstructure:"replacement" json:"replacement" yaml:"replacement"`
}

// Config holds the normalization rules.
type Config struct {
	// DefaultRoles are added to every result as is. Blank entries are ignored.
	DefaultRoles []string `mapstructure:"defaultRoles" json:"defaultRoles" yaml:"defaultRoles"`
	// RoleMapping maps a raw authority (case-insensitive) to a literal replacement.
	RoleMapping map[string]string `mapstructure:"roleMapping" json:"roleMapping" yaml:"roleMapping"`
	// CaseTransformation is applied to authorities that are not explicitly mapped.
	CaseTransformation CaseTransformation `mapstructure:"caseTransformation" json:"caseTransformation" yaml:"caseTransformation"` //nolint:lll
	// StringReplacements run in order after the case transformation.
	StringReplacements []Replacement `mapstructure:"stringReplacements" json:"stringReplacements" yaml:"stringReplacements" validate:"dive"` //nolint:lll
	// RolePrefix is prepended unless already present. Nil means DefaultRolePrefix, "" disables prefixing.
	RolePrefix *string `mapstructure:"rolePrefix" json:"rolePrefix,omitempty" yaml:"rolePrefix,omitempty"`
}

// Prefix returns the effective role prefix.
func (c Config) Prefix() string {
	if c.RolePrefix == nil {
		return DefaultRolePrefix
	}

	return *c.RolePrefix
}
