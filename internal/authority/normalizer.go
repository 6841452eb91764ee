package authority

import (
	"fmt"
	"regexp"
	"strings"
)

type compiledReplacement struct {
	re   *regexp.Regexp
	with string
}

// Normalizer maps raw authorities to canonical ones. It is immutable after New.
type Normalizer struct {
	defaults     []Authority
	mapping      map[string]Authority
	transform    CaseTransformation
	replacements []compiledReplacement
	prefix       string
}

// New compiles cfg into a Normalizer.
func New(cfg Config) (*Normalizer, error) {
	transform, err := ParseCaseTransformation(string(cfg.CaseTransformation))
	if err != nil {
		return nil, err
	}

	n := &Normalizer{
		defaults:     make([]Authority, 0, len(cfg.DefaultRoles)),
		mapping:      make(map[string]Authority, len(cfg.RoleMapping)),
		transform:    transform,
		replacements: make([]compiledReplacement, 0, len(cfg.StringReplacements)),
		prefix:       cfg.Prefix(),
	}

	for _, role := range cfg.DefaultRoles {
		if isBlank(role) {
			continue
		}

		n.defaults = append(n.defaults, Authority(role))
	}

	for raw, mapped := range cfg.RoleMapping {
		if isBlank(mapped) {
			return nil, fmt.Errorf("role mapping for %q: %w", raw, ErrBlankAuthority)
		}

		n.mapping[strings.ToLower(raw)] = Authority(mapped)
	}

	for _, r := range cfg.StringReplacements {
		re, errCompile := regexp.Compile(r.Pattern)
		if errCompile != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidPattern, r.Pattern, errCompile)
		}

		n.replacements = append(n.replacements, compiledReplacement{re: re, with: r.Replacement})
	}

	return n, nil
}

// MapAuthorities returns the default roles together with the normalized form of
// every raw authority that normalizes to a non-blank value.
func (n *Normalizer) MapAuthorities(raw []string) Set {
	set := make(Set, len(n.defaults)+len(raw))

	for _, a := range n.defaults {
		set.Add(a)
	}

	for _, r := range raw {
		if isBlank(r) {
			continue
		}

		a, err := n.Normalize(r)
		if err != nil {
			continue
		}

		set.Add(a)
	}

	return set
}

// Normalize applies the role mapping or, when no mapping matches, the case
// transformation, the string replacements and the role prefix.
func (n *Normalizer) Normalize(raw string) (Authority, error) {
	if isBlank(raw) {
		return "", ErrBlankAuthority
	}

	if mapped, ok := n.mapping[strings.ToLower(raw)]; ok {
		return mapped, nil
	}

	value := n.transform.apply(raw)

	for _, r := range n.replacements {
		value = r.re.ReplaceAllString(value, r.with)
	}

	if n.prefix != "" && !strings.HasPrefix(value, n.prefix) {
		value = n.prefix + value
	}

	if isBlank(value) {
		return "", fmt.Errorf("%q: %w", raw, ErrBlankAuthority)
	}

	return Authority(value), nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
