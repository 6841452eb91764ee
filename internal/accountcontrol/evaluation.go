package accountcontrol

import (
	"fmt"
	"strconv"
	"strings"
)

// Evaluation is the account status derived from a directory entry.
type Evaluation struct {
	AccountNonExpired     bool `json:"accountNonExpired"`
	AccountNonLocked      bool `json:"accountNonLocked"`
	CredentialsNonExpired bool `json:"credentialsNonExpired"`
	Enabled               bool `json:"enabled"`
}

// Evaluate runs all four predicates of e against entry.
func Evaluate(e Evaluator, entry Entry) (Evaluation, error) {
	var (
		ev  Evaluation
		err error
	)

	if ev.AccountNonExpired, err = e.IsAccountNonExpired(entry); err != nil {
		return Evaluation{}, fmt.Errorf("account expiry: %w", err)
	}

	if ev.AccountNonLocked, err = e.IsAccountNonLocked(entry); err != nil {
		return Evaluation{}, fmt.Errorf("account lock: %w", err)
	}

	if ev.CredentialsNonExpired, err = e.IsCredentialsNonExpired(entry); err != nil {
		return Evaluation{}, fmt.Errorf("credentials expiry: %w", err)
	}

	if ev.Enabled, err = e.IsEnabled(entry); err != nil {
		return Evaluation{}, fmt.Errorf("account enabled: %w", err)
	}

	return ev, nil
}

// Usable reports whether every predicate holds.
func (ev Evaluation) Usable() bool {
	return ev.AccountNonExpired && ev.AccountNonLocked && ev.CredentialsNonExpired && ev.Enabled
}

// Format renders ev as "<nonExpired>:<nonLocked>:<credentialsNonExpired>:<enabled>-<identifier>".
func (ev Evaluation) Format(identifier string) string {
	return fmt.Sprintf("%t:%t:%t:%t-%s",
		ev.AccountNonExpired,
		ev.AccountNonLocked,
		ev.CredentialsNonExpired,
		ev.Enabled,
		identifier,
	)
}

// ParseEvaluation reverses Format and returns the evaluation and the identifier.
// The identifier may itself contain '-' or ':'.
func ParseEvaluation(s string) (Evaluation, string, error) {
	flags, identifier, ok := strings.Cut(s, "-")
	if !ok {
		return Evaluation{}, "", fmt.Errorf("%w: missing identifier", ErrMalformedEvaluation)
	}

	parts := strings.Split(flags, ":")
	if len(parts) != 4 { //nolint:mnd
		return Evaluation{}, "", fmt.Errorf("%w: want 4 flags, got %d", ErrMalformedEvaluation, len(parts))
	}

	values := make([]bool, len(parts))

	for i, p := range parts {
		b, err := strconv.ParseBool(p)
		if err != nil {
			return Evaluation{}, "", fmt.Errorf("%w: %w", ErrMalformedEvaluation, err)
		}

		values[i] = b
	}

	return Evaluation{
		AccountNonExpired:     values[0],
		AccountNonLocked:      values[1],
		CredentialsNonExpired: values[2],
		Enabled:               values[3],
	}, identifier, nil
}
