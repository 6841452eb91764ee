package accountcontrol

import (
	"fmt"
	"strings"
)

// Directory flavors accepted by NewEvaluator.
const (
	DirectoryNone            = "none"
	DirectoryActiveDirectory = "active_directory"
)

// Entry is a directory entry exposing its attribute values.
// *ldap.Entry from github.com/go-ldap/ldap/v3 satisfies it.
type Entry interface {
	GetAttributeValues(attribute string) []string
}

// Evaluator derives account status predicates from a directory entry.
type Evaluator interface {
	IsAccountNonExpired(entry Entry) (bool, error)
	IsAccountNonLocked(entry Entry) (bool, error)
	IsCredentialsNonExpired(entry Entry) (bool, error)
	IsEnabled(entry Entry) (bool, error)
}

// NewEvaluator returns the evaluator for the given directory flavor.
func NewEvaluator(directory string, t *Transcoder) (Evaluator, error) {
	switch strings.ToLower(strings.TrimSpace(directory)) {
	case "", DirectoryNone:
		return NoAccountControlEvaluator{}, nil
	case DirectoryActiveDirectory, "activedirectory", "ad":
		if t == nil {
			t = NewDefaultTranscoder()
		}

		return &ActiveDirectoryAccountControlEvaluator{Transcoder: t}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDirectory, directory)
	}
}

// NoAccountControlEvaluator is used for directories without account control semantics.
// Every predicate is true.
type NoAccountControlEvaluator struct{}

// IsAccountNonExpired implements Evaluator.
func (NoAccountControlEvaluator) IsAccountNonExpired(Entry) (bool, error) { return true, nil }

// IsAccountNonLocked implements Evaluator.
func (NoAccountControlEvaluator) IsAccountNonLocked(Entry) (bool, error) { return true, nil }

// IsCredentialsNonExpired implements Evaluator.
func (NoAccountControlEvaluator) IsCredentialsNonExpired(Entry) (bool, error) { return true, nil }

// IsEnabled implements Evaluator.
func (NoAccountControlEvaluator) IsEnabled(Entry) (bool, error) { return true, nil }

// ActiveDirectoryAccountControlEvaluator reads the userAccountControl attribute.
// Only IsEnabled consults the entry; expiry and lockout are reported as true.
// A nil Transcoder behaves like NewDefaultTranscoder.
type ActiveDirectoryAccountControlEvaluator struct {
	Transcoder *Transcoder
}

// IsAccountNonExpired implements Evaluator.
func (*ActiveDirectoryAccountControlEvaluator) IsAccountNonExpired(Entry) (bool, error) {
	return true, nil
}

// IsAccountNonLocked implements Evaluator.
func (*ActiveDirectoryAccountControlEvaluator) IsAccountNonLocked(Entry) (bool, error) {
	return true, nil
}

// IsCredentialsNonExpired implements Evaluator.
func (*ActiveDirectoryAccountControlEvaluator) IsCredentialsNonExpired(Entry) (bool, error) {
	return true, nil
}

// IsEnabled decodes userAccountControl and checks the ACCOUNTDISABLE bit.
// A missing attribute decodes to the transcoder default.
func (e *ActiveDirectoryAccountControlEvaluator) IsEnabled(entry Entry) (bool, error) {
	var raw *string

	if entry != nil {
		if values := entry.GetAttributeValues(AttributeName); len(values) > 0 {
			raw = &values[0]
		}
	}

	t := e.transcoder()

	value, err := t.DecodeStringValue(raw)
	if err != nil {
		return false, err
	}

	return t.IsUserAccountEnabled(&value, false), nil
}

func (e *ActiveDirectoryAccountControlEvaluator) transcoder() *Transcoder {
	if e.Transcoder == nil {
		return NewDefaultTranscoder()
	}

	return e.Transcoder
}
