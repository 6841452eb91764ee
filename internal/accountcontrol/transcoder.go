package accountcontrol

import (
	"strconv"
)

const (
	// AttributeName is the directory attribute holding the account control value.
	AttributeName = "userAccountControl"

	// DefaultValue is used when no account control value is present:
	// NORMAL_ACCOUNT | DONT_EXPIRE_PASSWORD, which is an enabled account.
	DefaultValue = NormalAccount | DontExpirePassword // 66048
)

// Transcoder converts userAccountControl values between their string and integer forms.
type Transcoder struct {
	defaultValue int
}

// NewTranscoder returns a Transcoder using defaultValue for absent values.
func NewTranscoder(defaultValue int) *Transcoder {
	return &Transcoder{defaultValue: defaultValue}
}

// NewDefaultTranscoder returns a Transcoder whose absent values decode to DefaultValue.
func NewDefaultTranscoder() *Transcoder {
	return NewTranscoder(DefaultValue)
}

// Default returns the value used for absent attributes.
func (t *Transcoder) Default() int {
	return t.defaultValue
}

// DecodeStringValue parses raw as a signed 32-bit base 10 integer.
// A nil raw decodes to the default value.
func (t *Transcoder) DecodeStringValue(raw *string) (int, error) {
	if raw == nil {
		return t.defaultValue, nil
	}

	v, err := strconv.ParseInt(*raw, 10, 32)
	if err != nil {
		return 0, &NumberFormatError{Value: *raw, Err: err}
	}

	return int(v), nil
}

// EncodeStringValue formats value in base 10. A nil value encodes the default value.
func (t *Transcoder) EncodeStringValue(value *int) string {
	if value == nil {
		return strconv.Itoa(t.defaultValue)
	}

	return strconv.Itoa(*value)
}

// UserAccountControlValue returns current with the ACCOUNTDISABLE bit cleared
// when enabled is true and set otherwise. All other bits are kept.
// A nil current starts from the default value.
func (t *Transcoder) UserAccountControlValue(enabled bool, current *int) int {
	value := t.defaultValue
	if current != nil {
		value = *current
	}

	if enabled {
		return value &^ AccountDisabled
	}

	return value | AccountDisabled
}

// IsUserAccountEnabled reports whether the ACCOUNTDISABLE bit is clear.
// A nil value returns fallback.
func (t *Transcoder) IsUserAccountEnabled(value *int, fallback bool) bool {
	if value == nil {
		return fallback
	}

	return *value&AccountDisabled == 0
}
