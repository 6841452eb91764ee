package accountcontrol_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoPowerDNS-Admin/authkit/internal/accountcontrol"
)

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func TestDefaultValue(t *testing.T) {
	assert.Equal(t, 66048, accountcontrol.DefaultValue)
	assert.Equal(t, accountcontrol.DefaultValue, accountcontrol.NewDefaultTranscoder().Default())
	assert.Equal(t, 512, accountcontrol.NewTranscoder(512).Default())
}

func TestNewTranscoder_ZeroBaseline(t *testing.T) {
	tc := accountcontrol.NewTranscoder(0)

	assert.Equal(t, 0, tc.Default())

	v, err := tc.DecodeStringValue(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, v)
	assert.Equal(t, "0", tc.EncodeStringValue(nil))
	assert.Equal(t, 2, tc.UserAccountControlValue(false, nil))
}

func TestDecodeStringValue(t *testing.T) {
	tc := accountcontrol.NewDefaultTranscoder()

	tests := []struct {
		name    string
		raw     *string
		want    int
		wantErr bool
	}{
		{name: "nil uses default", raw: nil, want: 66048},
		{name: "disabled bit", raw: strPtr("2"), want: 2},
		{name: "disabled account", raw: strPtr("66050"), want: 66050},
		{name: "not a number", raw: strPtr("not-a-number"), wantErr: true},
		{name: "empty string", raw: strPtr(""), wantErr: true},
		{name: "hex is not accepted", raw: strPtr("0x2"), wantErr: true},
		{name: "largest 32-bit value", raw: strPtr("2147483647"), want: 2147483647},
		{name: "negative", raw: strPtr("-1"), want: -1},
		{name: "above 32 bits", raw: strPtr("2147483648"), wantErr: true},
		{name: "far above 32 bits", raw: strPtr("4294967298"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tc.DecodeStringValue(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, accountcontrol.ErrNumberFormat)

				var nfe *accountcontrol.NumberFormatError
				require.True(t, errors.As(err, &nfe))
				assert.Equal(t, *tt.raw, nfe.Value)

				var numErr *strconv.NumError
				assert.True(t, errors.As(err, &numErr))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeStringValue(t *testing.T) {
	tc := accountcontrol.NewDefaultTranscoder()

	assert.Equal(t, "66048", tc.EncodeStringValue(nil))
	assert.Equal(t, "2", tc.EncodeStringValue(intPtr(2)))
	assert.Equal(t, "0", tc.EncodeStringValue(intPtr(0)))
	assert.Equal(t, "4096", accountcontrol.NewTranscoder(4096).EncodeStringValue(nil))
}

func TestUserAccountControlValue(t *testing.T) {
	tc := accountcontrol.NewDefaultTranscoder()

	assert.Equal(t, 66050, tc.UserAccountControlValue(false, nil))
	assert.Equal(t, 66048, tc.UserAccountControlValue(true, nil))
	assert.Equal(t, 66048, tc.UserAccountControlValue(true, intPtr(66050)))
	assert.Equal(t, 2, tc.UserAccountControlValue(false, intPtr(0)))
	assert.Equal(t, 0, tc.UserAccountControlValue(true, intPtr(2)))
}

func TestUserAccountControlValue_Properties(t *testing.T) {
	tc := accountcontrol.NewDefaultTranscoder()

	values := []int{0, 1, 2, 512, 514, 66048, 66050, accountcontrol.Lockout | accountcontrol.NormalAccount, 0x7fffffff}

	for _, v := range values {
		for _, enabled := range []bool{true, false} {
			once := tc.UserAccountControlValue(enabled, intPtr(v))
			twice := tc.UserAccountControlValue(enabled, &once)

			assert.Equal(t, once, twice, "idempotent for %d", v)
			assert.Equal(t, enabled, tc.IsUserAccountEnabled(&once, !enabled), "flag for %d", v)
			assert.Equal(t, v&^accountcontrol.AccountDisabled, once&^accountcontrol.AccountDisabled,
				"other bits untouched for %d", v)
		}

		if v&accountcontrol.AccountDisabled == 0 {
			disabled := tc.UserAccountControlValue(false, intPtr(v))
			assert.Equal(t, v, tc.UserAccountControlValue(true, &disabled), "round trip for %d", v)
		}
	}
}

func TestIsUserAccountEnabled(t *testing.T) {
	tc := accountcontrol.NewDefaultTranscoder()

	assert.True(t, tc.IsUserAccountEnabled(nil, true))
	assert.False(t, tc.IsUserAccountEnabled(nil, false))
	assert.True(t, tc.IsUserAccountEnabled(intPtr(66048), false))
	assert.False(t, tc.IsUserAccountEnabled(intPtr(66050), true))
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, []string{"NORMAL_ACCOUNT", "DONT_EXPIRE_PASSWORD"}, accountcontrol.Describe(66048))
	assert.Equal(t, []string{"ACCOUNTDISABLE", "NORMAL_ACCOUNT", "DONT_EXPIRE_PASSWORD"}, accountcontrol.Describe(66050))
	assert.Empty(t, accountcontrol.Describe(0))
}
