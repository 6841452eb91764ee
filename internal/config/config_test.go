package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoPowerDNS-Admin/authkit/internal/authority"
)

func projectConfigPath(t *testing.T) string {
	t.Helper()

	// Get the project root by going up from internal/config
	projectRoot, err := filepath.Abs("../../")
	require.NoError(t, err)

	return filepath.Join(projectRoot, "etc") + string(filepath.Separator)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.toml"), []byte(content), 0o600))

	return dir
}

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig(projectConfigPath(t))
	require.NoError(t, err)

	assert.Equal(t, "authkit", cfg.Title)
	assert.Equal(t, "info", cfg.Log.LogLevel)
	assert.True(t, cfg.Log.Console.Enabled)

	assert.Equal(t, []string{"ROLE_USER"}, cfg.Authorities.DefaultRoles)
	assert.Equal(t, authority.ToUpperCase, cfg.Authorities.CaseTransformation)
	require.NotNil(t, cfg.Authorities.RolePrefix)
	assert.Equal(t, "ROLE_", *cfg.Authorities.RolePrefix)
	require.Len(t, cfg.Authorities.StringReplacements, 1)
	assert.Equal(t, `[-\s]`, cfg.Authorities.StringReplacements[0].Pattern)
	assert.Equal(t, "ROLE_ADMIN", cfg.Authorities.RoleMapping["domain admins"])

	assert.Equal(t, "$.sub", cfg.JWT.Claims.Paths.Subject)
	assert.Equal(t, "HS256", cfg.JWT.Decoder.SigningMethod)
	assert.Equal(t, 30*time.Second, cfg.JWT.Decoder.Leeway)

	assert.Equal(t, "active_directory", cfg.AccountControl.Directory)
	require.NotNil(t, cfg.AccountControl.DefaultValue)
	assert.Equal(t, 66048, *cfg.AccountControl.DefaultValue)

	assert.False(t, cfg.LDAP.Enabled)
	assert.Equal(t, "sAMAccountName", cfg.LDAP.UsernameAttr)
	assert.Equal(t, []string{"openid", "profile", "email"}, cfg.OIDC.Scopes)
}

func TestReadConfig_RolePrefixUnset(t *testing.T) {
	dir := writeConfig(t, `
title = "t"

[authorities]
defaultRoles = ["ROLE_USER"]
`)

	cfg, err := ReadConfig(dir)
	require.NoError(t, err)

	assert.Nil(t, cfg.Authorities.RolePrefix)
	assert.Equal(t, authority.DefaultRolePrefix, cfg.Authorities.Prefix())
	assert.Equal(t, "none", cfg.AccountControl.Directory)
	assert.Nil(t, cfg.AccountControl.DefaultValue)
}

func TestReadConfig_ZeroAccountControlBaseline(t *testing.T) {
	dir := writeConfig(t, `
title = "t"

[accountControl]
directory = "active_directory"
defaultValue = 0
`)

	cfg, err := ReadConfig(dir)
	require.NoError(t, err)

	require.NotNil(t, cfg.AccountControl.DefaultValue)
	assert.Equal(t, 0, *cfg.AccountControl.DefaultValue)
}

func TestReadConfig_RolePrefixDisabled(t *testing.T) {
	dir := writeConfig(t, `
title = "t"

[authorities]
rolePrefix = ""
`)

	cfg, err := ReadConfig(dir)
	require.NoError(t, err)

	require.NotNil(t, cfg.Authorities.RolePrefix)
	assert.Empty(t, cfg.Authorities.Prefix())
}

func TestReadConfigWithJSONOverride(t *testing.T) {
	t.Setenv(EnvConfigJSON, `{"title":"Test Override","ldap":{"bindPassword":"from-env"},"accountControl":{"directory":"none"}}`)

	cfg, err := ReadConfig(projectConfigPath(t))
	require.NoError(t, err)

	assert.Equal(t, "Test Override", cfg.Title)
	assert.Equal(t, "from-env", cfg.LDAP.BindPassword)
	assert.Equal(t, "none", cfg.AccountControl.Directory)
	// untouched keys survive the merge
	assert.Equal(t, "sAMAccountName", cfg.LDAP.UsernameAttr)
}

func TestReadConfigWithEnvKeyOverride(t *testing.T) {
	t.Setenv("AUTHKIT_LDAP_BINDPASSWORD", "single-key")

	cfg, err := ReadConfig(projectConfigPath(t))
	require.NoError(t, err)

	assert.Equal(t, "single-key", cfg.LDAP.BindPassword)
}

func TestReadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing title",
			content: `devMode = true`,
		},
		{
			name: "unknown directory",
			content: `
title = "t"
[accountControl]
directory = "openldap"
`,
		},
		{
			name: "ldap enabled without host",
			content: `
title = "t"
[ldap]
enabled = true
baseDN = "dc=example,dc=com"
`,
		},
		{
			name: "empty replacement pattern",
			content: `
title = "t"
[[authorities.stringReplacements]]
pattern = ""
replacement = "_"
`,
		},
		{
			name: "unsupported signing method",
			content: `
title = "t"
[jwt.decoder]
signingMethod = "none"
`,
		},
		{
			name: "negative account control baseline",
			content: `
title = "t"
[accountControl]
defaultValue = -1
`,
		},
		{
			name:    "broken toml",
			content: `title = `,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadConfig(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestReadConfig_MissingFile(t *testing.T) {
	_, err := ReadConfig(t.TempDir())
	assert.ErrorContains(t, err, "failed to read main config file")
}

func TestDumpConfig(t *testing.T) {
	cfg, err := ReadConfig(projectConfigPath(t))
	require.NoError(t, err)

	cfg.LDAP.BindPassword = "super-secret"
	cfg.JWT.Decoder.Secret = "jwt-secret"

	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			out, errDump := DumpConfig(&cfg, format)
			require.NoError(t, errDump)

			assert.Contains(t, out, "authkit")
			assert.Contains(t, out, "TO_UPPER_CASE")
			assert.NotContains(t, out, "super-secret")
			assert.NotContains(t, out, "jwt-secret")
		})
	}

	_, err = DumpConfig(&cfg, "xml")
	assert.ErrorIs(t, err, ErrUnknownDumpFormat)
}

func TestDumpConfigJSON_Indent(t *testing.T) {
	out, err := DumpConfigJSON(&Config{Title: "Test"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{\n  \""))
}
