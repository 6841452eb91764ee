// Package config reads the main.toml configuration file.
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvConfigJSON names the environment variable holding a JSON document merged over main.toml.
const EnvConfigJSON = "AUTHKIT_CONFIG_JSON"

// ReadConfig reads <path>main.toml and applies the JSON override from EnvConfigJSON.
func ReadConfig(path string) (Config, error) {
	var c Config

	if path == "" {
		path = "./etc/"
	}

	v := viper.New()
	v.SetConfigFile(filepath.Join(path, "main.toml"))

	// single keys can be overridden as AUTHKIT_<SECTION>_<KEY>, e.g. AUTHKIT_LDAP_BINDPASSWORD
	v.SetEnvPrefix("AUTHKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	if configAsJSON := os.Getenv(EnvConfigJSON); configAsJSON != "" {
		v.SetConfigType("json")

		if err := v.MergeConfig(strings.NewReader(configAsJSON)); err != nil {
			return Config{}, errors.Wrapf(err, "failed to merge %s", EnvConfigJSON)
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode main config file")
	}

	return c, validate(&c)
}

// DumpConfig renders c as "json" or "yaml". Secrets are omitted.
func DumpConfig(c *Config, format string) (string, error) {
	switch strings.ToLower(format) {
	case "", "json":
		return DumpConfigJSON(c)
	case "yaml", "yml":
		return DumpConfigYAML(c)
	default:
		return "", errors.Wrap(ErrUnknownDumpFormat, format)
	}
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer

	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigYAML config as YAML String.
func DumpConfigYAML(c *Config) (string, error) {
	var buffer bytes.Buffer

	y := yaml.NewEncoder(&buffer)
	y.SetIndent(2) //nolint:mnd

	if err := y.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	if err := y.Close(); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate checks the struct tags of c and fills in defaults.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Title == "" {
		return errors.Wrap(ErrEmptyTitle, invalidErrMessage)
	}

	if c.AccountControl.Directory == "" {
		c.AccountControl.Directory = "none"
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return errors.Wrap(err, invalidErrMessage)
	}

	return nil
}
