package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFile(t *testing.T, content string) *Config {
	t.Helper()

	path := filepath.Join(t.TempDir(), "apicem.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	v := viper.New()
	v.SetConfigFile(path)
	BindEnv(v)
	require.NoError(t, v.ReadInConfig())

	cfg, err := LoadFrom(v)
	require.NoError(t, err)
	return cfg
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "https", cfg.Controller.Scheme)
	assert.False(t, cfg.Controller.Insecure)
	assert.Equal(t, 30*time.Second, cfg.Controller.Timeout)
	assert.Equal(t, "ALL", cfg.Inventory.Scope)
	assert.False(t, cfg.Inventory.SanitizeGroups)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadFile(t *testing.T) {
	cfg := loadFile(t, `
controller:
  host: apic-em.lab:8443
  scheme: HTTPS://
  username: admin
  password: secret
  insecure: true
  timeout: 5s
inventory:
  sanitize_groups: true
`)

	assert.Equal(t, "apic-em.lab:8443", cfg.Controller.Host)
	assert.Equal(t, "https", cfg.Controller.Scheme)
	assert.Equal(t, "https://apic-em.lab:8443", cfg.Controller.BaseURL())
	assert.Equal(t, "admin", cfg.Controller.Username)
	assert.True(t, cfg.Controller.Insecure)
	assert.Equal(t, 5*time.Second, cfg.Controller.Timeout)
	assert.True(t, cfg.Inventory.SanitizeGroups)
	assert.Empty(t, cfg.Validate())
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("APICEM_CONTROLLER_PASSWORD", "from-env")
	t.Setenv("APICEM_CONTROLLER_HOST", "10.1.1.1")

	cfg := loadFile(t, `
controller:
  host: apic-em.lab
  username: admin
`)

	assert.Equal(t, "10.1.1.1", cfg.Controller.Host)
	assert.Equal(t, "from-env", cfg.Controller.Password)
}

func TestValidateMissingCredentials(t *testing.T) {
	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)

	errs := cfg.Validate()
	fields := make(map[string]bool)
	for _, e := range errs {
		fields[e.Field] = true
		assert.NotEmpty(t, e.Suggestion)
	}
	assert.True(t, fields["controller.host"])
	assert.True(t, fields["controller.username"])
	assert.True(t, fields["controller.password"])
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := &Config{
		Controller: Controller{
			Host:     "https://apic-em.lab/api",
			Scheme:   "ftp",
			Username: "admin",
			Password: "secret",
		},
		Log: Log{Format: "xml"},
	}

	errs := cfg.Validate()
	fields := make(map[string]bool)
	for _, e := range errs {
		fields[e.Field] = true
	}
	assert.True(t, fields["controller.host"])
	assert.True(t, fields["controller.scheme"])
	assert.True(t, fields["log.format"])
	assert.False(t, fields["controller.password"])
}
