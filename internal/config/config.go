package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. APICEM_CONTROLLER_HOST.
const EnvPrefix = "APICEM"

type Config struct {
	Controller Controller `mapstructure:"controller"`
	Inventory  Inventory  `mapstructure:"inventory"`
	Log        Log        `mapstructure:"log"`
}

// Controller holds the address and credentials of the APIC-EM controller.
type Controller struct {
	Host     string        `mapstructure:"host"`
	Scheme   string        `mapstructure:"scheme"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	Insecure bool          `mapstructure:"insecure"` // skip TLS certificate verification
	Timeout  time.Duration `mapstructure:"timeout"`
}

// BaseURL returns scheme://host.
func (c Controller) BaseURL() string {
	return c.Scheme + "://" + c.Host
}

type Inventory struct {
	Scope          string `mapstructure:"scope"`
	SanitizeGroups bool   `mapstructure:"sanitize_groups"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console, json
}

// ValidationError reports a config problem with a suggested fix.
type ValidationError struct {
	Field      string // dotted path, e.g. "controller.host"
	Message    string // what's wrong
	Suggestion string // how to fix it
}

// SetDefaults registers every key so environment overrides are picked up
// even when the config file does not mention them.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("controller.host", "")
	v.SetDefault("controller.scheme", "https")
	v.SetDefault("controller.username", "")
	v.SetDefault("controller.password", "")
	v.SetDefault("controller.insecure", false)
	v.SetDefault("controller.timeout", "30s")
	v.SetDefault("inventory.scope", "ALL")
	v.SetDefault("inventory.sanitize_groups", false)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
}

// BindEnv makes APICEM_<SECTION>_<KEY> override the matching key.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads the configuration from the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads the configuration from v.
func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	cfg.Controller.Scheme = strings.ToLower(strings.TrimSuffix(cfg.Controller.Scheme, "://"))
	cfg.Controller.Host = strings.TrimRight(cfg.Controller.Host, "/")
	if cfg.Inventory.Scope == "" {
		cfg.Inventory.Scope = "ALL"
	}

	return cfg, nil
}

// Validate checks the settings required to reach the controller.
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	if c.Controller.Host == "" {
		errs = append(errs, ValidationError{
			Field:      "controller.host",
			Message:    "host is required",
			Suggestion: "set the controller address, e.g. apic-em.example.net, or export APICEM_CONTROLLER_HOST",
		})
	} else if _, err := url.Parse(c.Controller.BaseURL()); err != nil || strings.Contains(c.Controller.Host, "/") {
		errs = append(errs, ValidationError{
			Field:      "controller.host",
			Message:    fmt.Sprintf("invalid host: %s", c.Controller.Host),
			Suggestion: "use host or host:port without a scheme or path",
		})
	}

	if c.Controller.Scheme != "https" && c.Controller.Scheme != "http" {
		errs = append(errs, ValidationError{
			Field:      "controller.scheme",
			Message:    fmt.Sprintf("unsupported scheme: %s", c.Controller.Scheme),
			Suggestion: "use https (or http for lab controllers)",
		})
	}

	if c.Controller.Username == "" {
		errs = append(errs, ValidationError{
			Field:      "controller.username",
			Message:    "username is required",
			Suggestion: "set controller.username or export APICEM_CONTROLLER_USERNAME",
		})
	}

	if c.Controller.Password == "" {
		errs = append(errs, ValidationError{
			Field:      "controller.password",
			Message:    "password is required",
			Suggestion: "export APICEM_CONTROLLER_PASSWORD or put it in a .env file",
		})
	}

	if c.Controller.Timeout < 0 {
		errs = append(errs, ValidationError{
			Field:      "controller.timeout",
			Message:    "timeout must not be negative",
			Suggestion: "use a duration such as 30s, or 0 to disable the timeout",
		})
	}

	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, ValidationError{
			Field:      "log.format",
			Message:    fmt.Sprintf("unknown log format: %s", c.Log.Format),
			Suggestion: "use console or json",
		})
	}

	return errs
}
