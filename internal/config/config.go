// Package config loads the application configuration from a YAML file
// with environment expansion, so secrets stay in the environment (or a
// local .env file) instead of the config file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/juneandco/third-audience/internal/errors"
)

// Config is the application configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store"`
	Server  ServerConfig  `yaml:"server"`
	Cache   CacheConfig   `yaml:"cache"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// StoreConfig identifies the upstream store.
type StoreConfig struct {
	// Domain is the Admin API host, e.g. "example.myshopify.com".
	Domain string `yaml:"domain"`
	// Token is the Admin API access token. Usually supplied as
	// ${SHOPIFY_ACCESS_TOKEN} and expanded from the environment.
	Token string `yaml:"token"`
	// PublicURL is the shopper-facing base URL used in links.
	PublicURL string `yaml:"public_url"`
	// Currency is the ISO code shown in product documents.
	Currency string `yaml:"currency"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Duration wraps time.Duration with YAML decoding of the "5m" form.
type Duration time.Duration

// UnmarshalYAML decodes a Go duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// CacheConfig bounds the content cache.
type CacheConfig struct {
	TTL      Duration `yaml:"ttl"`
	Capacity int      `yaml:"capacity"`
}

// ExportConfig configures the export command.
type ExportConfig struct {
	Output string `yaml:"output"`
}

// LoggingConfig selects log verbosity and encoding.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug|info|warn|error
	Format string `yaml:"format"` // text|json
}

// Load reads, expands, and validates the configuration file. A .env file
// in the working directory is loaded first without overriding existing
// environment variables.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Note: .env file couldn't be loaded: %v\n", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.CategoryConfig, "configuration file not found: %s", path)
		}
		return nil, errors.Wrap(err, errors.CategoryConfig, "reading config file")
	}

	// Expand ${VAR} references so tokens never live in the file.
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.Wrap(err, errors.CategoryConfig, "parsing config file")
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Store.Currency == "" {
		c.Store.Currency = "USD"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":3001"
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = Duration(5 * time.Minute)
	}
	if c.Cache.Capacity <= 0 {
		c.Cache.Capacity = 500
	}
	if c.Export.Output == "" {
		c.Export.Output = "./dist"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

func (c *Config) validate() error {
	if c.Store.Domain == "" {
		return errors.New(errors.CategoryConfig, "store.domain is required")
	}
	if c.Store.Token == "" {
		return errors.New(errors.CategoryConfig, "store.token is required")
	}
	if c.Store.PublicURL == "" {
		return errors.New(errors.CategoryConfig, "store.public_url is required")
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return errors.Newf(errors.CategoryConfig, "logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}

// starterConfig is the template the init command writes.
const starterConfig = `# third-audience configuration
store:
  domain: your-store.myshopify.com
  token: ${SHOPIFY_ACCESS_TOKEN}
  public_url: https://your-store.example.com
  currency: USD

server:
  addr: ":3001"

cache:
  ttl: 5m
  capacity: 500

export:
  output: ./dist

logging:
  level: info
  format: text
`

// WriteStarter writes the starter configuration to path. It refuses to
// overwrite an existing file unless force is set.
func WriteStarter(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.Newf(errors.CategoryConfig, "%s already exists (use --force to overwrite)", path)
	}
	if err := os.WriteFile(path, []byte(starterConfig), 0o644); err != nil {
		return errors.Wrap(err, errors.CategoryConfig, "writing starter config")
	}
	return nil
}
