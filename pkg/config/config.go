package config

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/milan604/restbase/pkg/logger"
	"github.com/milan604/restbase/pkg/utils"
)

// Config is the wrapper around viper with extra helpers.
type Config struct {
	*viper.Viper

	sensitiveKeys map[string]struct{}
	log           logger.LogManager
	watch         bool
	onChange      func(*Config)
	fileSet       bool
}

// Option is a functional option for New.
type Option func(*Config) error

// New creates a Config instance. Use options to customize behavior.
// Example:
//
//	cfg, err := config.New(
//	  config.WithDefaults(config.ClientDefaults()),
//	  config.WithFile("restbase.yaml"),
//	  config.WithEnv("RESTBASE"),
//	  config.WithPFlags(flags),
//	)
func New(opts ...Option) (*Config, error) {
	cfg := &Config{
		Viper:         viper.New(),
		sensitiveKeys: map[string]struct{}{},
		log:           logger.NewNop(),
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("config: applying option: %w", err)
		}
	}

	if cfg.fileSet {
		if err := cfg.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", cfg.ConfigFileUsed(), err)
		}
		if cfg.watch {
			cfg.startWatch()
		}
	}
	return cfg, nil
}

/* ---------------------------
   Options
----------------------------*/

// WithDefaults sets default values (applied first)
func WithDefaults(defaults map[string]interface{}) Option {
	return func(c *Config) error {
		for k, v := range defaults {
			c.SetDefault(k, v)
		}
		return nil
	}
}

// WithFile sets an exact config file; its extension determines the format.
func WithFile(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return nil
		}
		c.SetConfigFile(path)
		if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
			c.SetConfigType(ext)
		}
		c.fileSet = true
		return nil
	}
}

// WithEnv enables environment variable overrides.
// prefix = "RESTBASE" means RESTBASE_API_BASE_URL overrides api.base_url.
func WithEnv(prefix string) Option {
	return func(c *Config) error {
		if prefix != "" {
			c.SetEnvPrefix(prefix)
		}
		c.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
		c.AutomaticEnv()
		return nil
	}
}

// WithPFlags binds a pflag.FlagSet to viper. If flags are nil, we bind the default command line.
func WithPFlags(flags *pflag.FlagSet) Option {
	return func(c *Config) error {
		if flags == nil {
			flags = pflag.CommandLine
		}
		return c.BindPFlags(flags)
	}
}

// WithLogger sets where config events such as reloads are logged.
func WithLogger(l logger.LogManager) Option {
	return func(c *Config) error {
		if l != nil {
			c.log = l
		}
		return nil
	}
}

// WithWatch enables hot-reload of the file given to WithFile. onChange runs
// on the watcher goroutine after each reload; read new values from the
// *Config it receives. Without a file the option does nothing.
func WithWatch(onChange func(*Config)) Option {
	return func(c *Config) error {
		c.watch = true
		c.onChange = onChange
		return nil
	}
}

func (c *Config) startWatch() {
	c.OnConfigChange(func(e fsnotify.Event) {
		c.log.InfoF("config file changed: %s", e.Name)
		if c.onChange != nil {
			c.onChange(c)
		}
	})
	c.WatchConfig()
}

// WithSensitiveKeys registers keys which should be redacted when logging.
func WithSensitiveKeys(keys ...string) Option {
	return func(c *Config) error {
		for _, k := range keys {
			c.sensitiveKeys[k] = struct{}{}
		}
		return nil
	}
}

/* ---------------------------
   Typed getters with defaults
----------------------------*/

// GetStringD returns string or def
func (c *Config) GetStringD(key, def string) string {
	if val := c.GetString(key); val != "" {
		return val
	}
	return def
}

// GetIntD returns int or def
func (c *Config) GetIntD(key string, def int) int {
	if c.IsSet(key) {
		return c.GetInt(key)
	}
	return def
}

// unparsedDuration marks a value time.ParseDuration rejected.
const unparsedDuration = time.Duration(math.MinInt64)

// GetDurationD returns a duration or def. Bare numbers are read as
// milliseconds, so "api.timeout: 5000" means five seconds.
func (c *Config) GetDurationD(key string, def time.Duration) time.Duration {
	if !c.IsSet(key) {
		return def
	}
	switch v := c.Get(key).(type) {
	case int:
		return time.Duration(v) * time.Millisecond
	case int64:
		return time.Duration(v) * time.Millisecond
	case float64:
		return time.Duration(v * float64(time.Millisecond))
	case time.Duration:
		return v
	}
	if d := utils.MustParseDuration(c.GetString(key), unparsedDuration); d != unparsedDuration {
		return d
	}
	if ms := c.GetInt64(key); ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return def
}

// GetStringMapStringD returns a string map or def when the key is unset.
func (c *Config) GetStringMapStringD(key string, def map[string]string) map[string]string {
	if !c.IsSet(key) {
		return def
	}
	return c.GetStringMapString(key)
}

/* ---------------------------
   Validation & Utilities
----------------------------*/

// ValidateRequired ensures keys exist and are non-empty.
func (c *Config) ValidateRequired(keys ...string) error {
	var missing []string
	for _, k := range keys {
		if !c.IsSet(k) || c.GetString(k) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required keys: %v", strings.Join(missing, ", "))
	}
	return nil
}

// MaskedSettings returns the flattened settings with sensitive keys redacted.
func (c *Config) MaskedSettings() map[string]interface{} {
	redacted := map[string]interface{}{}
	for _, k := range c.AllKeys() {
		if _, ok := c.sensitiveKeys[k]; ok {
			redacted[k] = "***REDACTED***"
			continue
		}
		redacted[k] = c.Get(k)
	}
	return redacted
}
