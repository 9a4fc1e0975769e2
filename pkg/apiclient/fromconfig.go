package apiclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/milan604/restbase/pkg/config"
	"github.com/milan604/restbase/pkg/logger"
	"github.com/milan604/restbase/pkg/tokenstore"
)

// NewFromConfig builds a client, its token store and, when log is nil, its
// logger from cfg. Options passed in opts override the derived ones.
func NewFromConfig(ctx context.Context, cfg *config.Config, log logger.LogManager, opts ...Option) (*Client, error) {
	if log == nil {
		l, err := logger.NewLogger(logger.LoggerOptions{Level: cfg.GetStringD(config.KeyLogLevel, "info")})
		if err != nil {
			return nil, err
		}
		log = l
	}

	store, err := storeFromConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	clientCfg := Config{
		BaseURL:         cfg.GetString(config.KeyBaseURL),
		DefaultHeaders:  cfg.GetStringMapStringD(config.KeyDefaultHeaders, nil),
		Timeout:         cfg.GetDurationD(config.KeyTimeout, 0),
		TokenStorageKey: cfg.GetString(config.KeyTokenKey),
		RetryLimit:      cfg.GetIntD(config.KeyRetryLimit, 0),
		DebounceDelay:   cfg.GetDurationD(config.KeyDebounceDelay, 0),
	}

	base := []Option{WithStore(store), WithLogger(log)}
	c := New(clientCfg, append(base, opts...)...)
	log.DebugF("api client ready: base_url=%s store=%s", c.cfg.BaseURL, cfg.GetStringD(config.KeyStoreDriver, config.DriverMemory))
	return c, nil
}

func storeFromConfig(ctx context.Context, cfg *config.Config) (tokenstore.Store, error) {
	driver := strings.ToLower(cfg.GetStringD(config.KeyStoreDriver, config.DriverMemory))
	switch driver {
	case config.DriverMemory:
		return tokenstore.NewMemoryStore(), nil
	case config.DriverFile:
		if err := cfg.ValidateRequired(config.KeyStorePath); err != nil {
			return nil, fmt.Errorf("file token store: %w", err)
		}
		return tokenstore.NewFileStore(cfg.GetString(config.KeyStorePath))
	case config.DriverRedis:
		return tokenstore.DialRedis(ctx,
			cfg.GetStringD(config.KeyRedisAddr, "localhost:6379"),
			cfg.GetString(config.KeyRedisPassword),
			cfg.GetInt(config.KeyRedisDB),
			tokenstore.WithKeyPrefix(cfg.GetString(config.KeyRedisPrefix)),
		)
	default:
		return nil, fmt.Errorf("unknown token store driver %q", driver)
	}
}
