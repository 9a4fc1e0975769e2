package config

import "github.com/spf13/pflag"

// Keys read by the API client.
const (
	KeyBaseURL        = "api.base_url"
	KeyDefaultHeaders = "api.default_headers"
	KeyTimeout        = "api.timeout"
	KeyTokenKey       = "api.token_key"
	KeyRetryLimit     = "api.retry_limit"
	KeyDebounceDelay  = "api.debounce_delay"

	KeyStoreDriver = "token_store.driver"
	KeyStorePath   = "token_store.path"

	KeyRedisAddr     = "redis.addr"
	KeyRedisPassword = "redis.password"
	KeyRedisDB       = "redis.db"
	KeyRedisPrefix   = "redis.prefix"

	KeyLogLevel = "log.level"
)

// Token store drivers.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
)

// ClientDefaults returns the defaults for keys not covered by the client
// itself. API defaults live in apiclient so a zero Config behaves the same.
func ClientDefaults() map[string]interface{} {
	return map[string]interface{}{
		KeyStoreDriver: DriverMemory,
		KeyRedisAddr:   "localhost:6379",
		KeyRedisDB:     0,
		KeyLogLevel:    "info",
	}
}

// RegisterClientFlags defines the command-line flags matching the client keys.
// Bind the set with WithPFlags after parsing.
func RegisterClientFlags(fs *pflag.FlagSet) {
	fs.String(KeyBaseURL, "", "API base URL")
	fs.String(KeyTimeout, "", "request timeout, e.g. 10s")
	fs.String(KeyTokenKey, "", "token storage key")
	fs.String(KeyStoreDriver, "", "token store driver: memory, file or redis")
	fs.String(KeyStorePath, "", "token file path for the file driver")
	fs.String(KeyRedisAddr, "", "redis address for the redis driver")
	fs.String(KeyLogLevel, "", "log level")
}
