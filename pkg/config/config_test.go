package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/milan604/restbase/pkg/logger"
)

const sampleYAML = `
api:
  base_url: https://api.example.org
  timeout: 2500
  default_headers:
    x-tenant: acme
token_store:
  driver: file
  path: /tmp/tokens.json
redis:
  password: hunter2
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewReadsFileAndDefaults(t *testing.T) {
	path := writeFile(t, "restbase.yaml", sampleYAML)

	cfg, err := New(WithDefaults(ClientDefaults()), WithFile(path))
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.org", cfg.GetString(KeyBaseURL))
	assert.Equal(t, 2500*time.Millisecond, cfg.GetDurationD(KeyTimeout, time.Second))
	assert.Equal(t, map[string]string{"x-tenant": "acme"}, cfg.GetStringMapStringD(KeyDefaultHeaders, nil))
	assert.Equal(t, DriverFile, cfg.GetString(KeyStoreDriver))
	assert.Equal(t, "localhost:6379", cfg.GetString(KeyRedisAddr))
	assert.Equal(t, "info", cfg.GetStringD(KeyLogLevel, "debug"))
}

func TestNewMissingFileFails(t *testing.T) {
	_, err := New(WithFile(filepath.Join(t.TempDir(), "absent.yaml")))
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "restbase.yaml", sampleYAML)
	t.Setenv("RESTBASE_API_BASE_URL", "https://env.example.org")
	t.Setenv("RESTBASE_API_DEBOUNCE_DELAY", "150ms")

	cfg, err := New(WithFile(path), WithEnv("RESTBASE"))
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.org", cfg.GetString(KeyBaseURL))
	assert.Equal(t, 150*time.Millisecond, cfg.GetDurationD(KeyDebounceDelay, 0))
}

func TestPFlagsOverride(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterClientFlags(fs)
	require.NoError(t, fs.Parse([]string{"--api.base_url=https://flag.example.org", "--api.timeout=3s"}))

	cfg, err := New(WithDefaults(ClientDefaults()), WithPFlags(fs))
	require.NoError(t, err)

	assert.Equal(t, "https://flag.example.org", cfg.GetString(KeyBaseURL))
	assert.Equal(t, 3*time.Second, cfg.GetDurationD(KeyTimeout, 0))
	assert.Equal(t, DriverMemory, cfg.GetString(KeyStoreDriver))
}

func TestGetDurationD(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, time.Second, cfg.GetDurationD("missing", time.Second))

	cfg.Set("a", "10s")
	cfg.Set("b", 250)
	cfg.Set("c", "400")
	cfg.Set("d", "garbage")
	assert.Equal(t, 10*time.Second, cfg.GetDurationD("a", 0))
	assert.Equal(t, 250*time.Millisecond, cfg.GetDurationD("b", 0))
	assert.Equal(t, 400*time.Millisecond, cfg.GetDurationD("c", 0))
	assert.Equal(t, time.Minute, cfg.GetDurationD("d", time.Minute))
}

func TestValidateRequiredAndMasking(t *testing.T) {
	path := writeFile(t, "restbase.yaml", sampleYAML)
	cfg, err := New(WithFile(path), WithSensitiveKeys(KeyRedisPassword))
	require.NoError(t, err)

	assert.NoError(t, cfg.ValidateRequired(KeyBaseURL))
	assert.ErrorContains(t, cfg.ValidateRequired(KeyBaseURL, KeyTokenKey), KeyTokenKey)

	masked := cfg.MaskedSettings()
	assert.Equal(t, "***REDACTED***", masked[KeyRedisPassword])
	assert.Equal(t, "https://api.example.org", masked[KeyBaseURL])
}

func TestWatchReloadsAndLogs(t *testing.T) {
	path := writeFile(t, "restbase.yaml", "api:\n  base_url: https://one.example\n")
	core, logs := observer.New(zap.InfoLevel)

	reloaded := make(chan string, 16)
	cfg, err := New(
		WithFile(path),
		WithLogger(logger.NewWithCore(core)),
		WithWatch(func(c *Config) {
			select {
			case reloaded <- c.GetString(KeyBaseURL):
			default:
			}
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, "https://one.example", cfg.GetString(KeyBaseURL))

	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: https://two.example\n"), 0o600))

	deadline := time.After(5 * time.Second)
	for got := ""; got != "https://two.example"; {
		select {
		case got = <-reloaded:
		case <-deadline:
			t.Fatal("config change was not picked up")
		}
	}
	assert.GreaterOrEqual(t, logs.FilterMessageSnippet("config file changed").Len(), 1)
}

func TestWatchWithoutFileIsNoop(t *testing.T) {
	called := false
	cfg, err := New(WithDefaults(ClientDefaults()), WithWatch(func(*Config) { called = true }))
	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.False(t, called)
}
