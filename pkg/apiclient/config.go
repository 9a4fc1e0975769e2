package apiclient

import (
	"maps"
	"time"

	"github.com/milan604/restbase/pkg/utils"
)

// Defaults applied to zero-valued Config fields.
const (
	DefaultBaseURL         = "http://example.com"
	DefaultTimeout         = 10 * time.Second
	DefaultTokenStorageKey = "jwtToken"
	DefaultRetryLimit      = 3
	DefaultDebounceDelay   = 300 * time.Millisecond
)

// Config is fixed when the client is built.
type Config struct {
	BaseURL         string
	DefaultHeaders  map[string]string
	Timeout         time.Duration
	TokenStorageKey string
	// RetryLimit is stored and reported but no request path consults it.
	// The only retry is the single 401 resubmission of TokenRefreshInterceptor.
	RetryLimit    int
	DebounceDelay time.Duration
}

// withDefaults returns a copy of c with every zero field defaulted.
func (c Config) withDefaults() Config {
	out := Config{
		BaseURL:         utils.DefaultIfEmpty(c.BaseURL, DefaultBaseURL),
		DefaultHeaders:  utils.MergeMaps(nil, c.DefaultHeaders),
		Timeout:         utils.CoalesceVal(c.Timeout, DefaultTimeout),
		TokenStorageKey: utils.DefaultIfEmpty(c.TokenStorageKey, DefaultTokenStorageKey),
		RetryLimit:      utils.CoalesceVal(c.RetryLimit, DefaultRetryLimit),
		DebounceDelay:   utils.CoalesceVal(c.DebounceDelay, DefaultDebounceDelay),
	}
	return out
}

func (c Config) clone() Config {
	c.DefaultHeaders = maps.Clone(c.DefaultHeaders)
	return c
}
