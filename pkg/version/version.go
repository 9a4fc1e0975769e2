package version

import (
	"runtime"
)

// Set at build time via -ldflags.
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
	Go      = runtime.Version()
)

// Info returns build metadata suitable for logging.
func Info() map[string]string {
	return map[string]string{
		"version": Version,
		"commit":  Commit,
		"date":    Date,
		"go":      Go,
	}
}

// UserAgent is the default User-Agent sent by the transport.
func UserAgent() string {
	return "restbase/" + Version
}
