// Package cmdlogger provides the process-level structured logger shared by
// waylinkctl's subcommands. It is deliberately separate from the Socket
// trace sink in the root package: that one is a per-connection hclog.Logger
// plumbed through protocol dispatch, this one is a single zerolog.Logger for
// CLI-level events (startup, shutdown, accept/connect outcomes).
package cmdlogger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

var log zerolog.Logger

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().
		Timestamp().
		Logger()
}

// Get returns the shared logger.
func Get() zerolog.Logger {
	return log
}

// SetLevel parses level (debug, info, warn, error) and sets it as the
// global zerolog level. Unrecognized values fall back to info.
func SetLevel(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}
