// Package logger provides the process-wide structured logger backed by zerolog.
//
// The CLI calls Init once at startup and passes the result down; Get is for
// the few places that cannot take a logger by injection. Logs go to stderr
// so command output on stdout stays machine-readable.
//
//	TRACE (-1) → DEBUG (0) → INFO (1) → WARN (2) → ERROR (3) → DISABLED
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls logger behaviour at initialisation time.
type Options struct {
	// Level is the minimum log level: trace, debug, info, warn, error or off.
	// Defaults to "warn" when empty or unrecognised.
	Level string
	// Pretty enables human-friendly console output.
	Pretty bool
	// Output defaults to os.Stderr.
	Output io.Writer
}

var (
	mu          sync.Mutex
	instance    zerolog.Logger
	initialized bool
)

// Init builds the process logger. Only the first call has any effect until
// Reset is called.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if initialized {
		return instance
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	instance = zerolog.New(out).
		Level(ParseLevel(opts.Level)).
		With().
		Timestamp().
		Str("app", "storerating").
		Logger()
	initialized = true
	return instance
}

// Get returns the process logger, or a disabled one before Init.
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if !initialized {
		return Nop()
	}
	return instance
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger { return zerolog.Nop() }

// Reset tears down the logger so that the next Init call rebuilds it.
// Intended for use in tests only.
func Reset() {
	mu.Lock()
	instance = zerolog.Logger{}
	initialized = false
	mu.Unlock()
}

// ParseLevel converts a level name to a zerolog.Level; unknown names map to
// warn.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "error":
		return zerolog.ErrorLevel
	case "off", "disabled", "none":
		return zerolog.Disabled
	default:
		return zerolog.WarnLevel
	}
}
