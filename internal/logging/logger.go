package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Custom severity levels extending the slog defaults.
// LevelTrace sits below Debug for per-stage engine chatter; LevelCritical
// above Error for unrecoverable failures.
const (
	LevelTrace    = slog.LevelDebug - 4
	LevelCritical = slog.LevelError + 4
)

// EnvVarNames are the accepted spellings of the verbosity environment
// variable. Both the names and the values are matched case-insensitively.
var EnvVarNames = []string{"GRAFT_LOG_LEVEL", "GRAFT_LOGLEVEL"}

// New creates a configured application logger.
// It writes to Stderr (to separate from Stdout result output).
// It standardizes common keys (e.g., "error" -> "err") and names the custom
// levels in output.
func New(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Standardize 'error' key to 'err'
			if a.Key == "error" {
				a.Key = "err"
			}
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok {
					a.Value = slog.StringValue(LevelName(lvl))
				}
			}
			return a
		},
	}))
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// FromEnv builds a logger whose severity threshold comes from the
// environment. Missing or unparsable values fall back to Info.
func FromEnv() *slog.Logger {
	return New(LevelFromEnv())
}

// LevelFromEnv resolves the severity threshold from the environment,
// checking every accepted variable spelling case-insensitively.
func LevelFromEnv() slog.Level {
	env := environ()
	for _, name := range EnvVarNames {
		for key, value := range env {
			if strings.EqualFold(key, name) {
				if lvl, ok := ParseLevel(value); ok {
					return lvl
				}
			}
		}
	}
	return slog.LevelInfo
}

// ParseLevel converts a level name into its slog.Level, case-insensitively.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return LevelTrace, true
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warning", "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	case "critical":
		return LevelCritical, true
	default:
		return 0, false
	}
}

// LevelName returns the display name of a level, including the custom ones.
func LevelName(lvl slog.Level) string {
	switch {
	case lvl <= LevelTrace:
		return "TRACE"
	case lvl >= LevelCritical:
		return "CRITICAL"
	default:
		return lvl.String()
	}
}

// Trace logs at LevelTrace; a convenience mirroring slog's level helpers.
func Trace(ctx context.Context, logger *slog.Logger, msg string, args ...any) {
	logger.Log(ctx, LevelTrace, msg, args...)
}

// environ yields the process environment as key/value pairs.
func environ() map[string]string {
	out := make(map[string]string)
	for _, kv := range os.Environ() {
		if i := strings.IndexByte(kv, '='); i > 0 {
			out[kv[:i]] = kv[i+1:]
		}
	}
	return out
}
