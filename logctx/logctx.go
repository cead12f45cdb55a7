// Package logctx provides the injected Logger handle spec.md §9's
// "no global mutable state" redesign note calls for: components that
// need to log take one explicit *Logger rather than reaching for a
// package-level global. It wraps github.com/btcsuite/btclog, the
// leveled-logger-by-injection library the rest of the retrieval pack
// (toole-brendan-shell, valhallacoin-vhcwallet) standardizes on.
package logctx

import (
	"io"
	"strings"

	"github.com/btcsuite/btclog"
)

// Logger is a thin wrapper around btclog.Logger that maps spec.md §7's
// five operator-facing severities (TRACE/DEBUG/INFO/WARN/ERROR) onto
// btclog's levels and carries a subsystem tag for the "[XXX]" prefix
// operators expect in the log file.
type Logger struct {
	sub btclog.Logger
}

// New builds a Logger writing to w, tagged with the given subsystem
// (e.g. "CHAIN", "SCRIPT", "P2P"), at the given level.
func New(w io.Writer, subsystem string, level string) *Logger {
	backend := btclog.NewBackend(w)
	l := backend.Logger(subsystem)
	l.SetLevel(parseLevel(level))
	return &Logger{sub: l}
}

// Disabled returns a Logger that discards everything, the default for
// components under test that don't care about log output.
func Disabled() *Logger {
	return &Logger{sub: btclog.Disabled}
}

func parseLevel(level string) btclog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "TRACE":
		return btclog.LevelTrace
	case "DEBUG":
		return btclog.LevelDebug
	case "INFO":
		return btclog.LevelInfo
	case "WARN", "WARNING":
		return btclog.LevelWarn
	case "ERROR":
		return btclog.LevelError
	default:
		return btclog.LevelInfo
	}
}

func (l *Logger) Tracef(format string, args ...any) { l.sub.Tracef(format, args...) }
func (l *Logger) Debugf(format string, args ...any) { l.sub.Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.sub.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.sub.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.sub.Errorf(format, args...) }
