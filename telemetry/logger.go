// Package telemetry provides the engine's textual logging sink: three
// thin level methods over one *log.Logger, matching how the rest of this
// module's ambient code (cmd/mdpenv) reaches for stdlib log rather than a
// structured logging library.
package telemetry

import (
	"io"
	"log"
)

// Logger writes leveled lines to an optional file sink, per spec.md §6:
// "textual lines at levels {info, warning, error} to an optional file
// sink... each line must identify: step/episode index, action, pre- and
// post-state, reward."
type Logger struct {
	l *log.Logger
}

// New wraps l. A nil l logs to stderr via log.Default().
func New(l *log.Logger) *Logger {
	if l == nil {
		l = log.Default()
	}
	return &Logger{l: l}
}

// NewToWriter builds a Logger writing to w (e.g. an opened log file), with
// no timestamp prefix removed - callers wanting a bare file sink can pass
// 0 for flags via log.New directly and wrap the result with New instead.
func NewToWriter(w io.Writer) *Logger {
	return &Logger{l: log.New(w, "", log.LstdFlags)}
}

func (t *Logger) Info(format string, args ...any)    { t.l.Printf("INFO  "+format, args...) }
func (t *Logger) Warning(format string, args ...any) { t.l.Printf("WARN  "+format, args...) }
func (t *Logger) Error(format string, args ...any)   { t.l.Printf("ERROR "+format, args...) }
