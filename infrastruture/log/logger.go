// Package log provides the colored prefix logger used across the server.
package log

import (
	"errors"
	"io"
	stdlog "log"

	"github.com/beka-birhanu/drivom-api/config"
	"github.com/beka-birhanu/drivom-api/service/i"
)

// Logger writes leveled messages with a colored subsystem prefix.
type Logger struct {
	prefix string
	color  string
	out    *stdlog.Logger
}

// New creates a logger for a subsystem. The prefix is printed in the given
// ANSI color on every line.
func New(prefix, color string, w io.Writer) (i.Logger, error) {
	if prefix == "" {
		return nil, errors.New("empty logger prefix")
	}
	if w == nil {
		return nil, errors.New("nil logger writer")
	}

	return &Logger{
		prefix: prefix,
		color:  color,
		out:    stdlog.New(w, "", stdlog.LstdFlags),
	}, nil
}

func (l *Logger) log(level, msg string) {
	l.out.Printf("%s[%s]%s [%s] %s", l.color, l.prefix, config.ColorReset, level, msg)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.log("INFO", msg)
}

// Warning logs a warning message.
func (l *Logger) Warning(msg string) {
	l.log("WARNING", msg)
}

// Error logs an error message.
func (l *Logger) Error(msg string) {
	l.log("ERROR", msg)
}
