// Package logging builds the process logger and the HTTP request logging
// middleware.
package logging

import (
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type ctxKey string

// ReqIDKey carries the request id in request contexts.
const ReqIDKey ctxKey = "reqID"

// Options configure New.
type Options struct {
	// Level is a zerolog level name; empty means info.
	Level string
	// Pretty switches to the console writer.
	Pretty bool
	// Out defaults to stdout, or stderr for the console writer.
	Out io.Writer
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.TimestampFieldName = "time"
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		function := ""
		if fn := runtime.FuncForPC(pc); fn != nil {
			name := fn.Name()
			if slash := strings.LastIndex(name, "/"); slash > 0 {
				name = name[slash+1:]
			}
			function = " " + name + "()"
		}
		return file + ":" + strconv.Itoa(line) + function
	}
}

// New returns a JSON logger with timestamps, or a console logger when
// Pretty is set. An unknown level falls back to info.
func New(opts Options) zerolog.Logger {
	out := opts.Out
	if opts.Pretty {
		if out == nil {
			out = os.Stderr
		}
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	} else if out == nil {
		out = os.Stdout
	}

	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// FromEnv reads PRETTY=1 and DEBUG=1 the way local development shells set
// them.
func FromEnv() zerolog.Logger {
	opts := Options{Pretty: os.Getenv("PRETTY") == "1"}
	if os.Getenv("DEBUG") == "1" {
		opts.Level = "debug"
	}
	return New(opts)
}
