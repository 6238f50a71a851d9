// If you are AI: This file is the shared logger construction every cmd/*
// binary calls once at startup, matching the teacher's single-point-of-setup
// convention for process-wide concerns (spec.md's ambient logging stack).

package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// Format selects a process's log encoding.
type Format string

const (
	Console Format = "console"
	JSON    Format = "json"
)

// New builds a zerolog.Logger writing to stderr in the given format.
// An unrecognized format falls back to Console.
func New(format Format) zerolog.Logger {
	if format == JSON {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
