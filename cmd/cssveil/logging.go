package main

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// setupLogger configures a console logger on stderr. Quiet wins over
// verbose; the default only surfaces warnings so normal runs stay clean.
func setupLogger(verbose, quiet bool) zerolog.Logger {
	level := zerolog.WarnLevel
	switch {
	case quiet:
		level = zerolog.Disabled
	case verbose:
		level = zerolog.DebugLevel
	}

	var out io.Writer = zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
