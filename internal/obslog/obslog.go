// Package obslog provides a configurable logger for the driver and CLI.
//
// The root logger defined by default uses github.com/rs/zerolog with a
// console writer. The synthesis core (circuit, synth, internal/ttable)
// never imports this package; only driver and cmd/sboxgates do.
package obslog

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	logger = zerolog.New(output).With().Timestamp().Logger()

	if strings.HasSuffix(os.Args[0], ".test") {
		logger = zerolog.Nop()
	}
}

// SetOutput changes the output of the global logger.
func SetOutput(w io.Writer) {
	logger = logger.Output(w)
}

// SetLevel raises or lowers the global logger's minimum level.
func SetLevel(level zerolog.Level) {
	logger = logger.Level(level)
}

// Set allows a caller to override the global logger entirely.
func Set(l zerolog.Logger) {
	logger = l
}

// Disable silences the global logger.
func Disable() {
	logger = zerolog.Nop()
}

// Logger returns the shared logger.
func Logger() zerolog.Logger {
	return logger
}
