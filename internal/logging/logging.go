package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// New builds the application logger. Unknown levels fall back to info and
// unknown formats to console output.
func New(output io.Writer, level string, format string) zerolog.Logger {
	if output == nil {
		output = os.Stdout
	}

	parsedLevel, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || parsedLevel == zerolog.NoLevel {
		parsedLevel = zerolog.InfoLevel
	}

	writer := output
	if strings.ToLower(strings.TrimSpace(format)) != FormatJSON {
		writer = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	return zerolog.New(writer).Level(parsedLevel).With().Timestamp().Logger()
}
