package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// New builds the process logger. Any format other than json or logfmt is text.
func New(w io.Writer, debug bool, format string) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}

	formatter := log.TextFormatter
	switch format {
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           level,
		Formatter:       formatter,
	})
}

// Setup routes the default slog logger through charmbracelet/log on stderr.
func Setup(debug bool, format string) *log.Logger {
	logger := New(os.Stderr, debug, format)
	slog.SetDefault(slog.New(logger))
	return logger
}
