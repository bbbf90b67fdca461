package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the process-wide logger, replaced by Configure
var Logger *logrus.Logger

func init() {
	Logger = New(Options{Level: os.Getenv("LOG_LEVEL")})
}

// Options controls logger construction
type Options struct {
	Level string
	// Output defaults to stdout
	Output io.Writer
	// File enables an additional rotated log file when non-empty
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New builds a JSON logger writing to opts.Output and, optionally, a rotated file
func New(opts Options) *logrus.Logger {
	l := logrus.New()

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	writers := []io.Writer{out}
	if opts.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   opts.File,
			LocalTime:  true,
			Compress:   true,
			MaxSize:    orDefault(opts.MaxSizeMB, 100),
			MaxBackups: orDefault(opts.MaxBackups, 3),
			MaxAge:     orDefault(opts.MaxAgeDays, 7),
		})
	}
	l.SetOutput(io.MultiWriter(writers...))
	l.SetLevel(ParseLevel(opts.Level))

	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	return l
}

// ParseLevel maps a level name to a logrus level, defaulting to Info
func ParseLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// Configure replaces the package logger
func Configure(opts Options) *logrus.Logger {
	Logger = New(opts)
	return Logger
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// WithFields starts an entry on the package logger
func WithFields(fields logrus.Fields) *logrus.Entry {
	return Logger.WithFields(fields)
}
