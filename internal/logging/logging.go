package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where and how verbosely log entries are written.
type Options struct {
	Level string
	// File switches output from stderr to a size-rotated log file.
	File       string
	MaxSizeMB  int
	MaxBackups int
}

// New builds a logger from opts. An unknown level falls back to info.
func New(opts Options) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	lvl, err := logrus.ParseLevel(strings.TrimSpace(opts.Level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if opts.File == "" {
		l.SetOutput(os.Stderr)
		return l
	}

	maxSize := opts.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 16
	}
	l.SetOutput(&lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    maxSize,
		MaxBackups: opts.MaxBackups,
		Compress:   true,
	})
	return l
}

// Discard returns a logger that drops everything. Library packages use it
// when the caller did not inject one.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}
