// Package logger is the leveled logger used by the binaries and services.
package logger

import (
	"io"
	"log"
)

type Logger interface {
	Infof(format string, v ...any)
	Errorf(format string, v ...any)
}

type stdLogger struct {
	l *log.Logger
}

// New returns a Logger writing to w with the standard log flags.
func New(w io.Writer) Logger { return &stdLogger{l: log.New(w, "", log.LstdFlags)} }

// Discard returns a Logger that drops everything.
func Discard() Logger { return New(io.Discard) }

func (s *stdLogger) Infof(format string, v ...any)  { s.l.Printf("[INFO] "+format, v...) }
func (s *stdLogger) Errorf(format string, v ...any) { s.l.Printf("[ERROR] "+format, v...) }
