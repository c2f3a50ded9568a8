// Package logging provides the logger capability passed to components at
// construction, so nothing depends on a process-wide singleton.
package logging

import "log"

// Logger is the minimal logging surface components receive.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type stdLogger struct {
	l *log.Logger
}

// New returns a Logger backed by the given stdlib logger.
// Pass log.Default() in main.
func New(l *log.Logger) Logger {
	return &stdLogger{l: l}
}

func (s *stdLogger) Infof(format string, args ...any)  { s.l.Printf("[INFO] "+format, args...) }
func (s *stdLogger) Warnf(format string, args ...any)  { s.l.Printf("[WARN] "+format, args...) }
func (s *stdLogger) Errorf(format string, args ...any) { s.l.Printf("[ERROR] "+format, args...) }

type nopLogger struct{}

// Nop returns a Logger that discards everything. Used in tests.
func Nop() Logger { return nopLogger{} }

func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}
