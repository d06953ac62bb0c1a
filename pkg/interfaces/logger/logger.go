// Package logger defines the logging contract shared by every sink and
// service in the module. Hosts plug in their own backend; the zerolog
// adapter in this package covers the common case.
package logger

// Logger is the minimal leveled contract. With returns a derived logger
// carrying the given fields on every subsequent line.
type Logger interface {
	With(fields ...Field) Logger
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field is one structured key/value pair attached to a log line.
type Field struct {
	Key   string
	Value any
}

// Nop discards everything. Constructors fall back to it when a
// Dependencies struct carries no logger.
type Nop struct{}

var _ Logger = (*Nop)(nil)

func (n *Nop) With(fields ...Field) Logger { return n }

func (n *Nop) Debug(msg string, fields ...Field) {}

func (n *Nop) Info(msg string, fields ...Field) {}

func (n *Nop) Warn(msg string, fields ...Field) {}

func (n *Nop) Error(msg string, fields ...Field) {}
