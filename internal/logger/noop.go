package logger

import "time"

// NoopLogger is a logger that discards all messages. Useful in tests.
type NoopLogger struct{}

// NewNoop returns a logger that does nothing.
func NewNoop() Interface { return &NoopLogger{} }

func (n *NoopLogger) Debug(string, ...any)                 {}
func (n *NoopLogger) Info(string, ...any)                  {}
func (n *NoopLogger) Warn(string, ...any)                  {}
func (n *NoopLogger) Error(string, ...any)                 {}
func (n *NoopLogger) Fatal(string, ...any)                 {}
func (n *NoopLogger) With(...any) Interface                { return n }
func (n *NoopLogger) WithComponent(string) Interface       { return n }
func (n *NoopLogger) WithSite(string) Interface            { return n }
func (n *NoopLogger) WithRunID(string) Interface           { return n }
func (n *NoopLogger) WithDuration(time.Duration) Interface { return n }
func (n *NoopLogger) WithError(error) Interface            { return n }
