// Package logging provides the loggers the fileref command writes its
// diagnostics through.
//
// Available implementations:
//   - ConsoleLogger: Writes formatted messages to a writer (stderr by default)
//   - NullLogger: Discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging

// Logger is the logging surface the command depends on.
type Logger interface {
	Verbose(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}
