// Package logging decouples the application from a concrete logging
// framework. Production code runs on the logrus adapter; tests use the
// recording logger.
package logging

// Logger is the structured logging interface used throughout the pipeline.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// Fatal logs at fatal level and exits the process.
	Fatal(msg string, fields ...Field)

	// WithError returns a derived logger with an error attached.
	WithError(err error) Logger

	// WithField returns a derived logger with one field attached.
	WithField(key string, value interface{}) Logger

	// WithFields returns a derived logger with multiple fields attached.
	WithFields(fields ...Field) Logger
}

// Field is a key-value pair attached to a log message.
type Field struct {
	Key   string
	Value interface{}
}

// F is shorthand for constructing a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}
