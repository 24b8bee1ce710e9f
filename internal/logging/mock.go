package logging

// MockLogger records log entries for assertion in tests. Derived loggers
// returned by the With* methods share the same entry sink.
type MockLogger struct {
	entries *[]Entry
	err     error
	fields  []Field
}

// Entry is one captured log call.
type Entry struct {
	Level   string
	Message string
	Fields  []Field
	Error   error
}

// NewMockLogger builds a recording logger.
func NewMockLogger() *MockLogger {
	entries := make([]Entry, 0)
	return &MockLogger{entries: &entries}
}

// Entries returns everything logged so far, including via derived loggers.
func (m *MockLogger) Entries() []Entry {
	return *m.entries
}

// HasMessage reports whether any entry carries the given message.
func (m *MockLogger) HasMessage(msg string) bool {
	for _, e := range *m.entries {
		if e.Message == msg {
			return true
		}
	}
	return false
}

func (m *MockLogger) record(level, msg string, fields []Field) {
	all := append(append([]Field{}, m.fields...), fields...)
	*m.entries = append(*m.entries, Entry{
		Level:   level,
		Message: msg,
		Fields:  all,
		Error:   m.err,
	})
}

func (m *MockLogger) Debug(msg string, fields ...Field) { m.record("DEBUG", msg, fields) }
func (m *MockLogger) Info(msg string, fields ...Field)  { m.record("INFO", msg, fields) }
func (m *MockLogger) Warn(msg string, fields ...Field)  { m.record("WARN", msg, fields) }
func (m *MockLogger) Error(msg string, fields ...Field) { m.record("ERROR", msg, fields) }

// Fatal records the entry but does not exit, so tests can assert on it.
func (m *MockLogger) Fatal(msg string, fields ...Field) { m.record("FATAL", msg, fields) }

func (m *MockLogger) WithError(err error) Logger {
	return &MockLogger{entries: m.entries, err: err, fields: m.fields}
}

func (m *MockLogger) WithField(key string, value interface{}) Logger {
	return m.WithFields(Field{Key: key, Value: value})
}

func (m *MockLogger) WithFields(fields ...Field) Logger {
	combined := append(append([]Field{}, m.fields...), fields...)
	return &MockLogger{entries: m.entries, err: m.err, fields: combined}
}
