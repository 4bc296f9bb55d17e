package core

// Logger is the application logger.
// args may contain errors and LogFields extras.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// LogFields are extra key/values attached to a log entry (request ID, entity IDs, ...).
type LogFields map[string]interface{}
