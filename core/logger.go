package core

// Logger is any leveled logger the services can report through.
// Impls may pick structured args out of `args` (eg. a user.User sets the
// reported person on rollbar).
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
