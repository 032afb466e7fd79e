package hexfile

import "github.com/moffa90/go-flashcrc/sink"

// Logger is an optional logging interface, satisfied by the same loggers the
// transfer package accepts.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// Config holds parser settings.
type Config struct {
	// Logger receives per-record diagnostics (optional)
	Logger Logger

	// Strict turns malformed lines into errors instead of skipping them
	Strict bool

	// Store receives segment payloads. Nil means a new in-memory store
	// owned by the returned Image.
	Store sink.Store
}

// Option is a functional option for configuring Parse.
type Option func(*Config)

// WithLogger sets a logger for parse diagnostics.
//
// Example:
//
//	img, err := hexfile.ParseFile("app.hex", eng, hexfile.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithStrict makes the first malformed line abort the parse.
func WithStrict(strict bool) Option {
	return func(c *Config) {
		c.Strict = strict
	}
}

// WithStore writes segment payloads to store. The caller keeps ownership of
// store; Image.Close only removes the payloads it created.
//
// Example:
//
//	store, _ := sink.NewFileStore("/var/tmp/segments")
//	img, err := hexfile.ParseFile("app.hex", eng, hexfile.WithStore(store))
func WithStore(store sink.Store) Option {
	return func(c *Config) {
		c.Store = store
	}
}
