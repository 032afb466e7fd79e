package transfer

// Config holds the reader configuration.
type Config struct {
	// ProgressCallback is called after each chunk (optional)
	ProgressCallback ProgressCallback

	// Logger is used for logging operations (optional)
	Logger Logger

	// CorruptPayload adds one to every payload byte
	CorruptPayload bool
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{}
}

// Option is a functional option for configuring the Reader.
type Option func(*Config)

// WithProgressCallback sets a callback function to track chunk delivery.
//
// Example:
//
//	r := transfer.New(img,
//	    transfer.WithProgressCallback(func(p transfer.Progress) {
//	        fmt.Printf("%.1f%% complete\n", p.Percentage)
//	    }),
//	)
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithLogger sets a logger for reader operations.
//
// Example:
//
//	r := transfer.New(img, transfer.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithCorruptedPayload enables or disables payload corruption for fault
// injection tests against a receiver.
//
// Example:
//
//	r := transfer.New(img, transfer.WithCorruptedPayload(true))
func WithCorruptedPayload(corrupt bool) Option {
	return func(c *Config) {
		c.CorruptPayload = corrupt
	}
}
