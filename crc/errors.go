package crc

import (
	"errors"
	"fmt"
)

// ErrStaleTable is returned when a table built for one width/polynomial pair
// is used with a config that names another.
var ErrStaleTable = errors.New("crc table does not match config")

// ConfigError reports an unusable CRC configuration or spec file.
type ConfigError struct {
	// Source is the spec file path, empty for in-memory configs
	Source string

	// Line is the spec file line number, 0 when not applicable
	Line int

	// Reason describes what is wrong
	Reason string

	// Err is the underlying error, if any
	Err error
}

func (e *ConfigError) Error() string {
	msg := "crc config"
	if e.Source != "" {
		msg += " " + e.Source
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" line %d", e.Line)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IsConfigError returns true if the error is a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
