package crc

import "fmt"

// Supported register widths.
const (
	Width8  = 8
	Width16 = 16
	Width32 = 32
)

// BitsPerByte is the number of bits per byte
const BitsPerByte = 8

// Config describes one CRC variant. It is a plain value and is never
// modified after construction.
type Config struct {
	// Width is the register width in bits (8, 16 or 32)
	Width int

	// Polynomial is the generator polynomial without the implicit top bit
	Polynomial uint32

	// InitialValue is the register preset
	InitialValue uint32

	// FinalXOR is XORed into the register after reflection
	FinalXOR uint32

	// ReflectInput reverses the bit order of every input byte
	ReflectInput bool

	// ReflectOutput reverses the bit order of the final register
	ReflectOutput bool
}

// Validate checks the width and that every parameter fits in it.
func (c Config) Validate() error {
	switch c.Width {
	case Width8, Width16, Width32:
	default:
		return &ConfigError{Reason: fmt.Sprintf("unsupported width %d (must be 8, 16 or 32)", c.Width)}
	}

	mask := c.mask()
	if c.Polynomial&^mask != 0 {
		return &ConfigError{Reason: fmt.Sprintf("polynomial 0x%X exceeds %d bits", c.Polynomial, c.Width)}
	}
	if c.InitialValue&^mask != 0 {
		return &ConfigError{Reason: fmt.Sprintf("initial value 0x%X exceeds %d bits", c.InitialValue, c.Width)}
	}
	if c.FinalXOR&^mask != 0 {
		return &ConfigError{Reason: fmt.Sprintf("final XOR value 0x%X exceeds %d bits", c.FinalXOR, c.Width)}
	}
	return nil
}

// mask returns a value with the low Width bits set.
func (c Config) mask() uint32 {
	if c.Width >= 32 {
		return 0xFFFFFFFF
	}
	return uint32(1)<<uint(c.Width) - 1
}

// topBit returns the most significant bit of the register.
func (c Config) topBit() uint32 {
	return uint32(1) << uint(c.Width-1)
}

// String renders the config the way it is logged.
func (c Config) String() string {
	digits := c.Width / 4
	return fmt.Sprintf("{Width:%d Poly:0x%0*X Init:0x%0*X XorOut:0x%0*X RefIn:%t RefOut:%t}",
		c.Width, digits, c.Polynomial, digits, c.InitialValue, digits, c.FinalXOR,
		c.ReflectInput, c.ReflectOutput)
}
