package crc

import "math/bits"

// Reflect8 reverses the bit order of an 8-bit value (0b11001001 → 0b10010011).
func Reflect8(v uint8) uint8 {
	return bits.Reverse8(v)
}

// Reflect16 reverses the bit order of a 16-bit value.
func Reflect16(v uint16) uint16 {
	return bits.Reverse16(v)
}

// Reflect32 reverses the bit order of a 32-bit value.
func Reflect32(v uint32) uint32 {
	return bits.Reverse32(v)
}

// reflect reverses the low width bits of v.
func reflect(v uint32, width int) uint32 {
	switch width {
	case Width8:
		return uint32(Reflect8(uint8(v)))
	case Width16:
		return uint32(Reflect16(uint16(v)))
	default:
		return Reflect32(v)
	}
}

// Checksum computes the CRC of data for cfg using table t and returns it
// left-justified into 32 bits. It returns ErrStaleTable if t was not built
// for cfg's width and polynomial.
//
// Example:
//
//	t, _ := crc.BuildTable(crc.CRC32)
//	sum, err := crc.Checksum(crc.CRC32, t, []byte("123456789"))
func Checksum(cfg Config, t *Table, data []byte) (uint32, error) {
	if !t.Matches(cfg) {
		return 0, ErrStaleTable
	}
	reg := update(cfg, t, cfg.InitialValue, data)
	return finalize(cfg, reg), nil
}

// update runs the table-driven register over data.
// The top byte of the register is combined with the input byte to index the
// table, the register shifts left one byte and the entry is XORed in.
func update(cfg Config, t *Table, reg uint32, data []byte) uint32 {
	shift := uint(cfg.Width - BitsPerByte)
	mask := cfg.mask()

	for _, b := range data {
		if cfg.ReflectInput {
			b = Reflect8(b)
		}
		idx := byte(reg>>shift) ^ b
		reg = ((reg << BitsPerByte) ^ t.entries[idx]) & mask
	}
	return reg
}

// finalize applies output reflection and XOR-out, then left-justifies.
func finalize(cfg Config, reg uint32) uint32 {
	if cfg.ReflectOutput {
		reg = reflect(reg, cfg.Width)
	}
	reg ^= cfg.FinalXOR
	reg &= cfg.mask()
	return reg << uint(32-cfg.Width)
}

// Justify left-justifies a raw width-bit CRC value into 32 bits.
func Justify(v uint32, width int) uint32 {
	return v << uint(32-width)
}
