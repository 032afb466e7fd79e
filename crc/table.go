package crc

// TableSize is the number of entries in a lookup table, one per byte value.
const TableSize = 256

// Table is a byte-wise CRC lookup table. It remembers the width and
// polynomial it was built from so stale reuse can be detected.
type Table struct {
	width      int
	polynomial uint32
	entries    [TableSize]uint32
}

// BuildTable computes the lookup table for cfg. Only Width and Polynomial
// are consulted; the initial value, reflection and XOR-out settings do not
// affect the table.
func BuildTable(cfg Config) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	t := &Table{width: cfg.Width, polynomial: cfg.Polynomial}
	shift := uint(cfg.Width - BitsPerByte)
	top := cfg.topBit()
	mask := cfg.mask()

	for dividend := 0; dividend < TableSize; dividend++ {
		// Dividend byte goes into the MSB of the register
		reg := uint32(dividend) << shift
		for bit := 0; bit < BitsPerByte; bit++ {
			if reg&top != 0 {
				reg = (reg << 1) ^ cfg.Polynomial
			} else {
				reg <<= 1
			}
		}
		t.entries[dividend] = reg & mask
	}

	return t, nil
}

// Entry returns the table value for byte b.
func (t *Table) Entry(b byte) uint32 {
	return t.entries[b]
}

// Width returns the register width the table was built for.
func (t *Table) Width() int {
	return t.width
}

// Polynomial returns the polynomial the table was built from.
func (t *Table) Polynomial() uint32 {
	return t.polynomial
}

// Matches reports whether t is valid for cfg.
func (t *Table) Matches(cfg Config) bool {
	return t != nil && t.width == cfg.Width && t.polynomial == cfg.Polynomial
}

// Entries returns a copy of all table values.
func (t *Table) Entries() [TableSize]uint32 {
	return t.entries
}
