package crc

import "hash"

// Engine binds a validated Config to its lookup table.
// An Engine is immutable and safe for concurrent use; digests returned by
// New are not.
type Engine struct {
	config Config
	table  *Table
}

// New validates cfg and builds its table.
//
// Example:
//
//	eng, err := crc.New(crc.Config{Width: 16, Polynomial: 0x1021, InitialValue: 0xFFFF})
func New(cfg Config) (*Engine, error) {
	t, err := BuildTable(cfg)
	if err != nil {
		return nil, err
	}
	return &Engine{config: cfg, table: t}, nil
}

// MustNew is like New but panics on an invalid config.
// Intended for package-level presets.
func MustNew(cfg Config) *Engine {
	eng, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return eng
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Table returns the engine's lookup table.
func (e *Engine) Table() *Table {
	return e.table
}

// Checksum returns the left-justified CRC of data.
func (e *Engine) Checksum(data []byte) uint32 {
	return finalize(e.config, update(e.config, e.table, e.config.InitialValue, data))
}

// New returns a streaming digest for this engine.
func (e *Engine) New() hash.Hash32 {
	return &digest{engine: e, reg: e.config.InitialValue}
}

// digest represents the partial evaluation of a checksum.
type digest struct {
	engine *Engine
	reg    uint32
}

func (d *digest) Size() int {
	return 4
}

func (d *digest) BlockSize() int {
	return 1
}

func (d *digest) Reset() {
	d.reg = d.engine.config.InitialValue
}

func (d *digest) Write(p []byte) (int, error) {
	d.reg = update(d.engine.config, d.engine.table, d.reg, p)
	return len(p), nil
}

// Sum32 returns the left-justified checksum of everything written so far.
func (d *digest) Sum32() uint32 {
	return finalize(d.engine.config, d.reg)
}

// Sum appends the big-endian checksum to in.
func (d *digest) Sum(in []byte) []byte {
	s := d.Sum32()
	return append(in, byte(s>>24), byte(s>>16), byte(s>>8), byte(s))
}
