package crc

import (
	"sort"
	"strings"
)

// Common CRC variants. Check values are the CRC of the ASCII string
// "123456789", left-justified.
var (
	// CRC32 is CRC-32/ISO-HDLC (check 0xCBF43926)
	CRC32 = Config{Width: 32, Polynomial: 0x04C11DB7, InitialValue: 0xFFFFFFFF, FinalXOR: 0xFFFFFFFF, ReflectInput: true, ReflectOutput: true}

	// CRC32BZIP2 is CRC-32/BZIP2 (check 0xFC891918)
	CRC32BZIP2 = Config{Width: 32, Polynomial: 0x04C11DB7, InitialValue: 0xFFFFFFFF, FinalXOR: 0xFFFFFFFF}

	// CRC32C is CRC-32/ISCSI, Castagnoli (check 0xE3069283)
	CRC32C = Config{Width: 32, Polynomial: 0x1EDC6F41, InitialValue: 0xFFFFFFFF, FinalXOR: 0xFFFFFFFF, ReflectInput: true, ReflectOutput: true}

	// CRC32D is CRC-32/BASE91-D (check 0x87315576)
	CRC32D = Config{Width: 32, Polynomial: 0xA833982B, InitialValue: 0xFFFFFFFF, FinalXOR: 0xFFFFFFFF, ReflectInput: true, ReflectOutput: true}

	// CRC16CCITTFalse is CRC-16/IBM-3740 (check 0x29B1)
	CRC16CCITTFalse = Config{Width: 16, Polynomial: 0x1021, InitialValue: 0xFFFF}

	// CRC16ARC is CRC-16/ARC (check 0xBB3D)
	CRC16ARC = Config{Width: 16, Polynomial: 0x8005, ReflectInput: true, ReflectOutput: true}

	// CRC16AugCCITT is CRC-16/SPI-FUJITSU (check 0xE5CC)
	CRC16AugCCITT = Config{Width: 16, Polynomial: 0x1021, InitialValue: 0x1D0F}

	// CRC16Buypass is CRC-16/UMTS (check 0xFEE8)
	CRC16Buypass = Config{Width: 16, Polynomial: 0x8005}

	// CRC8 is CRC-8/SMBUS (check 0xF4)
	CRC8 = Config{Width: 8, Polynomial: 0x07}

	// CRC8CDMA2000 is CRC-8/CDMA2000 (check 0xDA)
	CRC8CDMA2000 = Config{Width: 8, Polynomial: 0x9B, InitialValue: 0xFF}

	// CRC8DARC is CRC-8/DARC (check 0x15)
	CRC8DARC = Config{Width: 8, Polynomial: 0x39, ReflectInput: true, ReflectOutput: true}

	// CRC8DVBS2 is CRC-8/DVB-S2 (check 0xBC)
	CRC8DVBS2 = Config{Width: 8, Polynomial: 0xD5}
)

// DefaultConfig returns the parameters assumed for keys missing from a
// spec file: CRC-32 polynomial, zero preset, no reflection, no XOR-out.
func DefaultConfig() Config {
	return Config{Width: Width32, Polynomial: 0x04C11DB7}
}

// presets maps lower-case names to configs for config files and flags.
var presets = map[string]Config{
	"crc32":             CRC32,
	"crc32-bzip2":       CRC32BZIP2,
	"crc32c":            CRC32C,
	"crc32d":            CRC32D,
	"crc16-ccitt-false": CRC16CCITTFalse,
	"crc16-arc":         CRC16ARC,
	"crc16-aug-ccitt":   CRC16AugCCITT,
	"crc16-buypass":     CRC16Buypass,
	"crc8":              CRC8,
	"crc8-cdma2000":     CRC8CDMA2000,
	"crc8-darc":         CRC8DARC,
	"crc8-dvb-s2":       CRC8DVBS2,
}

// Preset returns the config registered under name (case-insensitive).
func Preset(name string) (Config, bool) {
	cfg, ok := presets[strings.ToLower(name)]
	return cfg, ok
}

// PresetNames returns the registered preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
