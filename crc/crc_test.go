package crc

import (
	"bytes"
	"encoding/hex"
	"hash/crc32"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkData is "123456789" in the hex-pair form used by image fixtures.
const checkData = "313233343536373839"

func decodeCheckData(t testing.TB) []byte {
	data, err := hex.DecodeString(checkData)
	require.NoError(t, err)
	return data
}

func TestChecksumKnownVectors(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		expected uint32
	}{
		{name: "CRC-32", config: CRC32, expected: 0xCBF43926},
		{name: "CRC-32/BZIP2", config: CRC32BZIP2, expected: 0xFC891918},
		{name: "CRC-32C", config: CRC32C, expected: 0xE3069283},
		{name: "CRC-32D", config: CRC32D, expected: 0x87315576},
		{name: "CRC-16/CCITT-FALSE", config: CRC16CCITTFalse, expected: 0x29B10000},
		{name: "CRC-16/ARC", config: CRC16ARC, expected: 0xBB3D0000},
		{name: "CRC-16/AUG-CCITT", config: CRC16AugCCITT, expected: 0xE5CC0000},
		{name: "CRC-16/BUYPASS", config: CRC16Buypass, expected: 0xFEE80000},
		{name: "CRC-8", config: CRC8, expected: 0xF4000000},
		{name: "CRC-8/CDMA2000", config: CRC8CDMA2000, expected: 0xDA000000},
		{name: "CRC-8/DARC", config: CRC8DARC, expected: 0x15000000},
		{name: "CRC-8/DVB-S2", config: CRC8DVBS2, expected: 0xBC000000},
	}

	data := decodeCheckData(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := BuildTable(tt.config)
			require.NoError(t, err)

			got, err := Checksum(tt.config, table, data)
			require.NoError(t, err)
			if got != tt.expected {
				t.Errorf("Checksum() = 0x%08X, want 0x%08X", got, tt.expected)
			}

			eng, err := New(tt.config)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, eng.Checksum(data))
		})
	}
}

func TestChecksumMatchesStdlib(t *testing.T) {
	payload := bytes.Repeat([]byte{0x00, 0x5A, 0xA5, 0xFF, 0x13}, 97)

	ieee := MustNew(CRC32)
	assert.Equal(t, crc32.ChecksumIEEE(payload), ieee.Checksum(payload))

	castagnoli := MustNew(CRC32C)
	assert.Equal(t, crc32.Checksum(payload, crc32.MakeTable(crc32.Castagnoli)), castagnoli.Checksum(payload))
}

func TestChecksumEmptyInput(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		expected uint32
	}{
		{
			name:     "init only",
			config:   Config{Width: 16, Polynomial: 0x1021, InitialValue: 0xFFFF},
			expected: 0xFFFF0000,
		},
		{
			name:     "xor out cancels init",
			config:   CRC32,
			expected: 0x00000000,
		},
		{
			name:     "reflected output",
			config:   Config{Width: 8, Polynomial: 0x07, InitialValue: 0x01, ReflectOutput: true},
			expected: 0x80000000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := MustNew(tt.config)
			if got := eng.Checksum(nil); got != tt.expected {
				t.Errorf("Checksum(nil) = 0x%08X, want 0x%08X", got, tt.expected)
			}
		})
	}
}

func TestChecksumStaleTable(t *testing.T) {
	table, err := BuildTable(CRC16CCITTFalse)
	require.NoError(t, err)

	_, err = Checksum(CRC16ARC, table, []byte{0x01})
	assert.ErrorIs(t, err, ErrStaleTable)

	_, err = Checksum(CRC32, table, []byte{0x01})
	assert.ErrorIs(t, err, ErrStaleTable)

	_, err = Checksum(CRC16AugCCITT, table, []byte{0x01})
	assert.NoError(t, err, "same width and polynomial must reuse the table")
}

func TestBuildTable(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{name: "8-bit", config: Config{Width: 8, Polynomial: 0x07}},
		{name: "16-bit", config: Config{Width: 16, Polynomial: 0x1021}},
		{name: "32-bit", config: Config{Width: 32, Polynomial: 0x04C11DB7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := BuildTable(tt.config)
			require.NoError(t, err)

			assert.Equal(t, uint32(0), table.Entry(0))
			assert.Equal(t, tt.config.Polynomial, table.Entry(1), "entry 1 is the polynomial itself")
			assert.Equal(t, tt.config.Width, table.Width())
			assert.True(t, table.Matches(tt.config))
		})
	}
}

func TestBuildTableIsPure(t *testing.T) {
	for _, width := range []int{8, 16, 32} {
		base := Config{Width: width, Polynomial: 0x07}
		variant := base
		variant.InitialValue = 0x5A
		variant.FinalXOR = 0x3C
		variant.ReflectInput = true
		variant.ReflectOutput = true

		a, err := BuildTable(base)
		require.NoError(t, err)
		b, err := BuildTable(variant)
		require.NoError(t, err)
		c, err := BuildTable(base)
		require.NoError(t, err)

		assert.Equal(t, a.Entries(), b.Entries(), "width %d: table must ignore init/reflect/xor", width)
		assert.Equal(t, a.Entries(), c.Entries(), "width %d: table must be deterministic", width)
	}
}

func TestBuildTableInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		errMsg string
	}{
		{name: "zero width", config: Config{}, errMsg: "unsupported width 0"},
		{name: "width 12", config: Config{Width: 12, Polynomial: 0x80F}, errMsg: "unsupported width 12"},
		{name: "polynomial too wide", config: Config{Width: 8, Polynomial: 0x107}, errMsg: "polynomial"},
		{name: "init too wide", config: Config{Width: 16, Polynomial: 0x1021, InitialValue: 0x10000}, errMsg: "initial value"},
		{name: "xor too wide", config: Config{Width: 8, Polynomial: 0x07, FinalXOR: 0x100}, errMsg: "final XOR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildTable(tt.config)
			require.Error(t, err)
			assert.True(t, IsConfigError(err))
			assert.Contains(t, err.Error(), tt.errMsg)

			_, err = New(tt.config)
			assert.Error(t, err)
		})
	}
}

func TestReflect(t *testing.T) {
	assert.Equal(t, uint8(0x77), Reflect8(0xEE))
	assert.Equal(t, uint8(0x93), Reflect8(0xC9))
	assert.Equal(t, uint16(0x7777), Reflect16(0xEEEE))
	assert.Equal(t, uint32(0x77777777), Reflect32(0xEEEEEEEE))
	assert.Equal(t, uint32(0x80000000), Reflect32(0x00000001))
}

func TestReflectRoundTrip(t *testing.T) {
	for v := 0; v < 256; v++ {
		if got := Reflect8(Reflect8(uint8(v))); got != uint8(v) {
			t.Fatalf("Reflect8(Reflect8(0x%02X)) = 0x%02X", v, got)
		}
	}
	for v := 0; v < 1<<16; v += 7 {
		if got := Reflect16(Reflect16(uint16(v))); got != uint16(v) {
			t.Fatalf("Reflect16(Reflect16(0x%04X)) = 0x%04X", v, got)
		}
	}
	for _, v := range []uint32{0, 1, 0xDEADBEEF, 0x04C11DB7, 0xFFFFFFFF, 0x80000001} {
		assert.Equal(t, v, Reflect32(Reflect32(v)))
	}
}

func TestDigestStreaming(t *testing.T) {
	data := decodeCheckData(t)

	for _, cfg := range []Config{CRC32, CRC16ARC, CRC8DVBS2} {
		eng := MustNew(cfg)
		h := eng.New()

		// Write in uneven pieces
		_, err := io.Copy(h, iotestHalfReader(data))
		require.NoError(t, err)
		assert.Equal(t, eng.Checksum(data), h.Sum32())

		sum := h.Sum(nil)
		require.Len(t, sum, 4)
		assert.Equal(t, eng.Checksum(data), uint32(sum[0])<<24|uint32(sum[1])<<16|uint32(sum[2])<<8|uint32(sum[3]))

		h.Reset()
		assert.Equal(t, eng.Checksum(nil), h.Sum32())
	}
}

func TestJustify(t *testing.T) {
	assert.Equal(t, uint32(0xF4000000), Justify(0xF4, 8))
	assert.Equal(t, uint32(0x29B10000), Justify(0x29B1, 16))
	assert.Equal(t, uint32(0xCBF43926), Justify(0xCBF43926, 32))
}

// iotestHalfReader returns a reader that yields at most 2 bytes per Read.
func iotestHalfReader(data []byte) io.Reader {
	return &smallReader{data: data}
}

type smallReader struct {
	data []byte
}

func (r *smallReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	n := 2
	if n > len(p) {
		n = len(p)
	}
	if n > len(r.data) {
		n = len(r.data)
	}
	copy(p, r.data[:n])
	r.data = r.data[n:]
	return n, nil
}

func BenchmarkChecksum32(b *testing.B) {
	data := make([]byte, 4096)
	for i := range data {
		data[i] = byte(i)
	}
	eng := MustNew(CRC32)

	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		eng.Checksum(data)
	}
}

func BenchmarkBuildTable(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = BuildTable(CRC32)
	}
}

func TestPreset(t *testing.T) {
	cfg, ok := Preset("CRC32")
	require.True(t, ok)
	assert.Equal(t, CRC32, cfg)

	cfg, ok = Preset("crc8-dvb-s2")
	require.True(t, ok)
	assert.Equal(t, CRC8DVBS2, cfg)

	_, ok = Preset("crc64")
	assert.False(t, ok)

	names := PresetNames()
	assert.Len(t, names, 12)
	assert.IsIncreasing(t, names)
	for _, name := range names {
		cfg, ok := Preset(name)
		require.True(t, ok)
		assert.NoError(t, cfg.Validate(), name)
	}
}
