package hexfile

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// DecodeHexPairs converts a string of ASCII hex pairs ("0A1b") into bytes.
// Upper and lower case digits are accepted. An odd length or a non-hex
// character is an error.
func DecodeHexPairs(s string) ([]byte, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex data: %w", err)
	}
	return data, nil
}

// PutUint32 writes v into the first 4 bytes of dst, most significant first.
func PutUint32(dst []byte, v uint32) {
	binary.BigEndian.PutUint32(dst, v)
}

// Uint32Bytes returns v as 4 big-endian bytes.
func Uint32Bytes(v uint32) [4]byte {
	var b [4]byte
	PutUint32(b[:], v)
	return b
}

// beUint returns the big-endian value of up to 4 bytes.
func beUint(b []byte) uint32 {
	var v uint32
	for _, x := range b {
		v = v<<8 | uint32(x)
	}
	return v
}
