package protocol

import (
	"bytes"
	"testing"
)

func TestBuildRequestDownload(t *testing.T) {
	tests := []struct {
		name    string
		address uint32
		size    uint32
		want    []byte
	}{
		{
			name:    "flash block",
			address: 0x08000000,
			size:    0x00001000,
			want:    []byte{0x34, 0x00, 0x44, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10, 0x00},
		},
		{
			name:    "zero address",
			address: 0,
			size:    16,
			want:    []byte{0x34, 0x00, 0x44, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10},
		},
		{
			name:    "all ones",
			address: 0xFFFFFFFF,
			size:    0xFFFFFFFF,
			want:    []byte{0x34, 0x00, 0x44, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildRequestDownload(tt.address, tt.size)
			if len(got) != RequestDownloadSize {
				t.Fatalf("len = %d, want %d", len(got), RequestDownloadSize)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("BuildRequestDownload() = % X, want % X", got, tt.want)
			}
		})
	}
}

func TestBuildCheckMemory(t *testing.T) {
	got := BuildCheckMemory(0xCBF43926)
	want := []byte{0x31, 0x01, 0x02, 0x02, 0xCB, 0xF4, 0x39, 0x26}

	if len(got) != CheckMemorySize {
		t.Fatalf("len = %d, want %d", len(got), CheckMemorySize)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("BuildCheckMemory() = % X, want % X", got, want)
	}
}

func TestBuildTransferData(t *testing.T) {
	hdr := TransferDataHeader(0x01)
	if hdr != [2]byte{0x36, 0x01} {
		t.Errorf("TransferDataHeader() = % X", hdr)
	}

	got := BuildTransferData(0xFF, []byte{0xDE, 0xAD})
	want := []byte{0x36, 0xFF, 0xDE, 0xAD}
	if !bytes.Equal(got, want) {
		t.Errorf("BuildTransferData() = % X, want % X", got, want)
	}

	if got := BuildTransferData(0x00, nil); !bytes.Equal(got, []byte{0x36, 0x00}) {
		t.Errorf("BuildTransferData(empty) = % X", got)
	}
}

func TestBuildSegmentRecords(t *testing.T) {
	recs := BuildSegmentRecords(0x1000, 8, 0xF4000000)

	if !bytes.Equal(recs.RequestDownload, BuildRequestDownload(0x1000, 8)) {
		t.Errorf("RequestDownload = % X", recs.RequestDownload)
	}
	if !bytes.Equal(recs.TransferExit, []byte{SIDRequestTransferExit}) {
		t.Errorf("TransferExit = % X", recs.TransferExit)
	}
	if !bytes.Equal(recs.CheckMemory, []byte{0x31, 0x01, 0x02, 0x02, 0xF4, 0x00, 0x00, 0x00}) {
		t.Errorf("CheckMemory = % X", recs.CheckMemory)
	}
}

func BenchmarkBuildRequestDownload(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = BuildRequestDownload(0x08000000, uint32(i))
	}
}
