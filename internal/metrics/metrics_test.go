package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.RecordParse("intel-hex", 2, 48, 1, true)
	m.RecordParse("s-record", 0, 0, 0, false)
	m.RecordChunk(10)
	m.RecordChunk(6)

	path := filepath.Join(t.TempDir(), "flashcrc.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, `flashcrc_images_parsed_total{format="intel-hex",status="success"} 1`)
	assert.Contains(t, out, `flashcrc_images_parsed_total{format="s-record",status="error"} 1`)
	assert.Contains(t, out, `flashcrc_segments_total{format="intel-hex"} 2`)
	assert.Contains(t, out, "flashcrc_segment_bytes_total 48")
	assert.Contains(t, out, "flashcrc_records_skipped_total 1")
	assert.Contains(t, out, "flashcrc_chunks_served_total 2")
	assert.Contains(t, out, "flashcrc_payload_bytes_served_total 16")
	assert.Contains(t, out, "flashcrc_last_image_segments 2")
}

func TestRegistriesAreIndependent(t *testing.T) {
	a := New()
	b := New()
	assert.NotSame(t, a.Registry(), b.Registry())

	a.RecordChunk(1)
	families, err := b.Registry().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == "flashcrc_chunks_served_total" {
			assert.Equal(t, float64(0), mf.GetMetric()[0].GetCounter().GetValue())
		}
	}
}
