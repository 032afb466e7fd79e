// Package metrics counts parse and transfer activity for export in the
// node_exporter textfile format.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus metrics for the tool
type Metrics struct {
	registry *prometheus.Registry

	imagesParsed    *prometheus.CounterVec
	segmentsTotal   *prometheus.CounterVec
	segmentBytes    prometheus.Counter
	recordsSkipped  prometheus.Counter
	chunksServed    prometheus.Counter
	payloadServed   prometheus.Counter
	lastImageLength prometheus.Gauge
}

// New creates the metrics on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		imagesParsed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flashcrc_images_parsed_total",
				Help: "Total number of images parsed",
			},
			[]string{"format", "status"},
		),
		segmentsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flashcrc_segments_total",
				Help: "Total number of segments extracted",
			},
			[]string{"format"},
		),
		segmentBytes: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "flashcrc_segment_bytes_total",
				Help: "Total payload bytes across extracted segments",
			},
		),
		recordsSkipped: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "flashcrc_records_skipped_total",
				Help: "Total number of malformed records skipped",
			},
		),
		chunksServed: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "flashcrc_chunks_served_total",
				Help: "Total number of transfer chunks produced",
			},
		),
		payloadServed: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "flashcrc_payload_bytes_served_total",
				Help: "Total payload bytes carried by transfer chunks",
			},
		),
		lastImageLength: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "flashcrc_last_image_segments",
				Help: "Number of segments in the most recently parsed image",
			},
		),
	}
}

// Registry returns the registry holding the metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordParse records the outcome of one parse.
func (m *Metrics) RecordParse(format string, segments int, bytes uint64, skipped int, success bool) {
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.imagesParsed.WithLabelValues(format, status).Inc()
	if !success {
		return
	}
	m.segmentsTotal.WithLabelValues(format).Add(float64(segments))
	m.segmentBytes.Add(float64(bytes))
	m.recordsSkipped.Add(float64(skipped))
	m.lastImageLength.Set(float64(segments))
}

// RecordChunk records one chunk carrying payload bytes.
func (m *Metrics) RecordChunk(payload int) {
	m.chunksServed.Inc()
	m.payloadServed.Add(float64(payload))
}

// WriteTextfile writes all metrics to path in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
