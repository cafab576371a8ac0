package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	analysesCreatedTotal   atomic.Uint64
	analysesRejectedTotal  atomic.Uint64
	confidenceUpdatesTotal atomic.Uint64
	historyDroppedTotal    atomic.Uint64
	exportsTotal           atomic.Uint64

	analysisDuration = newHistogram([]float64{0.5, 1, 2, 5, 10, 25, 50, 100, 250})
)

// IncAnalysesCreated increments the created counter.
func IncAnalysesCreated() {
	analysesCreatedTotal.Add(1)
}

// IncAnalysesRejected increments the counter of analyze calls rejected by validation.
func IncAnalysesRejected() {
	analysesRejectedTotal.Add(1)
}

// IncConfidenceUpdates increments the skill confidence toggle counter.
func IncConfidenceUpdates() {
	confidenceUpdatesTotal.Add(1)
}

// AddHistoryDropped adds n unrecoverable history records.
func AddHistoryDropped(n int) {
	if n > 0 {
		historyDroppedTotal.Add(uint64(n))
	}
}

// IncExports increments the rendered report counter.
func IncExports() {
	exportsTotal.Add(1)
}

// ObserveAnalysisDurationMs records an analysis duration in milliseconds.
func ObserveAnalysisDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	analysisDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "analyses_created_total", "Total analyses created", analysesCreatedTotal.Load())
	writeCounter(&buf, "analyses_rejected_total", "Total analyze requests rejected by validation", analysesRejectedTotal.Load())
	writeCounter(&buf, "confidence_updates_total", "Total skill confidence updates", confidenceUpdatesTotal.Load())
	writeCounter(&buf, "history_records_dropped_total", "Total unrecoverable history records dropped", historyDroppedTotal.Load())
	writeCounter(&buf, "exports_total", "Total rendered export reports", exportsTotal.Load())
	writeHistogram(&buf, "analysis_duration_ms", "Analysis duration in milliseconds", analysisDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe counts value in the first bucket whose bound covers it; Render accumulates.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// SinceMillis returns the elapsed time since start in milliseconds.
func SinceMillis(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}
