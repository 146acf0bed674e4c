package scoring

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/matzehuels/netscore/pkg/metrics"
)

// MetricResult is the outcome of one metric unit.
type MetricResult struct {
	Name    metrics.Name
	Score   metrics.Score
	Latency time.Duration
	Err     error // failure that made Score unavailable, if any
}

// Record is the evaluation result of one input URL.
type Record struct {
	URL             string
	NetScore        metrics.Score
	NetScoreLatency time.Duration
	Metrics         map[metrics.Name]MetricResult
}

// FailedRecord returns the record emitted when a URL cannot be resolved or its
// repository cannot be fetched: every score unavailable, every latency zero.
func FailedRecord(url string) Record {
	r := Record{
		URL:      url,
		NetScore: metrics.Unavailable(),
		Metrics:  make(map[metrics.Name]MetricResult, len(metrics.Names)),
	}
	for _, name := range metrics.Names {
		r.Metrics[name] = MetricResult{Name: name, Score: metrics.Unavailable()}
	}
	return r
}

// Metric returns the result for name. Missing results are unavailable.
func (r Record) Metric(name metrics.Name) MetricResult {
	if m, ok := r.Metrics[name]; ok {
		return m
	}
	return MetricResult{Name: name, Score: metrics.Unavailable()}
}

// Failed reports whether the net score is unavailable.
func (r Record) Failed() bool {
	return !r.NetScore.IsValid()
}

// Seconds converts d to seconds rounded to the millisecond.
func Seconds(d time.Duration) float64 {
	if d < 0 {
		return 0
	}
	return math.Round(d.Seconds()*1000) / 1000
}

// MarshalJSON writes the record as one flat object with keys in output order:
// URL, NetScore, NetScore_Latency, then each metric and its _Latency.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	url, err := json.Marshal(r.URL)
	if err != nil {
		return nil, err
	}
	buf.WriteString(`{"URL":`)
	buf.Write(url)
	writeField(&buf, "NetScore", r.NetScore.Wire())
	writeField(&buf, "NetScore_Latency", Seconds(r.NetScoreLatency))
	for _, name := range metrics.Names {
		m := r.Metric(name)
		writeField(&buf, string(name), m.Score.Wire())
		writeField(&buf, string(name)+"_Latency", Seconds(m.Latency))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeField(buf *bytes.Buffer, key string, v float64) {
	buf.WriteString(`,"`)
	buf.WriteString(key)
	buf.WriteString(`":`)
	buf.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
}
