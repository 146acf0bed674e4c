package scoring

import (
	"math"
	"time"

	"github.com/matzehuels/netscore/pkg/metrics"
)

// Weights are the fixed contributions of each metric to the net score.
// They sum to 1.
var Weights = map[metrics.Name]float64{
	metrics.BusFactor:         0.20,
	metrics.Correctness:       0.25,
	metrics.RampUp:            0.15,
	metrics.Responsiveness:    0.10,
	metrics.License:           0.05,
	metrics.DependencyPinning: 0.10,
	metrics.CodeReview:        0.10,
}

// Input holds the latest score of every metric for one package.
type Input map[metrics.Name]metrics.Score

// NetScore is the aggregated score and the time the aggregation took.
type NetScore struct {
	Score   metrics.Score
	Latency time.Duration
}

// ValidateMetricScores reports whether in holds an available score in [0,1]
// for every weighted metric.
func ValidateMetricScores(in Input) bool {
	for name := range Weights {
		s, ok := in[name]
		if !ok || !s.IsValid() {
			return false
		}
	}
	return true
}

// CalculateNetScore returns the weighted sum of in. A single missing or
// unavailable metric makes the net score unavailable.
func CalculateNetScore(in Input) NetScore {
	start := time.Now()
	if !ValidateMetricScores(in) {
		return NetScore{Score: metrics.Unavailable(), Latency: time.Since(start)}
	}

	sum := 0.0
	for name, w := range Weights {
		v, _ := in[name].Value()
		sum += w * v
	}
	sum = math.Round(sum*1e9) / 1e9
	sum = min(max(sum, 0), 1)
	return NetScore{Score: metrics.Valid(sum), Latency: time.Since(start)}
}
