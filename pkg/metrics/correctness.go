package metrics

import (
	"context"

	"github.com/matzehuels/netscore/pkg/repo"
)

type correctness struct{}

func (correctness) Name() Name { return Correctness }

func (correctness) Compute(_ context.Context, d *repo.Data) (Score, error) {
	if d.IssueCounts == nil {
		return Unavailable(), nil
	}
	return Valid(CorrectnessScore(d.IssueCounts.Open, d.IssueCounts.Closed)), nil
}

// CorrectnessScore returns closed/(open+closed), or 1 when there are no issues.
func CorrectnessScore(open, closed int) float64 {
	open, closed = max(open, 0), max(closed, 0)
	if open+closed == 0 {
		return 1
	}
	return float64(closed) / float64(open+closed)
}
