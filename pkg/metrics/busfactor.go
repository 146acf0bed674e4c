package metrics

import (
	"context"
	"math"

	"github.com/matzehuels/netscore/pkg/repo"
)

// busFactorSigma is the width of the decay around an even distribution.
const busFactorSigma = 0.3

type busFactor struct{}

func (busFactor) Name() Name { return BusFactor }

func (busFactor) Compute(_ context.Context, d *repo.Data) (Score, error) {
	if d.Contributors == nil {
		return Unavailable(), nil
	}
	counts := make([]int, len(d.Contributors))
	for i, c := range d.Contributors {
		counts[i] = c.Contributions
	}
	h, ok := Concentration(counts)
	if !ok {
		return Unavailable(), nil
	}
	return Valid(BusFactorScore(h)), nil
}

// Concentration returns the Herfindahl index of the commit counts: the sum of
// squared commit shares. It ranges from 1/n for an even split over n
// contributors to 1 for a single contributor. Negative counts are treated as
// zero; ok is false when there are no commits at all.
func Concentration(counts []int) (h float64, ok bool) {
	total := 0
	for _, c := range counts {
		total += max(c, 0)
	}
	if total == 0 {
		return 0, false
	}
	for _, c := range counts {
		share := float64(max(c, 0)) / float64(total)
		h += share * share
	}
	return h, true
}

// BusFactorScore maps a concentration h to exp(-h²/(2σ²)). The score is near
// 1 for commits spread over many people and near 0 for a single maintainer,
// and never increases as h grows.
func BusFactorScore(h float64) float64 {
	h = clamp01(h)
	return math.Exp(-(h * h) / (2 * busFactorSigma * busFactorSigma))
}
