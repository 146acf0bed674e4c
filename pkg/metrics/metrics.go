package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/matzehuels/netscore/pkg/repo"
)

// Name identifies a metric unit. Names double as NDJSON field names.
type Name string

const (
	RampUp            Name = "RampUp"
	Correctness       Name = "Correctness"
	BusFactor         Name = "BusFactor"
	Responsiveness    Name = "ResponsiveMaintainer"
	License           Name = "License"
	DependencyPinning Name = "DependencyPinning"
	CodeReview        Name = "CodeReview"
)

// Names lists every metric in output order.
var Names = []Name{RampUp, Correctness, BusFactor, Responsiveness, License, DependencyPinning, CodeReview}

// Score is a metric result: a value in [0,1] or unavailable.
type Score struct {
	value float64
	valid bool
}

// Valid returns an available score with value v.
func Valid(v float64) Score { return Score{value: v, valid: true} }

// Unavailable returns a score that could not be computed.
func Unavailable() Score { return Score{} }

// Value returns the score and whether it is available.
func (s Score) Value() (float64, bool) { return s.value, s.valid }

// IsValid reports whether the score is available and lies in [0,1].
func (s Score) IsValid() bool { return s.valid && s.value >= 0 && s.value <= 1 }

// Wire returns the serialized form: the value, or -1 when unavailable.
func (s Score) Wire() float64 {
	if !s.valid {
		return -1
	}
	return s.value
}

func (s Score) String() string {
	if !s.valid {
		return "unavailable"
	}
	return strconv.FormatFloat(s.value, 'f', -1, 64)
}

// Metric is one independent scoring unit.
//
// Compute must not modify d. It may be called concurrently with other
// metrics on the same snapshot.
type Metric interface {
	Name() Name
	Compute(ctx context.Context, d *repo.Data) (Score, error)
}

// Options configures the time-dependent metrics.
type Options struct {
	// Window is the trailing activity window for Responsiveness.
	// Zero means 30 days.
	Window time.Duration

	// Now returns the evaluation time. Nil means time.Now.
	Now func() time.Time
}

const defaultWindow = 30 * 24 * time.Hour

// Default returns all seven metric units in output order.
func Default(opts Options) []Metric {
	if opts.Window <= 0 {
		opts.Window = defaultWindow
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return []Metric{
		rampUp{},
		correctness{},
		busFactor{},
		responsiveness{window: opts.Window, now: opts.Now},
		license{},
		dependencyPinning{},
		codeReview{},
	}
}

// clamp01 bounds v to [0,1].
func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
