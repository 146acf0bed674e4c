package metrics

import (
	"context"
	"time"

	"github.com/matzehuels/netscore/pkg/repo"
)

type responsiveness struct {
	window time.Duration
	now    func() time.Time
}

func (responsiveness) Name() Name { return Responsiveness }

func (r responsiveness) Compute(_ context.Context, d *repo.Data) (Score, error) {
	if d.Archived {
		return Valid(0), nil
	}
	if d.Issues == nil || d.PullRequests == nil {
		return Unavailable(), nil
	}

	end := r.now()
	start := end.Add(-r.window)
	w := window{start: start, end: end}

	var issues, prs activity
	for _, it := range d.Issues {
		issues.add(w, it.CreatedAt, it.ClosedAt)
	}
	for _, pr := range d.PullRequests {
		prs.add(w, pr.CreatedAt, pr.ClosedAt)
	}
	if issues.active == 0 && prs.active == 0 {
		return Valid(0), nil
	}
	return Valid(clamp01(0.5*issues.ratio() + 0.5*prs.ratio())), nil
}

type window struct{ start, end time.Time }

func (w window) contains(t time.Time) bool {
	return !t.Before(w.start) && !t.After(w.end)
}

// activity counts items of one kind opened or closed inside a window.
type activity struct {
	active int
	closed int
}

func (a *activity) add(w window, created time.Time, closed *time.Time) {
	closedIn := closed != nil && w.contains(*closed)
	if !w.contains(created) && !closedIn {
		return
	}
	a.active++
	if closedIn {
		a.closed++
	}
}

// ratio is closed/active, or 0 for a kind without activity.
func (a activity) ratio() float64 {
	if a.active == 0 {
		return 0
	}
	return float64(a.closed) / float64(a.active)
}
