package metrics

import (
	"context"

	"github.com/matzehuels/netscore/pkg/repo"
)

type codeReview struct{}

func (codeReview) Name() Name { return CodeReview }

// Compute weighs merged pull requests by added lines when line counts are
// known and by count otherwise. Merged pull requests whose reviews were not
// inspected are skipped; if every merged one was skipped the score is
// unavailable.
func (codeReview) Compute(_ context.Context, d *repo.Data) (Score, error) {
	if d.PullRequests == nil {
		return Unavailable(), nil
	}

	var merged, inspected, reviewed int
	var lines, reviewedLines int
	for _, pr := range d.PullRequests {
		if !pr.Merged() {
			continue
		}
		merged++
		if pr.Reviews == nil {
			continue
		}
		inspected++
		lines += max(pr.Additions, 0)
		if *pr.Reviews > 0 {
			reviewed++
			reviewedLines += max(pr.Additions, 0)
		}
	}

	switch {
	case merged == 0:
		return Valid(0), nil
	case inspected == 0:
		return Unavailable(), nil
	case lines > 0:
		return Valid(float64(reviewedLines) / float64(lines)), nil
	default:
		return Valid(float64(reviewed) / float64(inspected)), nil
	}
}
