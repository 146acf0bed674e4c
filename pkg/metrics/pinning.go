package metrics

import (
	"context"
	"regexp"
	"strings"

	"github.com/matzehuels/netscore/pkg/repo"
)

const (
	semverCore = `v?\d+\.\d+\.\d+`
	semverTail = `(?:-[0-9A-Za-z.-]+)?(?:\+[0-9A-Za-z.-]+)?`
)

var pinnedPatterns = []*regexp.Regexp{
	// exact: 1.2.3, =1.2.3, v1.2.3-beta.1+build
	regexp.MustCompile(`^=?\s*` + semverCore + semverTail + `$`),
	// minor wildcard: 1.2.x, 1.2.*
	regexp.MustCompile(`^=?\s*v?\d+\.\d+\.[xX*]$`),
	// tilde: ~1.2, ~1.2.3, ~1.2.x
	regexp.MustCompile(`^~\s*v?\d+\.\d+(?:\.(?:\d+|[xX*]))?` + semverTail + `$`),
}

type dependencyPinning struct{}

func (dependencyPinning) Name() Name { return DependencyPinning }

func (dependencyPinning) Compute(_ context.Context, d *repo.Data) (Score, error) {
	if d.Manifest == nil {
		return Valid(1), nil
	}
	return Valid(PinningScore(d.Manifest.Dependencies)), nil
}

// PinningScore returns the share of pinned specifiers in deps, or 1 when
// deps is empty.
func PinningScore(deps map[string]string) float64 {
	if len(deps) == 0 {
		return 1
	}
	pinned := 0
	for _, spec := range deps {
		if IsPinned(spec) {
			pinned++
		}
	}
	return float64(pinned) / float64(len(deps))
}

// IsPinned reports whether a version specifier admits only a narrow range:
// an exact version, a patch wildcard (1.2.x), or a tilde range (~1.2.0).
// Caret ranges, comparators, "*", tags, URLs, and unions are not pinned.
func IsPinned(spec string) bool {
	spec = strings.TrimSpace(spec)
	for _, re := range pinnedPatterns {
		if re.MatchString(spec) {
			return true
		}
	}
	return false
}
