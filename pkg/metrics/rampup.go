package metrics

import (
	"context"
	"regexp"
	"strings"

	"github.com/matzehuels/netscore/pkg/repo"
)

// Signal weights sum to 1.
const (
	weightReadme       = 0.15
	weightReadmeLength = 0.15
	weightInstall      = 0.15
	weightUsage        = 0.15
	weightDocsDir      = 0.15
	weightExamplesDir  = 0.10
	weightContributing = 0.10
	weightCodeBlock    = 0.05

	// readmeFullWords is the README length that earns the full length weight.
	readmeFullWords = 800
)

var (
	installHeading = regexp.MustCompile(`(?im)^#{1,6}[ \t]+.*\b(install(ation|ing)?|getting started|setup)\b`)
	usageHeading   = regexp.MustCompile(`(?im)^#{1,6}[ \t]+.*\b(usage|examples?|quick ?start|how to use|api)\b`)
)

type rampUp struct{}

func (rampUp) Name() Name { return RampUp }

func (rampUp) Compute(_ context.Context, d *repo.Data) (Score, error) {
	if d.Files == nil {
		return Unavailable(), nil
	}

	score := 0.0
	if d.Readme != nil {
		score += readmeScore(*d.Readme)
	}
	if d.HasEntry("docs", true) || d.HasEntry("doc", true) {
		score += weightDocsDir
	}
	if d.HasEntry("examples", true) || d.HasEntry("example", true) {
		score += weightExamplesDir
	}
	if d.HasEntry("CONTRIBUTING", false) {
		score += weightContributing
	}
	return Valid(clamp01(score)), nil
}

// readmeScore sums the signals read from the README text itself.
func readmeScore(text string) float64 {
	score := weightReadme
	words := len(strings.Fields(text))
	score += weightReadmeLength * min(1, float64(words)/readmeFullWords)
	if installHeading.MatchString(text) {
		score += weightInstall
	}
	if usageHeading.MatchString(text) {
		score += weightUsage
	}
	if strings.Contains(text, "```") {
		score += weightCodeBlock
	}
	return score
}
