package metrics

import (
	"context"
	"regexp"
	"strings"

	"github.com/matzehuels/netscore/pkg/repo"
)

// licenseHeading matches a Markdown heading of any level containing the word
// "License".
var licenseHeading = regexp.MustCompile(`(?m)^#{1,6}[ \t]+.*\bLicense\b`)

type license struct{}

func (license) Name() Name { return License }

// Compute never reports an unavailable score: no evidence scores 0.
func (license) Compute(_ context.Context, d *repo.Data) (Score, error) {
	if HasLicense(d) {
		return Valid(1), nil
	}
	return Valid(0), nil
}

// HasLicense reports whether the snapshot carries license evidence, checked
// in order: a license file or "SEE LICENSE IN" manifest field, a recognized
// SPDX expression in the manifest or detected by the host, a License section
// in the README.
func HasLicense(d *repo.Data) bool {
	if len(d.License.Files) > 0 {
		return true
	}
	var field string
	if d.Manifest != nil {
		field = strings.TrimSpace(d.Manifest.License)
	}
	if strings.HasPrefix(strings.ToUpper(field), "SEE LICENSE IN") {
		return true
	}
	if IsSPDXExpression(field) || IsSPDXExpression(d.License.SPDX) {
		return true
	}
	return d.Readme != nil && ReadmeHasLicenseSection(*d.Readme)
}

// ReadmeHasLicenseSection reports whether Markdown text has a heading with the
// word "License". The match is case-sensitive.
func ReadmeHasLicenseSection(text string) bool {
	return licenseHeading.MatchString(text)
}

var spdxSplitter = strings.NewReplacer("(", " ", ")", " ")

// IsSPDXExpression reports whether expr is a recognized SPDX license
// identifier or an expression combining recognized identifiers with AND, OR,
// and WITH. "NOASSERTION" and "NONE" are not licenses.
func IsSPDXExpression(expr string) bool {
	fields := strings.Fields(spdxSplitter.Replace(expr))
	if len(fields) == 0 {
		return false
	}
	afterWith := false
	for i, f := range fields {
		switch strings.ToUpper(f) {
		case "AND", "OR":
			if i == 0 || i == len(fields)-1 {
				return false
			}
			continue
		case "WITH":
			if i == 0 || i == len(fields)-1 {
				return false
			}
			afterWith = true
			continue
		}
		if afterWith {
			// exception identifiers are not validated
			afterWith = false
			continue
		}
		if !IsSPDXIdentifier(f) {
			return false
		}
	}
	return true
}

// IsSPDXIdentifier reports whether id is a known SPDX license identifier.
// Matching ignores case and a trailing "+".
func IsSPDXIdentifier(id string) bool {
	_, ok := spdxIDs[strings.ToLower(strings.TrimSuffix(id, "+"))]
	return ok
}
