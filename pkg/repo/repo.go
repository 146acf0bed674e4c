// Package repo defines the repository snapshot shared by all metric units.
//
// A [Data] value is fetched once per package by a [Fetcher] and then handed
// by pointer to every metric. Nothing downstream of the fetcher writes to it.
//
// Availability is encoded in the zero values: a nil slice or nil pointer
// means the fetcher could not obtain that part of the snapshot, while an empty
// non-nil slice means "available, none". Metrics report an unavailable score
// for the former and a regular score for the latter.
package repo

import (
	"context"
	"strings"
	"time"
)

// Kind identifies how a package was referenced in the input.
type Kind string

const (
	KindNPM    Kind = "npm"
	KindGitHub Kind = "github"
)

// PackageIdentifier is the resolved form of one input URL.
type PackageIdentifier struct {
	Owner     string `json:"owner"`
	Repo      string `json:"repo"`
	SourceURL string `json:"source_url"`        // input URL as given
	Kind      Kind   `json:"kind"`              // npm or github
	Package   string `json:"package,omitempty"` // npm package name, if any
}

// FullName returns "owner/repo".
func (p PackageIdentifier) FullName() string { return p.Owner + "/" + p.Repo }

// Fetcher produces a repository snapshot for owner/repo.
//
// Implementations return a non-nil error only when the core repository
// metadata is unobtainable. Failures of optional sub-resources leave the
// corresponding fields nil.
type Fetcher interface {
	FetchRepository(ctx context.Context, owner, repo string) (*Data, error)
}

// Data is the read-only snapshot of one repository.
type Data struct {
	Owner         string        `json:"owner"`
	Repo          string        `json:"repo"`
	DefaultBranch string        `json:"default_branch,omitempty"`
	Archived      bool          `json:"archived"`
	IssueCounts   *IssueCounts  `json:"issue_counts"`
	Issues        []Issue       `json:"issues"`
	PullRequests  []PullRequest `json:"pull_requests"`
	Contributors  []Contributor `json:"contributors"`
	License       License       `json:"license"`
	Readme        *string       `json:"readme"` // nil when the repository has no README
	Files         []Entry       `json:"files"`  // root directory listing
	Manifest      *Manifest     `json:"manifest"`
	FetchedAt     time.Time     `json:"fetched_at"`
}

// IssueCounts holds repository-wide issue totals, pull requests excluded.
type IssueCounts struct {
	Open   int `json:"open"`
	Closed int `json:"closed"`
}

// Issue is a single issue (never a pull request).
type Issue struct {
	Number    int        `json:"number"`
	CreatedAt time.Time  `json:"created_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
}

// PullRequest is a single pull request.
type PullRequest struct {
	Number    int        `json:"number"`
	CreatedAt time.Time  `json:"created_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
	MergedAt  *time.Time `json:"merged_at,omitempty"`
	Additions int        `json:"additions,omitempty"`
	Reviews   *int       `json:"reviews,omitempty"` // nil when reviews were not inspected
}

// Merged reports whether the pull request was merged.
func (p PullRequest) Merged() bool { return p.MergedAt != nil }

// Contributor is a repository contributor with their commit count.
type Contributor struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
}

// License holds the license artifacts found in the repository.
type License struct {
	SPDX  string   `json:"spdx,omitempty"`  // repository license as detected by the host
	Files []string `json:"files,omitempty"` // license files in the repository root
}

// Entry is one item of the root directory listing.
type Entry struct {
	Name string `json:"name"`
	Dir  bool   `json:"dir,omitempty"`
}

// Manifest is the subset of package.json the metrics read.
type Manifest struct {
	Name            string            `json:"name,omitempty"`
	Version         string            `json:"version,omitempty"`
	License         string            `json:"license,omitempty"`
	Dependencies    map[string]string `json:"dependencies,omitempty"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
}

// HasEntry reports whether the root listing contains a file (dir=false) or
// directory (dir=true) whose name equals name, ignoring case. Files with an
// extension match on their base name, so "CONTRIBUTING" finds
// "CONTRIBUTING.md".
func (d *Data) HasEntry(name string, dir bool) bool {
	for _, e := range d.Files {
		if e.Dir != dir {
			continue
		}
		n := e.Name
		if !dir {
			if i := strings.IndexByte(n, '.'); i > 0 {
				n = n[:i]
			}
		}
		if strings.EqualFold(n, name) || strings.EqualFold(e.Name, name) {
			return true
		}
	}
	return false
}
