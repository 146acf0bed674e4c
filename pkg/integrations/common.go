package integrations

import (
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	nserrors "github.com/matzehuels/netscore/pkg/errors"
)

const httpTimeout = 15 * time.Second

var (
	// ErrNotFound is returned when a package or resource doesn't exist upstream.
	ErrNotFound = nserrors.New(nserrors.ErrCodeNotFound, "resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = nserrors.New(nserrors.ErrCodeNetwork, "network error")

	// ErrUnauthorized is returned when the upstream rejects the credentials.
	ErrUnauthorized = nserrors.New(nserrors.ErrCodeUnauthorized, "unauthorized")
)

// NewHTTPClient creates an HTTP client with a standard timeout for API requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

var repoURLReplacer = strings.NewReplacer(
	"git@github.com:", "https://github.com/",
	"ssh://git@github.com/", "https://github.com/",
	"git://github.com/", "https://github.com/",
	"http://github.com/", "https://github.com/",
	"https://www.github.com/", "https://github.com/",
)

var shorthandPattern = regexp.MustCompile(`^(?:github:)?([A-Za-z0-9_.-]+)/([A-Za-z0-9_.-]+)$`)

// NormalizeRepoURL converts various repository URL formats to canonical HTTPS form.
// Handles git@, ssh://, git://, and git+ prefixes, npm's "github:owner/repo"
// and bare "owner/repo" shorthands, fragments, and .git suffixes.
// Returns empty string if raw is empty.
func NormalizeRepoURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if m := shorthandPattern.FindStringSubmatch(s); m != nil {
		return "https://github.com/" + m[1] + "/" + strings.TrimSuffix(m[2], ".git")
	}
	s = strings.TrimPrefix(s, "git+")
	s = repoURLReplacer.Replace(s)
	if i := strings.IndexAny(s, "#?"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSuffix(s, "/")
	return strings.TrimSuffix(s, ".git")
}

// ExtractRepoURL finds an owner and repo name in the first candidate URL that
// matches re. Candidates are tried in order after normalization; empty ones
// are skipped. The re parameter should capture owner (group 1) and repo name
// (group 2). Returns ok=false if no candidate matches.
func ExtractRepoURL(re *regexp.Regexp, candidates ...string) (owner, repo string, ok bool) {
	for _, raw := range candidates {
		u := NormalizeRepoURL(raw)
		if u == "" || strings.Contains(u, "/sponsors/") {
			continue
		}
		if m := re.FindStringSubmatch(u); len(m) >= 3 {
			return m[1], strings.TrimSuffix(m[2], ".git"), true
		}
	}
	return "", "", false
}

// URLEncode percent-encodes a string for use in URLs.
// This is a convenience wrapper around [url.QueryEscape].
func URLEncode(s string) string { return url.QueryEscape(s) }
