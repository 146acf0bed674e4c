package github

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/matzehuels/netscore/pkg/cache"
	"github.com/matzehuels/netscore/pkg/integrations"
	"github.com/matzehuels/netscore/pkg/repo"
)

const (
	defaultBaseURL = "https://api.github.com"

	// DefaultWindow is the activity window issues and pull requests are listed for.
	DefaultWindow = 30 * 24 * time.Hour

	perPage        = 100
	maxPages       = 3
	maxReviewedPRs = 10
)

var repoURLPattern = regexp.MustCompile(`^https?://(?:www\.)?github\.com/([^/]+)/([^/]+?)(?:\.git)?(?:[/?#]|$)`)

// Client fetches repository snapshots from the GitHub REST API.
// It handles HTTP requests with caching, automatic retries, and authentication.
type Client struct {
	*integrations.Client
	baseURL string
	window  time.Duration
	now     func() time.Time
}

// NewClient creates a GitHub API client. Snapshots are cached in c for ttl.
// window bounds how far back issues and pull requests are listed; zero means
// [DefaultWindow]. An empty token sends unauthenticated requests.
func NewClient(c cache.Cache, token string, ttl, window time.Duration, opts ...integrations.Option) *Client {
	headers := map[string]string{
		"Accept":               "application/vnd.github+json",
		"X-GitHub-Api-Version": "2022-11-28",
	}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Client{
		Client:  integrations.NewClient(c, "github:", ttl, headers, opts...),
		baseURL: defaultBaseURL,
		window:  window,
		now:     time.Now,
	}
}

// FetchRepository implements [repo.Fetcher].
func (c *Client) FetchRepository(ctx context.Context, owner, name string) (*repo.Data, error) {
	return c.Fetch(ctx, owner, name, false)
}

// Fetch builds a fresh snapshot of owner/name. Responses of endpoints that do
// not depend on the activity window are cached individually; issue and pull
// request listings are always read live. If refresh is true, cached responses
// are bypassed.
//
// Only a failure to read the repository itself is returned as an error.
// Sub-resources that cannot be read are left nil in the snapshot and are
// never cached.
func (c *Client) Fetch(ctx context.Context, owner, name string, refresh bool) (*repo.Data, error) {
	if err := ValidateRepoRef(owner, name); err != nil {
		return nil, err
	}
	f := fetch{Client: c, owner: owner, name: name, refresh: refresh}

	meta, err := f.repo(ctx)
	if err != nil {
		return nil, err
	}

	now := c.now()
	since := now.Add(-c.window)
	d := &repo.Data{
		Owner:         owner,
		Repo:          name,
		DefaultBranch: meta.DefaultBranch,
		Archived:      meta.Archived,
		FetchedAt:     now.UTC(),
	}
	if meta.License != nil {
		d.License.SPDX = meta.License.SPDXID
	}

	if counts, err := c.fetchIssueCounts(ctx, owner, name); err == nil {
		d.IssueCounts = counts
	}
	if issues, err := c.fetchIssues(ctx, owner, name, since); err == nil {
		d.Issues = issues
	}
	if prs, err := c.fetchPullRequests(ctx, owner, name, since); err == nil {
		f.inspectReviews(ctx, prs)
		d.PullRequests = prs
	}
	if contribs, err := f.contributors(ctx); err == nil {
		d.Contributors = contribs
	}
	if files, err := f.rootListing(ctx); err == nil {
		d.Files = files
		d.License.Files = licenseFiles(files)
	}
	if readme, err := f.readme(ctx); err == nil {
		d.Readme = &readme
	}
	if d.Files == nil || hasFile(d.Files, "package.json") {
		if m, err := f.manifest(ctx); err == nil {
			d.Manifest = m
		}
	}
	return d, nil
}

// fetch reads the cached endpoints of one repository.
type fetch struct {
	*Client
	owner, name string
	refresh     bool
}

func (f fetch) key(resource string) string {
	return f.owner + "/" + f.name + ":" + resource
}

func (f fetch) repo(ctx context.Context) (*repoResponse, error) {
	var data repoResponse
	err := f.Cached(ctx, f.key("repo"), f.refresh, &data, func() error {
		url := fmt.Sprintf("%s/repos/%s/%s", f.baseURL, f.owner, f.name)
		return f.Get(ctx, url, &data)
	})
	if err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return nil, fmt.Errorf("%w: github repo %s/%s", err, f.owner, f.name)
		}
		return nil, err
	}
	return &data, nil
}

func (f fetch) contributors(ctx context.Context) ([]repo.Contributor, error) {
	var data []contributorResponse
	err := f.Cached(ctx, f.key("contributors"), f.refresh, &data, func() error {
		url := fmt.Sprintf("%s/repos/%s/%s/contributors?per_page=%d", f.baseURL, f.owner, f.name, perPage)
		return f.Get(ctx, url, &data)
	})
	if err != nil {
		return nil, err
	}

	result := make([]repo.Contributor, 0, len(data))
	for _, cr := range data {
		if cr.Type != "Bot" {
			result = append(result, repo.Contributor{
				Login:         cr.Login,
				Contributions: cr.Contributions,
			})
		}
	}
	return result, nil
}

// ParseURL extracts owner and repository name from a github.com URL.
// Trailing path segments, query strings, and a .git suffix are ignored.
func ParseURL(raw string) (owner, name string, ok bool) {
	owner, name, ok = integrations.ExtractRepoURL(repoURLPattern, raw)
	if !ok || ValidateRepoRef(owner, name) != nil {
		return "", "", false
	}
	return owner, name, true
}
