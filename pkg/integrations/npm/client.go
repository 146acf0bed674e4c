package npm

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/matzehuels/netscore/pkg/cache"
	"github.com/matzehuels/netscore/pkg/integrations"
)

const defaultBaseURL = "https://registry.npmjs.org"

// ErrNoRepository is returned when a package's manifest names no GitHub repository.
var ErrNoRepository = errors.New("no github repository in package manifest")

var githubURLPattern = regexp.MustCompile(`^https://github\.com/([A-Za-z0-9_.-]+)/([A-Za-z0-9_.-]+)`)

// PackageInfo is the latest published manifest of an npm package.
type PackageInfo struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Repository   string            `json:"repository,omitempty"`
	HomePage     string            `json:"homepage,omitempty"`
	Bugs         string            `json:"bugs,omitempty"`
	License      string            `json:"license,omitempty"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// Client resolves npm packages through the registry API.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates an npm registry client caching responses in c for ttl.
func NewClient(c cache.Cache, ttl time.Duration, opts ...integrations.Option) *Client {
	return &Client{
		Client:  integrations.NewClient(c, "npm:", ttl, nil, opts...),
		baseURL: defaultBaseURL,
	}
}

// ResolveRepository returns the canonical GitHub URL backing package name.
// The manifest's repository, homepage, and bugs fields are checked in that
// order; the first one pointing at GitHub wins.
func (c *Client) ResolveRepository(ctx context.Context, name string) (string, error) {
	info, err := c.FetchPackage(ctx, name, false)
	if err != nil {
		return "", err
	}
	owner, repo, ok := integrations.ExtractRepoURL(githubURLPattern, info.Repository, info.HomePage, info.Bugs)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoRepository, name)
	}
	return "https://github.com/" + owner + "/" + repo, nil
}

// FetchPackage returns the latest manifest of pkg, from cache unless refresh is set.
func (c *Client) FetchPackage(ctx context.Context, pkg string, refresh bool) (*PackageInfo, error) {
	pkg = strings.TrimSpace(pkg)

	var info PackageInfo
	err := c.Cached(ctx, pkg, refresh, &info, func() error {
		return c.fetch(ctx, pkg, &info)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) fetch(ctx context.Context, pkg string, info *PackageInfo) error {
	var data registryResponse
	if err := c.Get(ctx, c.baseURL+"/"+url.PathEscape(pkg), &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: npm package %s", err, pkg)
		}
		return err
	}

	latest := data.DistTags.Latest
	v, ok := data.Versions[latest]
	if !ok {
		// Unpublished or tag-less packages still carry top-level metadata.
		v = versionDetails{Repository: data.Repository, HomePage: data.HomePage, Bugs: data.Bugs, License: data.License}
	}

	*info = PackageInfo{
		Name:         data.Name,
		Version:      latest,
		Repository:   extractField(v.Repository, "url"),
		HomePage:     v.HomePage,
		Bugs:         extractField(v.Bugs, "url"),
		License:      extractField(v.License, "type"),
		Dependencies: v.Dependencies,
	}
	return nil
}

func extractField(v any, field string) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]any:
		if s, ok := val[field].(string); ok {
			return s
		}
	}
	return ""
}

type registryResponse struct {
	Name       string                    `json:"name"`
	DistTags   distTags                  `json:"dist-tags"`
	Versions   map[string]versionDetails `json:"versions"`
	Repository any                       `json:"repository"`
	HomePage   string                    `json:"homepage"`
	Bugs       any                       `json:"bugs"`
	License    any                       `json:"license"`
}

type distTags struct {
	Latest string `json:"latest"`
}

type versionDetails struct {
	License      any               `json:"license"`
	Repository   any               `json:"repository"`
	HomePage     string            `json:"homepage"`
	Bugs         any               `json:"bugs"`
	Dependencies map[string]string `json:"dependencies"`
}
