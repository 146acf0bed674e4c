package github

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/matzehuels/netscore/pkg/repo"
)

var rawHeaders = map[string]string{"Accept": "application/vnd.github.raw"}

var licenseFilePattern = regexp.MustCompile(`(?i)^(un)?licen[cs]e([-._].*)?$|^copying([-._].*)?$`)

// rootListing lists the repository's root directory.
func (f fetch) rootListing(ctx context.Context) ([]repo.Entry, error) {
	var items []contentResponse
	err := f.Cached(ctx, f.key("contents"), f.refresh, &items, func() error {
		url := fmt.Sprintf("%s/repos/%s/%s/contents/", f.baseURL, f.owner, f.name)
		return f.Get(ctx, url, &items)
	})
	if err != nil {
		return nil, err
	}

	entries := make([]repo.Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, repo.Entry{Name: item.Name, Dir: item.Type == "dir"})
	}
	return entries, nil
}

// readme returns the raw content of the repository's preferred README.
func (f fetch) readme(ctx context.Context) (string, error) {
	return f.raw(ctx, "readme", fmt.Sprintf("%s/repos/%s/%s/readme", f.baseURL, f.owner, f.name))
}

// manifest reads package.json from the repository root.
func (f fetch) manifest(ctx context.Context) (*repo.Manifest, error) {
	text, err := f.raw(ctx, "package.json", fmt.Sprintf("%s/repos/%s/%s/contents/package.json", f.baseURL, f.owner, f.name))
	if err != nil {
		return nil, err
	}

	var pkg manifestResponse
	if err := json.Unmarshal([]byte(text), &pkg); err != nil {
		return nil, fmt.Errorf("parse package.json: %w", err)
	}
	return &repo.Manifest{
		Name:            pkg.Name,
		Version:         pkg.Version,
		License:         manifestLicense(pkg.License),
		Dependencies:    pkg.Dependencies,
		DevDependencies: pkg.DevDependencies,
	}, nil
}

func (f fetch) raw(ctx context.Context, resource, url string) (string, error) {
	var text string
	err := f.Cached(ctx, f.key(resource), f.refresh, &text, func() error {
		var err error
		text, err = f.GetTextWithHeaders(ctx, url, rawHeaders)
		return err
	})
	return text, err
}

// manifestLicense accepts the string form as well as the deprecated
// {"type": ...} object and [{"type": ...}] array forms.
func manifestLicense(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]any:
		s, _ := val["type"].(string)
		return s
	case []any:
		var ids []string
		for _, item := range val {
			if s := manifestLicense(item); s != "" {
				ids = append(ids, s)
			}
		}
		return strings.Join(ids, " OR ")
	}
	return ""
}

func licenseFiles(entries []repo.Entry) []string {
	var files []string
	for _, e := range entries {
		if !e.Dir && licenseFilePattern.MatchString(e.Name) {
			files = append(files, e.Name)
		}
	}
	return files
}

func hasFile(entries []repo.Entry, name string) bool {
	for _, e := range entries {
		if !e.Dir && e.Name == name {
			return true
		}
	}
	return false
}
