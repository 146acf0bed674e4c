// Package resolve maps input URLs to the GitHub repository they refer to.
//
// Two URL shapes are understood:
//
//	https://www.npmjs.com/package/<name>[/v/<version>]
//	https://github.com/<owner>/<repo>[/...]
//
// npm packages are resolved to their backing repository through a
// [RepositoryLookup]. Every other shape, and every npm package without a
// discoverable GitHub repository, yields an error with code
// RESOLUTION_FAILED. Resolution failures are per package; callers keep going.
package resolve

import (
	"context"
	"net/url"
	"strings"

	"github.com/matzehuels/netscore/pkg/errors"
	"github.com/matzehuels/netscore/pkg/integrations/github"
	"github.com/matzehuels/netscore/pkg/repo"
)

// RepositoryLookup resolves an npm package name to a GitHub repository URL.
type RepositoryLookup interface {
	ResolveRepository(ctx context.Context, name string) (string, error)
}

// Resolver turns raw input URLs into [repo.PackageIdentifier] values.
type Resolver struct {
	npm RepositoryLookup
}

// New creates a Resolver. npm may be nil, in which case npm URLs fail to
// resolve.
func New(npm RepositoryLookup) *Resolver {
	return &Resolver{npm: npm}
}

// Resolve parses raw and returns the repository it identifies.
func (r *Resolver) Resolve(ctx context.Context, raw string) (repo.PackageIdentifier, error) {
	raw = strings.TrimSpace(raw)
	if err := errors.ValidateURL(raw); err != nil {
		return repo.PackageIdentifier{}, fail(raw, err)
	}

	if name, ok := NPMPackageName(raw); ok {
		return r.resolveNPM(ctx, raw, name)
	}
	if owner, name, ok := github.ParseURL(raw); ok {
		return repo.PackageIdentifier{
			Owner:     owner,
			Repo:      name,
			SourceURL: raw,
			Kind:      repo.KindGitHub,
		}, nil
	}
	return repo.PackageIdentifier{}, fail(raw, nil)
}

func (r *Resolver) resolveNPM(ctx context.Context, raw, name string) (repo.PackageIdentifier, error) {
	if err := errors.ValidateNpmPackageName(name); err != nil {
		return repo.PackageIdentifier{}, fail(raw, err)
	}
	if r.npm == nil {
		return repo.PackageIdentifier{}, fail(raw, nil)
	}

	ghURL, err := r.npm.ResolveRepository(ctx, name)
	if err != nil {
		return repo.PackageIdentifier{}, fail(raw, err)
	}
	owner, repoName, ok := github.ParseURL(ghURL)
	if !ok {
		return repo.PackageIdentifier{}, fail(raw, nil)
	}
	return repo.PackageIdentifier{
		Owner:     owner,
		Repo:      repoName,
		SourceURL: raw,
		Kind:      repo.KindNPM,
		Package:   name,
	}, nil
}

// NPMPackageName extracts the package name from an npmjs.com package URL.
// Scoped names keep their "@scope/" prefix; a trailing "/v/<version>" is
// dropped.
func NPMPackageName(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	host := strings.ToLower(u.Hostname())
	if host != "www.npmjs.com" && host != "npmjs.com" {
		return "", false
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] != "package" {
		return "", false
	}
	parts = parts[1:]
	if strings.HasPrefix(parts[0], "@") {
		if len(parts) < 2 || parts[1] == "" {
			return "", false
		}
		return parts[0] + "/" + parts[1], true
	}
	if parts[0] == "" {
		return "", false
	}
	return parts[0], true
}

func fail(raw string, cause error) error {
	if cause == nil {
		return errors.New(errors.ErrCodeResolution, "cannot resolve package: %s", raw)
	}
	return errors.Wrap(errors.ErrCodeResolution, cause, "cannot resolve package: %s", raw)
}
