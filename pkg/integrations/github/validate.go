package github

import (
	"regexp"

	"github.com/matzehuels/netscore/pkg/errors"
)

var (
	// GitHub usernames/orgs: 1-39 alphanumeric or hyphen, not starting with hyphen
	validOwner = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,38}$`)
	// GitHub repo names: 1-100 alphanumeric, hyphen, underscore, or dot
	validRepo = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,100}$`)
)

// ValidateOwner validates a GitHub username or organization name.
func ValidateOwner(owner string) error {
	if owner == "" {
		return errors.New(errors.ErrCodeInvalidPackage, "owner is required")
	}
	if !validOwner.MatchString(owner) {
		return errors.New(errors.ErrCodeInvalidPackage, "invalid owner %q: must be 1-39 alphanumeric characters or hyphens, cannot start with hyphen", owner)
	}
	return nil
}

// ValidateRepo validates a GitHub repository name.
func ValidateRepo(name string) error {
	if name == "" {
		return errors.New(errors.ErrCodeInvalidPackage, "repo is required")
	}
	if name == "." || name == ".." || !validRepo.MatchString(name) {
		return errors.New(errors.ErrCodeInvalidPackage, "invalid repo %q: must be 1-100 alphanumeric characters, hyphens, underscores, or dots", name)
	}
	return nil
}

// ValidateRepoRef validates both owner and repo parameters.
func ValidateRepoRef(owner, name string) error {
	if err := ValidateOwner(owner); err != nil {
		return err
	}
	return ValidateRepo(name)
}
