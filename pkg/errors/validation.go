package errors

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// maxPackageNameLen is npm's own limit.
const maxPackageNameLen = 214

// ValidatePackageName rejects names that are empty, longer than 214 bytes, or
// contain control characters, backslashes, "//" or "..". Names end up in
// registry URLs and cache file names.
func ValidatePackageName(name string) error {
	switch {
	case name == "":
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	case len(name) > maxPackageNameLen:
		return New(ErrCodeInvalidPackage, "package name too long (max %d characters)", maxPackageNameLen)
	case strings.IndexFunc(name, unicode.IsControl) >= 0:
		return New(ErrCodeInvalidPackage, "package name contains control characters")
	}
	for _, bad := range []string{"..", "//", `\`} {
		if strings.Contains(name, bad) {
			return New(ErrCodeInvalidPackage, "package name contains %q", bad)
		}
	}
	return nil
}

// ValidateURL checks that an input line is an absolute http(s) URL with a host.
func ValidateURL(raw string) error {
	if raw == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	if strings.ContainsAny(raw, " \t\r\n") {
		return New(ErrCodeInvalidInput, "URL contains whitespace: %q", raw)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "malformed URL %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme: %q", raw)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL has no host: %q", raw)
	}
	return nil
}

var npmName = regexp.MustCompile(`^(@[a-z0-9-~][a-z0-9-._~]*/)?[A-Za-z0-9-~][A-Za-z0-9-._~]*$`)

// ValidateNpmPackageName applies [ValidatePackageName] plus npm's naming
// rules: optional lowercase @scope/ prefix, URL-safe characters. Unscoped
// names may carry uppercase letters, which the registry still serves for
// legacy packages such as JSONStream.
func ValidateNpmPackageName(name string) error {
	if err := ValidatePackageName(name); err != nil {
		return err
	}
	if !npmName.MatchString(name) {
		return New(ErrCodeInvalidPackage, "invalid npm package name: %q", name)
	}
	return nil
}
