// Package paths canonicalizes raw image path or URI strings and converts
// between absolute and project-relative stored forms, so a project folder
// can be relocated on disk without invalidating its entries.
package paths

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ProjectDirToken is the placeholder substituted for the project base
// directory in stored entry paths.
const ProjectDirToken = "{$PROJECT_DIR}"

// InvalidPathError reports a raw string that is neither an existing local
// path nor a syntactically valid URI.
type InvalidPathError struct {
	Raw string
	Err error
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid image path %q: %v", e.Raw, e.Err)
}

func (e *InvalidPathError) Unwrap() error {
	return e.Err
}

// Resolve returns the canonical form of a raw path or URI string.
// An existing local file or directory resolves to its absolute path;
// file:// URIs resolve to the local path they name. Anything else must
// parse as a URI with a scheme.
func Resolve(raw string) (string, error) {
	if raw == "" {
		return "", &InvalidPathError{Raw: raw, Err: errors.New("empty path")}
	}

	if _, err := os.Stat(raw); err == nil {
		abs, err := filepath.Abs(raw)
		if err != nil {
			return "", &InvalidPathError{Raw: raw, Err: err}
		}
		return abs, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", &InvalidPathError{Raw: raw, Err: err}
	}
	if u.Scheme == "file" {
		return filepath.FromSlash(u.Path), nil
	}
	// A bare relative path that does not exist parses as a URI with no
	// scheme; that is not enough to identify an image source.
	if u.Scheme == "" {
		return "", &InvalidPathError{Raw: raw, Err: errors.New("not an existing path or absolute URI")}
	}
	return u.String(), nil
}

// IsLocal reports whether a resolved path names a local filesystem
// location rather than a remote URI.
func IsLocal(resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return true
	}
	return u.Scheme == "" || len(u.Scheme) == 1 // single letter means a Windows drive
}

// ToStored converts a resolved path to its stored form: if the path lies
// under baseDir, the baseDir prefix is replaced with ProjectDirToken.
// Paths outside baseDir are stored unchanged.
func ToStored(resolved, baseDir string) string {
	base, err := filepath.Abs(baseDir)
	if err != nil {
		return resolved
	}
	if resolved == base {
		return ProjectDirToken
	}
	prefix := base + string(filepath.Separator)
	if strings.HasPrefix(resolved, prefix) {
		return ProjectDirToken + string(filepath.Separator) + strings.TrimPrefix(resolved, prefix)
	}
	return resolved
}

// FromStored is the exact inverse of ToStored given the current baseDir.
func FromStored(stored, baseDir string) string {
	if !strings.HasPrefix(stored, ProjectDirToken) {
		return stored
	}
	base, err := filepath.Abs(baseDir)
	if err != nil {
		return stored
	}
	return base + strings.TrimPrefix(stored, ProjectDirToken)
}

// DisplayName derives a human-readable name from a resolved path: the
// final path segment for URIs, the base name for local paths.
func DisplayName(resolved string) string {
	if !IsLocal(resolved) {
		if u, err := url.Parse(resolved); err == nil {
			if name := path.Base(u.Path); name != "" && name != "/" && name != "." {
				return name
			}
			return u.Host
		}
	}
	return filepath.Base(resolved)
}
