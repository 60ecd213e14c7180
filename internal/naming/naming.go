// Package naming allocates entry identities and collision-free on-disk
// file names.
package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// NewIdentity returns a fresh opaque identity for a project entry.
// Identities are random UUIDs; no collision check is performed.
func NewIdentity() string {
	return uuid.NewString()
}

// NewMaskedName returns a pseudo-random label used in place of an
// entry's real name when name masking is enabled.
func NewMaskedName() string {
	return uuid.NewString()
}

// UniqueFile returns a path in dir derived from base and ext that does
// not currently exist, probing base.ext, base-1.ext, base-2.ext, and so
// on. The check and any later create are not atomic: the caller must
// hold the same exclusive ownership of dir as every other writer, or a
// concurrent creator can claim the returned name first.
func UniqueFile(dir, base, ext string) string {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	candidate := filepath.Join(dir, base+ext)
	for n := 1; ; n++ {
		if _, err := os.Stat(candidate); err != nil {
			return candidate
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s-%d%s", base, n, ext))
	}
}
