// Package imageserver defines the contracts the catalog uses to open
// image sources: the server handle, the builder registry that selects a
// backend by capability probe, and the rotation adapter.
//
// Pixel access itself lives behind these interfaces; the catalog never
// touches image data.
package imageserver

import (
	"errors"
	"fmt"
)

// Server is a handle on one image source. A server may expose
// sub-images: independently addressable series within a container
// format. Close releases the handle and must be called on every exit
// path once the sub-image list has been consumed.
type Server interface {
	// Path is the canonical path or URI this server was opened from.
	Path() string
	// DisplayName is a human-readable name for the image.
	DisplayName() string
	// SubImageNames lists the server's sub-images in their native order.
	SubImageNames() []string
	// SubImagePath returns the path used to open the named sub-image.
	SubImagePath(name string) string
	Close() error
}

// Factory opens servers for image paths. Opening is blocking I/O with
// no timeout; a hang in a backend blocks the caller.
type Factory interface {
	Open(path string) (Server, error)
}

// OpenError reports a failure opening an image source.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("failed to open image %q: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// ErrUnsupported is wrapped by OpenError when no builder supports a path.
var ErrUnsupported = errors.New("no image backend supports this path")
