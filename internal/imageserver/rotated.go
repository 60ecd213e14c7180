package imageserver

// Rotation identifies a fixed geometric transform applied to pixel
// access at open time. The underlying image source is never rewritten.
type Rotation int

// Rotate180 is the only rotation currently defined.
const Rotate180 Rotation = 180

// MetadataKeyRotate180 is the entry metadata key that, when set to
// "true", requests a 180-degree rotation whenever the image is opened.
const MetadataKeyRotate180 = "rotate180"

// RotatedServer wraps a server so that pixel access is rotated. The
// handle surface (path, sub-images, close) is delegated unchanged.
type RotatedServer struct {
	Server
	rotation Rotation
}

// NewRotated wraps server with the given rotation.
func NewRotated(server Server, rotation Rotation) *RotatedServer {
	return &RotatedServer{Server: server, rotation: rotation}
}

// Rotation returns the applied rotation.
func (r *RotatedServer) Rotation() Rotation {
	return r.rotation
}
