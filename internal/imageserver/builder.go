package imageserver

// Builder constructs servers for paths it understands.
type Builder interface {
	// Name identifies the backend in logs.
	Name() string
	// SupportLevel reports the builder's confidence that it can open
	// path: 0 means it cannot, higher values win over lower ones.
	SupportLevel(path string) float32
	Build(path string) (Server, error)
}

// Registry is a closed set of builders. Open probes every builder and
// delegates to the one reporting the highest support level.
type Registry struct {
	builders []Builder
}

// NewRegistry returns a registry over the given builders.
func NewRegistry(builders ...Builder) *Registry {
	return &Registry{builders: builders}
}

// Open builds a server for path using the most confident builder.
func (r *Registry) Open(path string) (Server, error) {
	var best Builder
	var bestLevel float32
	for _, b := range r.builders {
		if level := b.SupportLevel(path); level > bestLevel {
			best, bestLevel = b, level
		}
	}
	if best == nil {
		return nil, &OpenError{Path: path, Err: ErrUnsupported}
	}
	server, err := best.Build(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	return server, nil
}
