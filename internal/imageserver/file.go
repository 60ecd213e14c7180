package imageserver

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileBuilder opens plain image files on the local filesystem. It
// exposes no sub-images and reports modest confidence so that richer
// container-format builders win when registered alongside it.
type FileBuilder struct{}

func (FileBuilder) Name() string {
	return "Local file"
}

func (FileBuilder) SupportLevel(path string) float32 {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return 0
	}
	return 1
}

func (FileBuilder) Build(path string) (Server, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not an image", path)
	}
	return &fileServer{path: path}, nil
}

type fileServer struct {
	path string
}

func (s *fileServer) Path() string {
	return s.path
}

func (s *fileServer) DisplayName() string {
	return filepath.Base(s.path)
}

func (s *fileServer) SubImageNames() []string {
	return nil
}

func (s *fileServer) SubImagePath(name string) string {
	return ""
}

func (s *fileServer) Close() error {
	return nil
}
