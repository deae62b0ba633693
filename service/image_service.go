package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ImageService persists extracted page images under a single directory and
// hands back stable paths for later retrieval. Names are deterministic, so a
// re-upload of the same document silently replaces its earlier image files.
type ImageService struct {
	dir string
}

func NewImageService(dir string) (*ImageService, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}
	return &ImageService{dir: dir}, nil
}

// Save writes the image bytes under {base}_page{N}_img{M}.{ext} and returns
// the stored path.
func (s *ImageService) Save(baseName string, pageIndex, ordinal int, ext string, data []byte) (string, error) {
	name := fmt.Sprintf("%s_page%d_img%d.%s", baseName, pageIndex, ordinal, ext)
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write image %s: %w", name, err)
	}
	return filepath.ToSlash(path), nil
}

// Load reads back a previously stored image. The file may have been removed
// outside the pipeline; callers treat a read failure as a missing asset.
func (s *ImageService) Load(path string) ([]byte, error) {
	if !s.Contains(path) {
		return nil, fmt.Errorf("image path %s is outside the image directory", path)
	}
	return os.ReadFile(filepath.FromSlash(path))
}

// Contains reports whether the given path points inside the image directory.
func (s *ImageService) Contains(path string) bool {
	rel, err := filepath.Rel(s.dir, filepath.FromSlash(path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
