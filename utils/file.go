package utils

import (
	"path/filepath"
	"strings"
)

// FileNameWithoutExt returns the base name of a path with its extension
// stripped, used as the prefix for stored image names.
func FileNameWithoutExt(path string) string {
	base := filepath.Base(filepath.ToSlash(path))
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	return SanitizeFileName(base)
}

// SanitizeFileName replaces characters that are unsafe in file names.
func SanitizeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			return r
		}
		return '_'
	}, name)
}
