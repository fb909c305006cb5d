package content

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExcludes are content paths never turned into pages.
var DefaultExcludes = []string{
	".git",
	".obsidian",
	".flowershow",
	"node_modules",
	"**/.DS_Store",
}

// excluded checks if relPath matches any of the given glob patterns, either
// as a whole path or by its base name. doublestar gives ** support.
func excluded(relPath string, patterns []string) bool {
	normalized := filepath.ToSlash(relPath)
	base := filepath.Base(normalized)

	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		if matched, err := doublestar.Match(pattern, normalized); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}
