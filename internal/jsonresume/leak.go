package jsonresume

import (
	"strings"

	"github.com/igegov/cv-portfolio/internal/prune"
)

// forbiddenFragments are site-only field names that must never reach an exported document.
// Matching is by substring on the lowercased key.
var forbiddenFragments = []string{"thumbnail", "imageurl", "ctalabel", "order"}

// forbiddenKeys are matched against the whole lowercased key
var forbiddenKeys = []string{"ui"}

// ForbiddenPaths returns the path of every object key in doc that names a
// site presentation field. An empty result means the document is clean.
func ForbiddenPaths(doc any) ([]string, error) {
	root, err := prune.FromValue(doc)
	if err != nil {
		return nil, err
	}

	var paths []string
	prune.Walk(root, func(path, key string) {
		if isForbiddenKey(key) {
			paths = append(paths, path)
		}
	})
	return paths, nil
}

func isForbiddenKey(key string) bool {
	lower := strings.ToLower(key)
	for _, k := range forbiddenKeys {
		if lower == k {
			return true
		}
	}
	for _, f := range forbiddenFragments {
		if strings.Contains(lower, f) {
			return true
		}
	}
	return false
}
