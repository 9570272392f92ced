// Package schemas bundles the JSON Schema documents shipped with the binary.
package schemas

import (
	"embed"
)

// File names of the bundled schemas
const (
	JSONResumeFile = "jsonresume.schema.json"
	CVDataFile     = "cv_data.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Read returns the raw bytes of a bundled schema
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}

// Names lists every bundled schema file
func Names() []string {
	entries, err := files.ReadDir(".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
