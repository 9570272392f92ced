package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var sampleContentPath = filepath.Join("..", "..", "testdata", "cv", "sample_cv.json")

// copySample copies the sample content into a temp dir and returns the copy's path
func copySample(t *testing.T) string {
	t.Helper()

	data, err := os.ReadFile(sampleContentPath)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "cv.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}
