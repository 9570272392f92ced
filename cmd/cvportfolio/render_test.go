package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderResume_HTML(t *testing.T) {
	out := filepath.Join(t.TempDir(), "resume.html")
	var stdout bytes.Buffer

	err := renderResume(context.Background(), renderOptions{
		Content:       sampleContentPath,
		Out:           out,
		PhotoFallback: "/assets/fallback.png",
	}, &stdout)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Ivan Gegov")
	assert.Contains(t, stdout.String(), "Wrote "+out)
}

func TestRenderResume_RejectsUnknownFormat(t *testing.T) {
	var stdout bytes.Buffer

	err := renderResume(context.Background(), renderOptions{Content: sampleContentPath, Out: "resume.docx"}, &stdout)
	assert.ErrorContains(t, err, "unsupported output format")

	err = renderResume(context.Background(), renderOptions{Out: "resume.html"}, &stdout)
	assert.ErrorContains(t, err, "--content is required")
}
