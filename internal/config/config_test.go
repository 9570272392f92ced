package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{
		"content": "content/cv.yaml",
		"out": "dist/resume.json",
		"port": 9090,
		"concurrency": 4,
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "content/cv.yaml", cfg.Content)
	assert.Equal(t, "dist/resume.json", cfg.Out)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", "content: cv.json\nlog_level: debug\nport: 3000\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "cv.json", cfg.Content)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3000, cfg.Port)
}

func TestLoadConfig_ExpandsEnv(t *testing.T) {
	t.Setenv("CV_TEST_DB", "postgres://localhost/cv")
	path := writeConfig(t, "config.json", `{"database_url": "${CV_TEST_DB}"}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/cv", cfg.DatabaseURL)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{ invalid json }`)

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "config.yml", "port: [oops")

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	existing := writeConfig(t, "cv.json", `{}`)

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "empty is valid", cfg: Config{}},
		{name: "existing content", cfg: Config{Content: existing, LogLevel: "WARN"}},
		{name: "negative port", cfg: Config{Port: -1}, wantErr: "'port'"},
		{name: "port too large", cfg: Config{Port: 70000}, wantErr: "'port'"},
		{name: "negative concurrency", cfg: Config{Concurrency: -2}, wantErr: "'concurrency'"},
		{name: "unknown log level", cfg: Config{LogLevel: "chatty"}, wantErr: "log_level"},
		{name: "missing content", cfg: Config{Content: "/nonexistent/cv.json"}, wantErr: "content file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FILE", "/tmp/cv.log")
	t.Setenv("CHROME_PATH", "/usr/bin/chromium")

	cfg := Config{LogLevel: "error"}
	cfg.ApplyEnv()

	assert.Equal(t, "postgres://env", cfg.DatabaseURL)
	assert.Equal(t, "error", cfg.LogLevel, "file value wins over env")
	assert.Equal(t, "/tmp/cv.log", cfg.LogFile)
	assert.Equal(t, "/usr/bin/chromium", cfg.ChromePath)
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Content: "mine.json", Port: 9000}
	defaults := Config{Content: "default.json", Out: "out.json", Concurrency: 2}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "mine.json", merged.Content)
	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, "out.json", merged.Out)
	assert.Equal(t, 2, merged.Concurrency)
	assert.Equal(t, DefaultLogLevel, merged.LogLevel)
	assert.Equal(t, DefaultGamesBase, merged.GamesBaseURL)

	assert.Equal(t, "mine.json", cfg.Content, "receiver is not modified")
	assert.Empty(t, cfg.Out)
}

func TestMergeWithDefaults_PackageDefaults(t *testing.T) {
	merged := (&Config{}).MergeWithDefaults(Config{})

	assert.Equal(t, DefaultOut, merged.Out)
	assert.Equal(t, DefaultPort, merged.Port)
	assert.Equal(t, DefaultConcurrency, merged.Concurrency)
}
