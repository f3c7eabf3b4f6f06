package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "config.json", `{
		"folder_path": "/mnt/user/media/movies",
		"output_path": "/mnt/user/system/hardlink_report.txt",
		"log_level": "DEBUG",
		"filters": {
			"ignore_paths": ["/mnt/user/media/movies/temp"],
			"ignore_extensions": [".nfo", ".srt"],
			"ignore": ["AgeDays < 1"]
		},
		"notifications": {
			"detailed": true,
			"skip_empty_run": true,
			"service": {"discord": "https://discord.com/api/webhooks/123/abc"}
		}
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/mnt/user/media/movies", cfg.FolderPath)
	assert.Equal(t, "/mnt/user/system/hardlink_report.txt", cfg.OutputPath)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, []string{"/mnt/user/media/movies/temp"}, cfg.Filters.IgnorePaths)
	assert.Equal(t, []string{".nfo", ".srt"}, cfg.Filters.IgnoreExtensions)
	assert.Equal(t, []string{"AgeDays < 1"}, cfg.Filters.Ignore)
	assert.True(t, cfg.Notifications.Detailed)
	assert.True(t, cfg.Notifications.SkipEmptyRun)
	assert.Equal(t, "https://discord.com/api/webhooks/123/abc", cfg.Notifications.Service.Discord)
}

func TestLoad_DefaultLogLevel(t *testing.T) {
	path := writeConfig(t, "config.json", `{
		"folder_path": "/mnt/user/media",
		"output_path": "/mnt/user/report.txt"
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "INFO", cfg.LogLevel)
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
folder_path: /mnt/user/media
output_path: /mnt/user/report.txt
log_level: TRACE
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/mnt/user/media", cfg.FolderPath)
	assert.Equal(t, "TRACE", cfg.LogLevel)
}

func TestLoad_ResolvesRelativePaths(t *testing.T) {
	path := writeConfig(t, "config.json", `{
		"folder_path": "media",
		"output_path": "reports/report.txt"
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(cfg.FolderPath))
	assert.True(t, filepath.IsAbs(cfg.OutputPath))
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		path     func(t *testing.T) string
		expected error
	}{
		{
			name: "missing_file",
			path: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nope.json")
			},
			expected: ErrNotFound,
		},
		{
			name: "malformed_json",
			path: func(t *testing.T) string {
				return writeConfig(t, "config.json", `{"folder_path": `)
			},
			expected: ErrInvalidFormat,
		},
		{
			name: "missing_folder_path",
			path: func(t *testing.T) string {
				return writeConfig(t, "config.json", `{"output_path": "/tmp/report.txt"}`)
			},
			expected: ErrMissingKeys,
		},
		{
			name: "missing_output_path",
			path: func(t *testing.T) string {
				return writeConfig(t, "config.json", `{"folder_path": "/tmp"}`)
			},
			expected: ErrMissingKeys,
		},
		{
			name: "empty_required_value",
			path: func(t *testing.T) string {
				return writeConfig(t, "config.json", `{"folder_path": "", "output_path": "/tmp/report.txt"}`)
			},
			expected: ErrMissingKeys,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path(t))
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}
