package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("JAVAHL_SOURCE_ROOT", "")
	t.Setenv("JAVAHL_THEME", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, 200*time.Millisecond, cfg.QuietPeriodOrDefault())
	assert.Equal(t, []string{"**/*.java"}, cfg.IncludeOrDefault())
	assert.True(t, cfg.RespectGitignoreOrDefault())
	assert.Equal(t, "monokai", cfg.ThemeOrDefault())
	assert.Empty(t, cfg.SourceRoots)
}

func TestLoad(t *testing.T) {
	t.Setenv("JAVAHL_SOURCE_ROOT", "")
	t.Setenv("JAVAHL_THEME", "")

	path := writeConfig(t, `
quiet_period_ms = 50
source_roots = ["src/main/java", "/abs/src"]
include = ["**/*.java"]
exclude = ["**/generated/**"]
respect_gitignore = false
theme = "dracula"
log_level = 3
log_file = "javahl.log"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 50*time.Millisecond, cfg.QuietPeriodOrDefault())
	assert.Equal(t, []string{filepath.Join(filepath.Dir(path), "src/main/java"), "/abs/src"}, cfg.SourceRoots)
	assert.Equal(t, []string{"**/generated/**"}, cfg.Exclude)
	assert.False(t, cfg.RespectGitignoreOrDefault())
	assert.Equal(t, "dracula", cfg.ThemeOrDefault())
	assert.Equal(t, 3, cfg.LogLevel)
	assert.Equal(t, "javahl.log", cfg.LogFile)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("JAVAHL_SOURCE_ROOT", "/one"+string(os.PathListSeparator)+"/two")
	t.Setenv("JAVAHL_THEME", "github")

	cfg, err := Load(writeConfig(t, `theme = "dracula"`))
	require.NoError(t, err)
	assert.Equal(t, []string{"/one", "/two"}, cfg.SourceRoots)
	assert.Equal(t, "github", cfg.ThemeOrDefault())
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("JAVAHL_SOURCE_ROOT", "")
	t.Setenv("JAVAHL_THEME", "")

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", `quiet_period_ms = `, "parse config"},
		{"type", `quiet_period_ms = "fast"`, "parse config"},
		{"negative quiet period", `quiet_period_ms = -1`, "quiet_period_ms=-1"},
		{"bad glob", `exclude = ["[a-"]`, `invalid glob "[a-"`},
		{"negative log level", `log_level = -2`, "log_level=-2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadEmptyPath(t *testing.T) {
	t.Setenv("JAVAHL_SOURCE_ROOT", "")
	t.Setenv("JAVAHL_THEME", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
