package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, 1000, cfg.AuditLimit)
	assert.Equal(t, 2000, cfg.DiffMaxChars)
	assert.Equal(t, 7777, cfg.Server.Port)
	assert.True(t, cfg.Server.EnableCORS)
}

func TestLoadJSONC(t *testing.T) {
	dir := t.TempDir()
	content := `{
		// comments are tolerated
		"logLevel": "DEBUG",
		"auditLimit": 250,
		"server": {"port": 9000, "enableCors": false}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quill.json"), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, 250, cfg.AuditLimit)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.False(t, cfg.Server.EnableCORS)
	// Unset keys keep their defaults.
	assert.Equal(t, 2000, cfg.DiffMaxChars)
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	content := "logLevel: WARN\nvault: /tmp/notes\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quill.yaml"), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "WARN", cfg.LogLevel)
	assert.Equal(t, "/tmp/notes", cfg.Vault)
}

func TestEnvOverridesWin(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quill.json"), []byte(`{"logLevel":"DEBUG"}`), 0o644))

	t.Setenv("QUILL_LOG_LEVEL", "ERROR")
	t.Setenv("QUILL_AUDIT_LIMIT", "42")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "ERROR", cfg.LogLevel)
	assert.Equal(t, 42, cfg.AuditLimit)
}

func TestQuillConfigEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "elsewhere.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"auditLimit": 7}`), 0o644))

	t.Setenv("QUILL_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.AuditLimit)
}

func TestMalformedFileIsSkipped(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quill.json"), []byte("{nope"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "INFO", cfg.LogLevel)
}
