package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "CHANGELOG.md", cfg.Path)
	assert.Empty(t, cfg.Head, "head resolution happens in the CLI layer")
	assert.Empty(t, cfg.RepoURL)
	assert.Empty(t, cfg.TagPrefix)
}

func TestLoad_ProjectConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".kacl.yml")
	content := `repo_url: https://github.com/acme/widget
tag_prefix: v
head: main
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(LoadOptions{ConfigPath: path})
	require.NoError(t, err)

	assert.Equal(t, "https://github.com/acme/widget", cfg.RepoURL)
	assert.Equal(t, "v", cfg.TagPrefix)
	assert.Equal(t, "main", cfg.Head)
	assert.Equal(t, "CHANGELOG.md", cfg.Path, "defaults survive when the file omits a key")
}

func TestLoad_ExplicitConfigPathMustExist(t *testing.T) {
	_, err := Load(LoadOptions{ConfigPath: filepath.Join(t.TempDir(), "missing.yml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("KACL_PATH", "env/CHANGELOG.md")
	t.Setenv("KACL_TAG_PREFIX", "v")
	t.Setenv("KACL_REPO_URL", "https://github.com/acme/env")

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "env/CHANGELOG.md", cfg.Path)
	assert.Equal(t, "v", cfg.TagPrefix)
	assert.Equal(t, "https://github.com/acme/env", cfg.RepoURL)
}

func TestLoad_EnvironmentBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".kacl.yml")
	require.NoError(t, os.WriteFile(path, []byte("path: file/CHANGELOG.md\n"), 0o644))
	t.Setenv("KACL_PATH", "env/CHANGELOG.md")

	cfg, err := Load(LoadOptions{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, "env/CHANGELOG.md", cfg.Path)
}
