package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_TopLevel(t *testing.T) {
	path := writeProfile(t, `
vars:
  table: users
  limit: 10
env:
  REGION: eu-west-1
`)

	cfg, err := Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, "users", cfg.Profile["table"])
	assert.Equal(t, 10, cfg.Profile["limit"])
	assert.Equal(t, "eu-west-1", cfg.DeclaredEnv["REGION"])
	assert.Nil(t, cfg.CLI)
	assert.Nil(t, cfg.Set)
}

func TestLoad_NamedProfileOverlay(t *testing.T) {
	path := writeProfile(t, `
vars:
  table: users
  schema: public
profiles:
  prod:
    vars:
      table: users_prod
    env:
      REGION: us-east-1
`)

	cfg, err := Load(path, "prod")
	require.NoError(t, err)

	assert.Equal(t, "users_prod", cfg.Profile["table"], "named profile wins")
	assert.Equal(t, "public", cfg.Profile["schema"], "untouched keys survive")
	assert.Equal(t, "us-east-1", cfg.DeclaredEnv["REGION"])
}

func TestLoad_UnknownProfileName(t *testing.T) {
	path := writeProfile(t, "vars:\n  a: 1\n")

	_, err := Load(path, "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"nope"`)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), "")
	require.Error(t, err)
}

func TestLoad_EmptySectionsDefaultToEmptyMaps(t *testing.T) {
	path := writeProfile(t, "env:\n  A: b\n")

	cfg, err := Load(path, "")
	require.NoError(t, err)

	assert.NotNil(t, cfg.Profile)
	assert.Empty(t, cfg.Profile)
	assert.Equal(t, "b", cfg.DeclaredEnv["A"])
}
