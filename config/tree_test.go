package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadYAMLParsesNestedMaps(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "mysql.conf")
	require.NoError(t, os.WriteFile(path, []byte("retries: 5\nreplica1:\n  dsn: a\n"), 0o600))

	tree, err := LoadYAML(path)

	require.NoError(t, err)
	assert.Equal(t, 5, tree["retries"])
	nested, ok := tree["replica1"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "a", nested["dsn"])
}

func TestLoadYAMLMissingFileReturnsError(t *testing.T) {
	t.Parallel()

	_, err := LoadYAML(filepath.Join(t.TempDir(), "missing.conf"))
	assert.Error(t, err)
}
