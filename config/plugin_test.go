package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "python.d.conf")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadPluginConfigDefaultsWhenMissing(t *testing.T) {
	t.Parallel()

	base := BaseConfig{}
	pc, err := LoadPluginConfig(filepath.Join(t.TempDir(), "does-not-exist.conf"), &base)

	require.NoError(t, err)
	assert.True(t, pc.Enabled)
	assert.False(t, pc.Debug)
	assert.Equal(t, 1, base.UpdateEvery)
	assert.Equal(t, 90000, base.Priority)
	assert.Equal(t, 10, base.Retries)
}

func TestLoadPluginConfigParsesEnabledDebugAndOverrides(t *testing.T) {
	t.Parallel()

	path := writeYAML(t, "enabled: false\ndebug: true\nupdate_every: 5\nretries: 2\nmysql: false\n")
	base := BaseConfig{}

	pc, err := LoadPluginConfig(path, &base)

	require.NoError(t, err)
	assert.False(t, pc.Enabled)
	assert.True(t, pc.Debug)
	assert.Equal(t, 5, base.UpdateEvery)
	assert.Equal(t, 2, base.Retries)
	assert.True(t, pc.Disabled["mysql"])
}

func TestLoadPluginConfigIgnoresTrueNonReservedKeys(t *testing.T) {
	t.Parallel()

	path := writeYAML(t, "mysql: true\n")
	base := BaseConfig{}

	pc, err := LoadPluginConfig(path, &base)

	require.NoError(t, err)
	assert.False(t, pc.Disabled["mysql"])
}
