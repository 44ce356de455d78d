package env

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fakeGetenv(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestResolveUsesEnvironmentOverrides(t *testing.T) {
	t.Parallel()

	getenv := fakeGetenv(map[string]string{
		"NETDATA_PLUGINS_DIR": "/usr/libexec/netdata/plugins.d",
		"NETDATA_CONFIG_DIR":  "/etc/netdata",
		"NETDATA_UPDATE_EVERY": "3",
	})

	s := Resolve(getenv, "/usr/libexec/netdata/plugins.d/chartd.plugin")

	assert.Equal(t, filepath.Join("/usr/libexec/netdata/plugins.d", "python.d")+string(filepath.Separator), s.ModulesDir)
	assert.Equal(t, "/etc/netdata"+string(filepath.Separator), s.ConfigDir)
	assert.Equal(t, 3, s.UpdateEveryDefault)
	assert.Equal(t, "chartd", s.Program)
}

func TestResolveFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	s := Resolve(fakeGetenv(nil), "/opt/netdata/plugins.d/chartd.plugin")

	assert.Equal(t, filepath.Join("/opt/netdata/plugins.d", "python.d")+string(filepath.Separator), s.ModulesDir)
	assert.Equal(t, "/etc/netdata/", s.ConfigDir)
	assert.Equal(t, 1, s.UpdateEveryDefault)
}

func TestResolveInvalidUpdateEveryFallsBackToOne(t *testing.T) {
	t.Parallel()

	s := Resolve(fakeGetenv(map[string]string{"NETDATA_UPDATE_EVERY": "not-a-number"}), "/x/chartd.plugin")
	assert.Equal(t, 1, s.UpdateEveryDefault)

	s = Resolve(fakeGetenv(map[string]string{"NETDATA_UPDATE_EVERY": "-5"}), "/x/chartd.plugin")
	assert.Equal(t, 1, s.UpdateEveryDefault)
}

func TestResolveProgramTrimsPluginSuffix(t *testing.T) {
	t.Parallel()

	s := Resolve(fakeGetenv(nil), "/x/y/chartd.plugin")
	assert.Equal(t, "chartd", s.Program)
}
