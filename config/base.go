package config

// BaseConfig is the process-wide base configuration (spec §3, §4.1):
// update_every, priority, retries, filled with creasty/defaults the same
// way the teacher's BareJob fills its struct defaults.
type BaseConfig struct {
	UpdateEvery int `mapstructure:"update_every" default:"1"`
	Priority    int `mapstructure:"priority" default:"90000"`
	Retries     int `mapstructure:"retries" default:"10"`
}

// PluginConfig is the result of parsing <CONFIG_DIR>/python.d.conf (spec
// §4.1, §6): whether the plugin is enabled at all,
// whether debug mode is forced on, and the set of module names disabled by
// an explicit `false` entry.
type PluginConfig struct {
	Enabled  bool
	Debug    bool
	Disabled map[string]bool
}
