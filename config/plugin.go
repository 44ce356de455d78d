package config

import (
	"fmt"

	"github.com/creasty/defaults"
	"github.com/mitchellh/mapstructure"
)

// LoadPluginConfig reads <CONFIG_DIR>/python.d.conf and applies it over
// base (spec §4.1). base is filled with its creasty/defaults tags first;
// update_every/priority/retries are then decoded onto it with mapstructure,
// the same decodeWithMetadata approach the teacher's cli/config_decode.go
// uses to tell "present in the file" apart from "left at its default" —
// here that distinction is what separates a consumed key from one that
// still needs the enabled/debug/module-disable handling below. A missing
// or unparsable file (spec §7, "config file parse/IO failure") yields the
// defaults with the plugin enabled and nothing disabled.
func LoadPluginConfig(path string, base *BaseConfig) (PluginConfig, error) {
	if err := defaults.Set(base); err != nil {
		return PluginConfig{}, err
	}

	pc := PluginConfig{Enabled: true, Disabled: map[string]bool{}}

	tree, err := LoadYAML(path)
	if err != nil || tree == nil {
		return pc, nil
	}

	var meta mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           base,
		Metadata:         &meta,
		WeaklyTypedInput: true,
		ErrorUnused:      false,
	})
	if err != nil {
		return pc, fmt.Errorf("building config decoder: %w", err)
	}
	if err := decoder.Decode(tree); err != nil {
		return pc, fmt.Errorf("decoding %s: %w", path, err)
	}

	for _, key := range meta.Unused {
		raw := tree[key]
		switch key {
		case "enabled":
			if b, ok := raw.(bool); ok {
				pc.Enabled = b
			}
		case "debug":
			if b, ok := raw.(bool); ok && b {
				pc.Debug = true
			}
		default:
			if b, ok := raw.(bool); ok && !b {
				pc.Disabled[key] = true
			}
		}
	}

	return pc, nil
}
