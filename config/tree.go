// Package config implements the Config Loader and Config Materializer
// (spec §2 items 2 and 4): reading YAML documents into a generic tree and
// layering defaults over them into per-job configuration.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYAML reads path as a YAML mapping into a generic tree of
// map[string]any / []any / scalars. Per spec §2 item 2, IO and parse
// failures are reported as a recoverable nil: callers proceed with defaults
// as if the file were absent (spec §7, "config file parse/IO failure").
func LoadYAML(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}
