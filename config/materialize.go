package config

import "github.com/netresearch/chartd/core"

// ModuleConfig maps job name to its materialized JobConfig (spec §3). A
// single-job module uses the empty string as its sentinel job-name key; the
// Job Factory translates that back to a nil job name.
type ModuleConfig map[string]core.JobConfig

// SingleJobName is the sentinel key a single-job ModuleConfig uses in place
// of a real job name.
const SingleJobName = ""

// Materialize computes a module's ModuleConfig from its (possibly nil)
// per-module config tree, the module's own attribute bag, and the
// process-wide base configuration, per spec §4.3's exact precedence rules.
func Materialize(tree map[string]any, mod core.AttrSource, base BaseConfig) ModuleConfig {
	if tree == nil {
		tree = map[string]any{}
	}

	defaultsByKey := resolveRequiredDefaults(tree, mod, base)

	result := ModuleConfig{}
	multiJob := false

	for name, raw := range tree {
		if m, ok := raw.(map[string]any); ok {
			multiJob = true
			result[name] = buildJobConfig(m, defaultsByKey)
		}
	}

	if !multiJob {
		result[SingleJobName] = buildJobConfig(tree, defaultsByKey)
	}

	return result
}

// resolveRequiredDefaults computes the default value for each of the three
// required keys, consuming (deleting) a matching top-level scalar from tree
// as it goes, per this precedence (spec §4.3):
//  1. the top-level value in tree, if it coerces to an integer
//  2. the module's own attribute of the same name
//  3. the base configuration
func resolveRequiredDefaults(tree map[string]any, mod core.AttrSource, base BaseConfig) map[string]int {
	baseValues := map[string]int{
		core.RequiredUpdateEvery: base.UpdateEvery,
		core.RequiredPriority:    base.Priority,
		core.RequiredRetries:     base.Retries,
	}

	result := make(map[string]int, len(baseValues))
	for _, key := range [...]string{core.RequiredUpdateEvery, core.RequiredPriority, core.RequiredRetries} {
		if raw, present := tree[key]; present {
			delete(tree, key)
			if n, ok := core.CoerceInt(raw); ok {
				result[key] = n
				continue
			}
		}

		if mod != nil {
			if attr, ok := mod.Attr(key); ok {
				if n, ok := core.CoerceInt(attr); ok {
					result[key] = n
					continue
				}
			}
		}

		result[key] = baseValues[key]
	}

	return result
}

// buildJobConfig copies m into a JobConfig and fills any of the three
// required keys it is missing from defaultsByKey.
func buildJobConfig(m map[string]any, defaultsByKey map[string]int) core.JobConfig {
	cfg := make(core.JobConfig, len(m)+len(defaultsByKey))
	for k, v := range m {
		cfg[k] = v
	}
	for k, v := range defaultsByKey {
		if _, ok := cfg[k]; !ok {
			cfg[k] = v
		}
	}
	return cfg
}
