// Package factory implements the Job Factory (spec §4.4): turning one
// module's materialized ModuleConfig into live *core.Job instances.
package factory

import (
	"sort"

	"github.com/netresearch/chartd/config"
	"github.com/netresearch/chartd/core"
)

// BuildJobs constructs one *core.Job per (module, job-name) pair in modCfg.
// A construction failure is logged and skips only that job (spec §4.4,
// §7). Job names are visited in sorted order so the resulting job list has
// a deterministic creation order (spec §5's ordering guarantee) independent
// of Go's randomized map iteration.
//
// debug and hasOverride/overrideUpdateEvery implement spec §4.4's rule:
// "If debug override is in effect and the debug flag is set, rewrite each
// job's timetable to use the base update_every in place of its configured
// value" — which, per spec §8's boundary behavior, only applies when both
// flags are set.
func BuildJobs(mod core.Module, modCfg config.ModuleConfig, log core.Logger, debug, hasOverride bool, overrideUpdateEvery int) []*core.Job {
	names := make([]string, 0, len(modCfg))
	for name := range modCfg {
		names = append(names, name)
	}
	sort.Strings(names)

	jobs := make([]*core.Job, 0, len(names))
	for _, name := range names {
		cfg := modCfg[name]

		if err := config.ValidateJobConfig(cfg); err != nil {
			log.Errorf("%s: %v", mod.Name(), err)
			continue
		}

		var jobNamePtr *string
		if name != config.SingleJobName {
			n := name
			jobNamePtr = &n
		}

		collector, err := mod.NewJob(cfg, jobNamePtr)
		if err != nil {
			log.Errorf("%s: failed to construct job %q: %v", mod.Name(), name, err)
			continue
		}

		job := core.NewJob(mod.Name(), jobNamePtr, cfg, collector)

		if debug && hasOverride {
			job.Timetable.Freq = int64(overrideUpdateEvery)
		}

		jobs = append(jobs, job)
	}
	return jobs
}
