package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/netresearch/chartd/config"
	"github.com/netresearch/chartd/core"
	"github.com/netresearch/chartd/env"
	"github.com/netresearch/chartd/factory"
	"github.com/netresearch/chartd/logging"
	"github.com/netresearch/chartd/module"
)

// InspectCommand runs a single check+create pass over every job (the same
// bootstrap chartd itself performs) and dumps one job's captured execution
// history (armon/circbuf-bounded, SPEC_FULL.md §B) for postmortem
// debugging, without entering the scheduler's update loop.
type InspectCommand struct {
	Executable string `long:"executable" description:"path used to resolve NETDATA_PLUGINS_DIR-relative modules" default:"/usr/libexec/netdata/plugins.d/chartd.plugin"`
	Args       struct {
		Job string `positional-arg-name:"job" description:"chart name of the job to inspect, e.g. loadavg or mysql_replica1"`
	} `positional-args:"yes" required:"yes"`
}

// Execute loads every module and job, runs the check and create phases,
// and reports the named job's history as JSON.
func (c *InspectCommand) Execute(_ []string) error {
	settings := env.Resolve(os.Getenv, c.Executable)
	existingNames := module.ExistingNames(settings.ModulesDir)
	parsed := env.ParseArgs(nil, func(name string) bool { return existingNames[name] })

	logger := logging.New(settings.Program, os.Stderr, true)
	log := &logging.Adapter{Logger: logger}

	base := config.BaseConfig{UpdateEvery: settings.UpdateEveryDefault}
	pluginCfg, err := config.LoadPluginConfig(filepath.Join(settings.ConfigDir, pluginConfigName), &base)
	if err != nil {
		log.Errorf("loading %s: %v", pluginConfigName, err)
	}

	loader := module.New(settings.ModulesDir, log)
	mods, err := loader.Load(parsed.Selection, pluginCfg.Disabled)
	if err != nil {
		return err
	}

	var jobs []*core.Job
	for _, mod := range mods {
		confPath := filepath.Join(settings.ConfigDir, moduleConfigsSubd, mod.Name()+".conf")
		tree, loadErr := config.LoadYAML(confPath)
		if loadErr != nil {
			log.Errorf("%s: %v", mod.Name(), loadErr)
		}

		modCfg := config.Materialize(tree, mod, base)
		jobs = append(jobs, factory.BuildJobs(mod, modCfg, log, false, false, 0)...)
	}
	if len(jobs) == 0 {
		return core.ErrNoJobsSurvived
	}

	clock := core.NewRealClock()
	proto := core.NewProtocol(io.Discard)

	jobs = core.RunCheckPhase(jobs, clock, log)
	jobs = core.RunCreatePhase(jobs, clock, proto, log)

	for _, job := range jobs {
		if job.ChartName != c.Args.Job {
			continue
		}
		out, err := json.MarshalIndent(job.GetHistory(), "", "  ")
		if err != nil {
			return fmt.Errorf("marshal history: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(out))
		return nil
	}

	return fmt.Errorf("%w: %s", core.ErrJobNotFound, c.Args.Job)
}
