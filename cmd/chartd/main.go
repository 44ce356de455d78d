// Command chartd is the metrics-collection plugin supervisor (spec §1):
// it loads collector modules, materializes their job configuration, drives
// the check/create/update lifecycle, and schedules updates forever,
// emitting the line protocol of spec §6 on stdout. Its command line is the
// fixed, minimal, positional-token grammar of spec §4.1 — deliberately not
// built with a flags library, unlike the companion cmd/chartdctl.
package main

import (
	"os"
	"path/filepath"

	"github.com/netresearch/chartd/config"
	"github.com/netresearch/chartd/core"
	"github.com/netresearch/chartd/env"
	"github.com/netresearch/chartd/factory"
	"github.com/netresearch/chartd/logging"
	"github.com/netresearch/chartd/module"
	"github.com/netresearch/chartd/notify"
)

const (
	pluginConfigName  = "python.d.conf"
	moduleConfigsSubd = "python.d"
)

func main() {
	settings := env.Resolve(os.Getenv, os.Args[0])
	existingNames := module.ExistingNames(settings.ModulesDir)
	parsed := env.ParseArgs(os.Args[1:], func(name string) bool { return existingNames[name] })

	logger := logging.New(settings.Program, os.Stderr, parsed.Debug)
	log := &logging.Adapter{Logger: logger}
	proto := core.NewProtocol(os.Stdout)
	notifier := notify.New(notify.Settings{})

	base := config.BaseConfig{UpdateEvery: settings.UpdateEveryDefault}
	pluginCfg, err := config.LoadPluginConfig(filepath.Join(settings.ConfigDir, pluginConfigName), &base)
	if err != nil {
		log.Errorf("loading %s: %v", pluginConfigName, err)
	}

	if !pluginCfg.Enabled {
		disable(log, proto, core.ErrDisabledByConfig)
	}

	debug := parsed.Debug || pluginCfg.Debug
	logging.SetDebug(logger, debug)

	loader := module.New(settings.ModulesDir, log)
	mods, err := loader.Load(parsed.Selection, pluginCfg.Disabled)
	if err != nil {
		fatal(log, proto, notifier, settings.Program, err, err.Error())
	}

	var jobs []*core.Job
	for _, mod := range mods {
		confPath := filepath.Join(settings.ConfigDir, moduleConfigsSubd, mod.Name()+".conf")
		tree, loadErr := config.LoadYAML(confPath)
		if loadErr != nil {
			log.Errorf("%s: %v", mod.Name(), loadErr)
		}

		modCfg := config.Materialize(tree, mod, base)
		jobs = append(jobs, factory.BuildJobs(mod, modCfg, log, debug, parsed.HasUpdateEveryOverride, parsed.UpdateEveryOverride)...)
	}

	if len(jobs) == 0 {
		fatal(log, proto, notifier, settings.Program, core.ErrNoJobsSurvived, "no jobs constructed from any loaded module")
	}

	clock := core.NewRealClock()

	jobs = core.RunCheckPhase(jobs, clock, log)
	if len(jobs) == 0 {
		fatal(log, proto, notifier, settings.Program, core.ErrNoJobsSurvived, "no jobs survived the check phase")
	}

	jobs = core.RunCreatePhase(jobs, clock, proto, log)
	if len(jobs) == 0 {
		fatal(log, proto, notifier, settings.Program, core.ErrNoJobsSurvived, "no jobs survived the create phase")
	}

	sched := core.NewScheduler(jobs, clock, proto, log)
	if err := sched.Run(); err != nil {
		fatal(log, proto, notifier, settings.Program, err, err.Error())
	}
}

// fatal implements spec §7's fatal path: DISABLE on stdout, FATAL on
// stderr, a best-effort one-shot alert, and exit 1 — reserved for the
// Fatal-environment taxonomy (spec §7), never the voluntary disable below.
func fatal(log core.Logger, proto *core.Protocol, notifier *notify.Notifier, program string, err error, reason string) {
	log.Criticalf("%v", err)
	proto.Disable()
	_ = notifier.NotifyFatal(program, reason)
	os.Exit(1)
}

// disable implements the voluntary-disable path (spec §4.1, §6): the same
// DISABLE line on stdout, but exit 0 — python.d.conf turning the plugin off
// is not a fatal condition, so no alert fires and no FATAL line is logged.
func disable(log core.Logger, proto *core.Protocol, err error) {
	log.Errorf("%v", err)
	proto.Disable()
	os.Exit(0)
}

