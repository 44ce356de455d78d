package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/netresearch/chartd/config"
	"github.com/netresearch/chartd/core"
	"github.com/netresearch/chartd/env"
	"github.com/netresearch/chartd/factory"
	"github.com/netresearch/chartd/logging"
	"github.com/netresearch/chartd/module"
)

const (
	pluginConfigName  = "python.d.conf"
	moduleConfigsSubd = "python.d"
)

// ValidateCommand resolves the environment, loads modules and their
// configuration, and reports the resulting job list without starting the
// scheduler, mirroring the teacher's ValidateCommand.
type ValidateCommand struct {
	Executable string `long:"executable" description:"path used to resolve NETDATA_PLUGINS_DIR-relative modules" default:"/usr/libexec/netdata/plugins.d/chartd.plugin"`
}

type jobReport struct {
	Module      string `json:"module"`
	Job         string `json:"job"`
	UpdateEvery int    `json:"update_every"`
	Retries     int    `json:"retries"`
}

// Execute runs the dry-run validation pass.
func (c *ValidateCommand) Execute(_ []string) error {
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
	if !pluginCfg.Enabled {
		return fmt.Errorf("%w: %s disables the plugin", core.ErrDisabledByConfig, pluginConfigName)
	}

	loader := module.New(settings.ModulesDir, log)
	mods, err := loader.Load(parsed.Selection, pluginCfg.Disabled)
	if err != nil {
		return err
	}

	var report []jobReport
	for _, mod := range mods {
		confPath := filepath.Join(settings.ConfigDir, moduleConfigsSubd, mod.Name()+".conf")
		tree, loadErr := config.LoadYAML(confPath)
		if loadErr != nil {
			log.Errorf("%s: %v", mod.Name(), loadErr)
		}

		modCfg := config.Materialize(tree, mod, base)
		jobs := factory.BuildJobs(mod, modCfg, log, false, false, 0)
		for _, job := range jobs {
			report = append(report, jobReport{
				Module:      mod.Name(),
				Job:         job.JobName(),
				UpdateEvery: int(job.Timetable.Freq),
				Retries:     job.Retries,
			})
		}
	}

	if len(report) == 0 {
		return core.ErrNoJobsSurvived
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}
