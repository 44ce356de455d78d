package factory

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netresearch/chartd/config"
	"github.com/netresearch/chartd/core"
)

type quietLogger struct{ errors int }

func (l *quietLogger) Criticalf(format string, args ...any) {}
func (l *quietLogger) Debugf(format string, args ...any)    {}
func (l *quietLogger) Errorf(format string, args ...any)    { l.errors++ }
func (l *quietLogger) Noticef(format string, args ...any)   {}
func (l *quietLogger) Warningf(format string, args ...any)  {}

type stubModule struct {
	name    string
	failFor string
}

func (m *stubModule) Name() string               { return m.name }
func (m *stubModule) Attr(key string) (any, bool) { return nil, false }
func (m *stubModule) NewJob(cfg core.JobConfig, jobName *string) (core.Collector, error) {
	if jobName != nil && *jobName == m.failFor {
		return nil, fmt.Errorf("construction failed for %s", *jobName)
	}
	return stubCollector{}, nil
}

type stubCollector struct{}

func (stubCollector) Check() (bool, error)       { return true, nil }
func (stubCollector) Create() (bool, error)      { return true, nil }
func (stubCollector) Update(int64) (bool, error) { return true, nil }

func TestBuildJobsSortsByNameDeterministically(t *testing.T) {
	t.Parallel()

	mod := &stubModule{name: "mysql"}
	modCfg := config.ModuleConfig{
		"zeta":  core.JobConfig{"update_every": 1, "priority": 1, "retries": 1},
		"alpha": core.JobConfig{"update_every": 1, "priority": 1, "retries": 1},
	}

	jobs := BuildJobs(mod, modCfg, &quietLogger{}, false, false, 0)

	require.Len(t, jobs, 2)
	assert.Equal(t, "mysql_alpha", jobs[0].ChartName)
	assert.Equal(t, "mysql_zeta", jobs[1].ChartName)
}

func TestBuildJobsSkipsInvalidConfigWithoutAbortingOthers(t *testing.T) {
	t.Parallel()

	mod := &stubModule{name: "mysql"}
	modCfg := config.ModuleConfig{
		"bad":  core.JobConfig{"update_every": 0, "priority": 1, "retries": 1},
		"good": core.JobConfig{"update_every": 1, "priority": 1, "retries": 1},
	}
	log := &quietLogger{}

	jobs := BuildJobs(mod, modCfg, log, false, false, 0)

	require.Len(t, jobs, 1)
	assert.Equal(t, "mysql_good", jobs[0].ChartName)
	assert.Equal(t, 1, log.errors)
}

func TestBuildJobsSkipsOnlyFailedConstruction(t *testing.T) {
	t.Parallel()

	mod := &stubModule{name: "mysql", failFor: "broken"}
	modCfg := config.ModuleConfig{
		"broken": core.JobConfig{"update_every": 1, "priority": 1, "retries": 1},
		"fine":   core.JobConfig{"update_every": 1, "priority": 1, "retries": 1},
	}

	jobs := BuildJobs(mod, modCfg, &quietLogger{}, false, false, 0)

	require.Len(t, jobs, 1)
	assert.Equal(t, "mysql_fine", jobs[0].ChartName)
}

func TestBuildJobsAppliesDebugOverrideOnlyWhenBothSet(t *testing.T) {
	t.Parallel()

	mod := &stubModule{name: "loadavg"}
	modCfg := config.ModuleConfig{
		config.SingleJobName: core.JobConfig{"update_every": 10, "priority": 1, "retries": 1},
	}

	withoutOverride := BuildJobs(mod, modCfg, &quietLogger{}, true, false, 2)
	assert.Equal(t, int64(10), withoutOverride[0].Timetable.Freq)

	withOverride := BuildJobs(mod, modCfg, &quietLogger{}, true, true, 2)
	assert.Equal(t, int64(2), withOverride[0].Timetable.Freq)

	debugFalseIgnoresOverride := BuildJobs(mod, modCfg, &quietLogger{}, false, true, 2)
	assert.Equal(t, int64(10), debugFalseIgnoresOverride[0].Timetable.Freq)
}
