package builtin

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/netresearch/chartd/core"
)

func init() {
	Register(&loadavgModule{})
}

// loadavgModule reads /proc/loadavg. It is multi-job capable: each job
// tracks one of the three averaging windows ("1", "5", "15"), selected by
// the job config's "which" key, defaulting to "1" for a single-job
// materialization (SPEC_FULL.md §B, item 1).
type loadavgModule struct{}

func (m *loadavgModule) Name() string { return "loadavg" }

func (m *loadavgModule) Attr(key string) (any, bool) {
	if key == core.RequiredUpdateEvery {
		return 1, true
	}
	return nil, false
}

func (m *loadavgModule) NewJob(cfg core.JobConfig, jobName *string) (core.Collector, error) {
	which := "1"
	if w, ok := cfg["which"]; ok {
		if s, ok := w.(string); ok {
			which = s
		}
	}

	index, ok := loadavgIndex(which)
	if !ok {
		return nil, fmt.Errorf("loadavg: unsupported averaging window %q", which)
	}

	return &loadavgJob{
		chartID:  "system.load" + which,
		index:    index,
		readFile: os.ReadFile,
		out:      os.Stdout,
	}, nil
}

func loadavgIndex(which string) (int, bool) {
	switch which {
	case "1":
		return 0, true
	case "5":
		return 1, true
	case "15":
		return 2, true
	default:
		return 0, false
	}
}

type loadavgJob struct {
	chartID  string
	index    int
	readFile func(string) ([]byte, error)
	out      io.Writer
}

// Check verifies /proc/loadavg is readable at all before the first update.
func (j *loadavgJob) Check() (bool, error) {
	_, err := j.readFile("/proc/loadavg")
	if err != nil {
		return false, nil
	}
	return true, nil
}

// Create declares this job's own data chart, independent of the
// supervisor's self-monitoring chart (spec §3, §6: "collector modules emit
// their own lines beyond these").
func (j *loadavgJob) Create() (bool, error) {
	fmt.Fprintf(j.out, "CHART %s '' 'System Load Average' 'load' load system.load line 100 1\n", j.chartID)
	fmt.Fprintf(j.out, "DIMENSION load '' absolute 1 1000\n")
	fmt.Fprint(j.out, "\n")
	return true, nil
}

func (j *loadavgJob) Update(sinceLastMicros int64) (bool, error) {
	data, err := j.readFile("/proc/loadavg")
	if err != nil {
		return false, fmt.Errorf("reading /proc/loadavg: %w", err)
	}

	fields := strings.Fields(string(data))
	if len(fields) <= j.index {
		return false, fmt.Errorf("unexpected /proc/loadavg format: %q", data)
	}

	value, err := strconv.ParseFloat(fields[j.index], 64)
	if err != nil {
		return false, fmt.Errorf("parsing load average: %w", err)
	}

	fmt.Fprintf(j.out, "BEGIN %s %d\n", j.chartID, sinceLastMicros)
	// Scaled by 1000 to preserve three decimal digits as an integer, the
	// way netdata's own fixed-point dimensions are typically emitted.
	fmt.Fprintf(j.out, "SET load = %d\n", int64(value*1000))
	fmt.Fprint(j.out, "END\n")
	return true, nil
}
