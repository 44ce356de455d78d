package builtin

import (
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/netresearch/chartd/core"
)

func init() {
	Register(&diskspaceModule{})
}

// diskspaceModule reports free/used space on configured mount points via
// statfs. Multi-job capable: each job config names one "mount_point",
// defaulting to "/" for a single-job materialization.
type diskspaceModule struct{}

func (m *diskspaceModule) Name() string { return "diskspace" }

func (m *diskspaceModule) Attr(key string) (any, bool) {
	if key == core.RequiredUpdateEvery {
		return 10, true
	}
	return nil, false
}

func (m *diskspaceModule) NewJob(cfg core.JobConfig, jobName *string) (core.Collector, error) {
	mountPoint := "/"
	if mp, ok := cfg["mount_point"]; ok {
		if s, ok := mp.(string); ok && s != "" {
			mountPoint = s
		}
	}

	chartID := "disk_space." + sanitizeChartPart(mountPoint)
	return &diskspaceJob{
		chartID:    chartID,
		mountPoint: mountPoint,
		statfs:     syscall.Statfs,
		out:        os.Stdout,
	}, nil
}

func sanitizeChartPart(mountPoint string) string {
	if mountPoint == "/" {
		return "root"
	}
	out := make([]byte, 0, len(mountPoint))
	for i := 0; i < len(mountPoint); i++ {
		c := mountPoint[i]
		if c == '/' {
			if len(out) > 0 {
				out = append(out, '_')
			}
			continue
		}
		out = append(out, c)
	}
	return string(out)
}

type diskspaceJob struct {
	chartID    string
	mountPoint string
	statfs     func(path string, buf *syscall.Statfs_t) error
	out        io.Writer
}

func (j *diskspaceJob) Check() (bool, error) {
	var buf syscall.Statfs_t
	if err := j.statfs(j.mountPoint, &buf); err != nil {
		return false, nil
	}
	return true, nil
}

func (j *diskspaceJob) Create() (bool, error) {
	fmt.Fprintf(j.out, "CHART %s '' 'Disk Space Usage for %s' 'GiB' disk.space disk_space.used stacked 2000 1\n", j.chartID, j.mountPoint)
	fmt.Fprintf(j.out, "DIMENSION used '' absolute 1 %d\n", gibDivisor)
	fmt.Fprintf(j.out, "DIMENSION avail '' absolute 1 %d\n", gibDivisor)
	fmt.Fprint(j.out, "\n")
	return true, nil
}

const gibDivisor = 1 << 30

func (j *diskspaceJob) Update(sinceLastMicros int64) (bool, error) {
	var buf syscall.Statfs_t
	if err := j.statfs(j.mountPoint, &buf); err != nil {
		return false, fmt.Errorf("statfs %s: %w", j.mountPoint, err)
	}

	total := buf.Blocks * uint64(buf.Bsize)
	free := buf.Bfree * uint64(buf.Bsize)
	used := total - free

	fmt.Fprintf(j.out, "BEGIN %s %d\n", j.chartID, sinceLastMicros)
	fmt.Fprintf(j.out, "SET used = %d\n", used)
	fmt.Fprintf(j.out, "SET avail = %d\n", free)
	fmt.Fprint(j.out, "END\n")
	return true, nil
}
