package builtin

import (
	"bytes"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskspaceModuleDefaultsToRoot(t *testing.T) {
	t.Parallel()

	mod := &diskspaceModule{}
	collector, err := mod.NewJob(map[string]any{}, nil)

	require.NoError(t, err)
	job, ok := collector.(*diskspaceJob)
	require.True(t, ok)
	assert.Equal(t, "disk_space.root", job.chartID)
	assert.Equal(t, "/", job.mountPoint)
}

func TestSanitizeChartPartReplacesSlashesWithUnderscores(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "root", sanitizeChartPart("/"))
	assert.Equal(t, "data_app", sanitizeChartPart("/data/app"))
}

func TestDiskspaceJobUpdateComputesUsedAndFree(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	job := &diskspaceJob{
		chartID:    "disk_space.root",
		mountPoint: "/",
		statfs: func(path string, buf *syscall.Statfs_t) error {
			buf.Blocks = 1000
			buf.Bfree = 400
			buf.Bsize = 4096
			return nil
		},
		out: &buf,
	}

	ok, err := job.Update(0)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, buf.String(), "SET used = ")
	assert.Contains(t, buf.String(), "SET avail = ")
}
