// Package exec implements the out-of-process collector variant (Design
// Notes §9, variant (b)): a module backed by an external program invoked by
// subprocess, speaking the same CHART/DIMENSION/BEGIN/END line protocol on
// its own stdout, which this collector relays upward unchanged. Grounded on
// the teacher's core/localjob.go: gobs/args tokenizes the command string,
// exec.LookPath resolves the binary, and the child's stdout is wired
// directly to the job's output writer.
package exec

import (
	"errors"
	"fmt"
	"io"
	"os"
	osexec "os/exec"
	"strconv"

	"github.com/armon/circbuf"
	"github.com/gobs/args"

	"github.com/netresearch/chartd/core"
)

// capturedOutputLimit bounds how much of a single phase's stdout is kept
// for LastOutput, mirroring core's own maxCapturedOutput.
const capturedOutputLimit = 64 * 1024

// Module wraps one discovered "<name>.chart.py" file (spec §4.2, §6) as an
// out-of-process collector.
type Module struct {
	name string
	path string
}

// NewModule returns a Module for the file at path, named name (the
// filename with its discovery suffix stripped).
func NewModule(name, path string) *Module {
	return &Module{name: name, path: path}
}

func (m *Module) Name() string { return m.name }

// Attr has nothing to declare: an exec module's defaults come entirely from
// the module's own config file or the base configuration (spec §4.3).
func (m *Module) Attr(key string) (any, bool) { return nil, false }

func (m *Module) NewJob(cfg core.JobConfig, jobName *string) (core.Collector, error) {
	commandLine := m.path
	if c, ok := cfg["command"]; ok {
		if s, ok := c.(string); ok && s != "" {
			commandLine = s
		}
	}

	tokens := args.GetArgs(commandLine)
	if len(tokens) == 0 {
		return nil, core.ErrEmptyCommand
	}

	bin, err := osexec.LookPath(tokens[0])
	if err != nil {
		return nil, fmt.Errorf("looking up %q: %w", tokens[0], err)
	}

	captured, _ := circbuf.NewBuffer(capturedOutputLimit)
	return &job{bin: bin, args: tokens[1:], out: os.Stdout, captured: captured}, nil
}

type job struct {
	bin      string
	args     []string
	out      io.Writer
	captured *circbuf.Buffer
}

// LastOutput returns the most recently captured phase's stdout, satisfying
// core.OutputCapturer so chartdctl inspect can show it.
func (j *job) LastOutput() string {
	if j.captured == nil {
		return ""
	}
	return j.captured.String()
}

func (j *job) Check() (bool, error) {
	return j.runPhase("check")
}

func (j *job) Create() (bool, error) {
	return j.runPhase("create")
}

func (j *job) Update(sinceLastMicros int64) (bool, error) {
	return j.runPhase("update", strconv.FormatInt(sinceLastMicros, 10))
}

// runPhase invokes the child once for a single check/create/update call. A
// nonzero exit is a declared failure (false, nil); a failure to even start
// the process is "misbehaving" (spec §7 taxonomy item 3).
func (j *job) runPhase(phase string, extra ...string) (bool, error) {
	cmdArgs := make([]string, 0, len(j.args)+1+len(extra))
	cmdArgs = append(cmdArgs, j.args...)
	cmdArgs = append(cmdArgs, phase)
	cmdArgs = append(cmdArgs, extra...)

	cmd := osexec.Command(j.bin, cmdArgs...)
	if j.captured != nil {
		j.captured.Reset()
		cmd.Stdout = io.MultiWriter(j.out, j.captured)
	} else {
		cmd.Stdout = j.out
	}
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *osexec.ExitError
		if errors.As(err, &exitErr) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
