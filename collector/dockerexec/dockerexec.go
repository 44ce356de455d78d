// Package dockerexec implements the containerized collector variant
// (Design Notes §9, variant (c)'s Docker analogue, SPEC_FULL.md §B item 3):
// check/create/update run as `docker exec` invocations against an
// already-running container. Grounded on the teacher's core/execjob.go
// (Docker exec job) and registered into the builtin registry, since the
// collector itself is statically linked — only its target is external.
package dockerexec

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/armon/circbuf"
	"github.com/containerd/errdefs"
	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"

	"github.com/netresearch/chartd/collector/builtin"
	"github.com/netresearch/chartd/config"
	"github.com/netresearch/chartd/core"
)

// capturedOutputLimit bounds how much of a single exec's relayed output is
// kept for LastOutput, mirroring core's own maxCapturedOutput.
const capturedOutputLimit = 64 * 1024

// dockerAPI is the slice of the Docker client this collector actually
// calls, grounded on the teacher's own DockerProvider abstraction (an
// interface narrowed to just the methods a caller needs, rather than the
// concrete *client.Client) so tests can substitute a fake daemon.
type dockerAPI interface {
	ContainerInspect(ctx context.Context, containerID string) (types.ContainerJSON, error)
	ContainerExecCreate(ctx context.Context, containerID string, config container.ExecOptions) (types.IDResponse, error)
	ContainerExecAttach(ctx context.Context, execID string, config container.ExecStartOptions) (types.HijackedResponse, error)
	ContainerExecInspect(ctx context.Context, execID string) (container.ExecInspect, error)
}

func init() {
	builtin.Register(&Module{})
}

// Module constructs jobs that exec into an already-running Docker
// container. No image pulling or container lifecycle management happens
// here (SPEC_FULL.md §B): the container is assumed to already be running.
type Module struct{}

// containerField is validated through config.Validate rather than a direct
// reference.ParseNormalizedNamed call, so the job-config "container" value
// goes through the same "dockerref" tag SPEC_FULL.md §A.3 describes.
type containerField struct {
	Container string `validate:"required,dockerref"`
}

func (m *Module) Name() string { return "dockerexec" }

func (m *Module) Attr(key string) (any, bool) { return nil, false }

func (m *Module) NewJob(cfg core.JobConfig, jobName *string) (core.Collector, error) {
	containerRef, _ := cfg["container"].(string)
	if err := config.Validate.Struct(containerField{Container: containerRef}); err != nil {
		return nil, fmt.Errorf("dockerexec: invalid container reference %q: %w", containerRef, err)
	}

	command, _ := cfg["command"].(string)
	if command == "" {
		command = "true"
	}

	cli, err := newDockerClient()
	if err != nil {
		return nil, fmt.Errorf("dockerexec: creating docker client: %w", err)
	}

	captured, _ := circbuf.NewBuffer(capturedOutputLimit)

	return &job{
		BaseCollector: core.BaseCollector{},
		cli:           cli,
		container:     containerRef,
		command:       []string{"/bin/sh", "-c", command},
		out:           os.Stdout,
		captured:      captured,
	}, nil
}

// newDockerClient builds a client against the daemon named by DOCKER_HOST,
// using TLS material from DOCKER_CERT_PATH when it is set, via the Docker
// SDK's own client.WithTLSClientConfig option.
func newDockerClient() (dockerAPI, error) {
	opts := []client.Opt{client.FromEnv, client.WithAPIVersionNegotiation()}

	if certPath := os.Getenv("DOCKER_CERT_PATH"); certPath != "" {
		opts = append(opts, client.WithTLSClientConfig(
			certPath+"/ca.pem",
			certPath+"/cert.pem",
			certPath+"/key.pem",
		))
	}

	return client.NewClientWithOpts(opts...)
}

type job struct {
	core.BaseCollector
	cli       dockerAPI
	container string
	command   []string
	out       io.Writer
	captured  *circbuf.Buffer
}

// LastOutput returns the most recently relayed exec output, satisfying
// core.OutputCapturer so chartdctl inspect can show it.
func (j *job) LastOutput() string {
	if j.captured == nil {
		return ""
	}
	return j.captured.String()
}

// Check reports the container exists and is running. A not-found container
// is a declared check failure, not a crash (containerd/errdefs classifies
// the Docker client error).
func (j *job) Check() (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	info, err := j.cli.ContainerInspect(ctx, j.container)
	if err != nil {
		if errdefs.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	if info.State == nil || !info.State.Running {
		return false, nil
	}
	return true, nil
}

func (j *job) Update(sinceLastMicros int64) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	execCfg := container.ExecOptions{
		Cmd:          j.command,
		AttachStdout: true,
		AttachStderr: true,
	}

	created, err := j.cli.ContainerExecCreate(ctx, j.container, execCfg)
	if err != nil {
		return false, fmt.Errorf("creating exec: %w", err)
	}

	attach, err := j.cli.ContainerExecAttach(ctx, created.ID, container.ExecStartOptions{})
	if err != nil {
		return false, fmt.Errorf("attaching exec: %w", err)
	}
	defer attach.Close()

	dest := j.out
	if j.captured != nil {
		j.captured.Reset()
		dest = io.MultiWriter(j.out, j.captured)
	}
	if _, err := io.Copy(dest, attach.Reader); err != nil {
		return false, fmt.Errorf("relaying exec output: %w", err)
	}

	inspect, err := j.cli.ContainerExecInspect(ctx, created.ID)
	if err != nil {
		return false, fmt.Errorf("inspecting exec: %w", err)
	}

	return inspect.ExitCode == 0, nil
}
