package dockerclient

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/moby/term"
)

const (
	dockerMaxNameLen = 255
	shortLen         = 6       // length of the hash-like suffix
	tailMarker       = "tail-" // visible indicator that we trimmed the left side
)

// BuildRun describes one containerized build invocation.
type BuildRun struct {
	Image      string
	WorkingDir string   // also the in-container path of the bind-mounted source root
	Binds      []string // "host:container:mode" bind specs, source root first
	Cmd        []string
	Env        []string
}

// BuildResult carries the container's exit status and captured streams.
type BuildResult struct {
	ExitCode int64
	Stdout   string
	Stderr   string
}

type DockerBuildRunner interface {
	RunBuild(ctx context.Context, name string, run BuildRun) (*BuildResult, error)
}

// RunBuild emulates:
//
//	docker run --rm -v ...binds... -w WORKDIR IMAGE CMD...
//
// - no TTY: stdout and stderr stay separate so failures can be reported
// - streams are mirrored to the local terminal while also being captured
// - removes container on exit
func (dc *dockerClient) RunBuild(ctx context.Context, name string, run BuildRun) (*BuildResult, error) {
	cfg := &container.Config{
		Image:        run.Image,
		Cmd:          run.Cmd,
		Env:          run.Env,
		WorkingDir:   run.WorkingDir,
		Tty:          false,
		AttachStdout: true,
		AttachStderr: true,
	}

	hostCfg := &container.HostConfig{
		Binds: run.Binds,
	}

	created, err := dc.client.ContainerCreate(ctx, cfg, hostCfg, nil, nil, resolveContainerName(name))
	if err != nil {
		return nil, fmt.Errorf("container create: %w", err)
	}
	id := created.ID

	defer func() {
		_ = dc.client.ContainerRemove(context.Background(), id, container.RemoveOptions{
			Force:         true,
			RemoveVolumes: false,
		})
	}()

	// Attach BEFORE start (like docker run) so no output is lost.
	attach, err := dc.client.ContainerAttach(ctx, id, container.AttachOptions{
		Stream: true,
		Stdout: true,
		Stderr: true,
		Logs:   false,
	})
	if err != nil {
		return nil, fmt.Errorf("container attach: %w", err)
	}
	defer attach.Close()

	if err := dc.client.ContainerStart(ctx, id, container.StartOptions{}); err != nil {
		return nil, fmt.Errorf("container start: %w", err)
	}

	// SIGTERM from outside kills the build container.
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGTERM)
	defer signal.Stop(stopCh)
	go func() {
		<-stopCh
		_ = dc.client.ContainerKill(context.Background(), id, "SIGTERM")
	}()

	var stdout, stderr bytes.Buffer
	outW := io.Writer(&stdout)
	errW := io.Writer(&stderr)
	if _, isTerm := term.GetFdInfo(os.Stdout); isTerm {
		outW = io.MultiWriter(&stdout, os.Stdout)
		errW = io.MultiWriter(&stderr, os.Stderr)
	}

	copyDone := make(chan error, 1)
	go func() {
		// Tty=false: the attach stream is multiplexed, demux it.
		_, err := stdcopy.StdCopy(outW, errW, attach.Reader)
		copyDone <- err
	}()

	statusCh, errCh := dc.client.ContainerWait(ctx, id, container.WaitConditionNotRunning)
	select {
	case err := <-errCh:
		if err != nil {
			return nil, fmt.Errorf("container wait: %w", err)
		}
	case st := <-statusCh:
		<-copyDone
		return &BuildResult{
			ExitCode: st.StatusCode,
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
		}, nil
	}

	return nil, nil
}

// ContainerName: "<name>-<short>", trimming from the LEFT if needed and
// prefixing with "tail-" to show it was trimmed.
func resolveContainerName(name string) string {
	short := shortHash(name+
		"|"+time.Now().UTC().Format(time.RFC3339Nano)+
		"|"+procTag(),
		shortLen)

	// Ideal: name + "-" + short
	need := len(name) + 1 + len(short)
	if need <= dockerMaxNameLen {
		return name + "-" + short
	}

	// Not enough room. Keep the tail of name and add a visible marker.
	maxName := dockerMaxNameLen - 1 - len(short) // room for '-' + short
	keep := maxName - len(tailMarker)
	if keep < 1 {
		keep = 1
	}
	if keep > len(name) {
		keep = len(name)
	}
	trimmedTail := name[len(name)-keep:]

	return tailMarker + trimmedTail + "-" + short
}

func shortHash(s string, n int) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])[:n]
}

// tiny process tag without extra deps
func procTag() string {
	pid := os.Getpid()
	return hex.EncodeToString([]byte{
		byte(pid >> 24), byte(pid >> 16), byte(pid >> 8), byte(pid),
	})
}
