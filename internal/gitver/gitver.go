// Package gitver wraps the version-control binary for tag listing, creation
// and pushing. Only the tag strings travel through here; parsing and
// ordering them is the semver package's job.
package gitver

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/tidewater-dev/slipway/internal/utils"
)

// TagService is what the release workflow needs from version control.
type TagService interface {
	// Tags lists raw tag strings; zero or more may be malformed.
	Tags(ctx context.Context, repo string) ([]string, error)
	CreateTag(ctx context.Context, repo, tag string) error
	// PushTag fails unless the remote output confirms the tag was accepted;
	// a zero exit code alone is not sufficient evidence of success.
	PushTag(ctx context.Context, repo, tag string) error
}

// CLI shells out to the git binary.
type CLI struct {
	GitPath string

	// run is swapped in tests; defaults to exec.CommandContext.
	run func(ctx context.Context, dir string, args ...string) (stdout, stderr string, err error)
}

func NewCLI() *CLI {
	c := &CLI{GitPath: "git"}
	c.run = c.execRun
	return c
}

func (c *CLI) execRun(ctx context.Context, dir string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, c.GitPath, args...)
	cmd.Dir = dir

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	return outBuf.String(), errBuf.String(), err
}

func (c *CLI) Tags(ctx context.Context, repo string) ([]string, error) {
	out, stderr, err := c.run(ctx, repo, "tag", "--list")
	if err != nil {
		return nil, fmt.Errorf("git tag --list in %s: %w: %s", repo, err, strings.TrimSpace(stderr))
	}
	return utils.SplitLines(out), nil
}

func (c *CLI) CreateTag(ctx context.Context, repo, tag string) error {
	_, stderr, err := c.run(ctx, repo, "tag", tag)
	if err != nil {
		return fmt.Errorf("git tag %s in %s: %w: %s", tag, repo, err, strings.TrimSpace(stderr))
	}
	return nil
}

func (c *CLI) PushTag(ctx context.Context, repo, tag string) error {
	out, stderr, err := c.run(ctx, repo, "push", "origin", tag)
	if err != nil {
		return &PushRejectedError{Tag: tag, Output: strings.TrimSpace(stderr)}
	}

	// git reports accepted refs on stderr; check both streams.
	if !pushConfirmed(out+"\n"+stderr, tag) {
		return &PushRejectedError{Tag: tag, Output: strings.TrimSpace(out + "\n" + stderr), Unconfirmed: true}
	}
	return nil
}

// pushConfirmed scans push output for evidence that the remote accepted the
// tag: either the "[new tag]" marker on the tag's ref line or an up-to-date
// report for it.
func pushConfirmed(output, tag string) bool {
	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, tag) {
			continue
		}
		if strings.Contains(line, "[new tag]") || strings.Contains(line, "up to date") || strings.Contains(line, "up-to-date") {
			return true
		}
	}
	return false
}
