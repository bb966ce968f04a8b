package git

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/fbkclanna/depot/internal/vcs"
)

// Client runs git subprocesses. The zero value forwards git's progress
// output to os.Stderr.
type Client struct {
	// Binary is the git executable. Defaults to "git".
	Binary string
	// Progress receives the output of clone and fetch. Nil discards it.
	Progress io.Writer
}

var _ vcs.Client = (*Client)(nil)

// New returns a Client writing progress to os.Stderr.
func New() *Client {
	return &Client{Progress: os.Stderr}
}

// Clone clones url into dest.
func (c *Client) Clone(ctx context.Context, url, dest string, opts vcs.CloneOpts) error {
	args := []string{"clone"}
	if opts.Recursive {
		args = append(args, "--recursive")
	}
	if opts.Branch != "" {
		args = append(args, "--branch", opts.Branch)
	}
	if opts.Depth > 0 {
		args = append(args, "--depth", strconv.Itoa(opts.Depth))
	}
	args = append(args, "--", url, dest)

	if err := c.run(ctx, ".", args...); err != nil {
		return fmt.Errorf("cloning %s: %w", url, err)
	}
	return nil
}

// Fetch runs git fetch in dir.
func (c *Client) Fetch(ctx context.Context, dir string, depth int) error {
	args := []string{"fetch", "--prune"}
	if depth > 0 {
		args = append(args, "--depth", strconv.Itoa(depth))
	}
	if err := c.run(ctx, dir, args...); err != nil {
		return fmt.Errorf("fetching in %s: %w", dir, err)
	}
	return nil
}

// RevParse returns the full SHA that ref resolves to in dir.
func (c *Client) RevParse(ctx context.Context, dir, ref string) (string, error) {
	out, err := c.output(ctx, dir, "rev-parse", "--verify", ref+"^{commit}")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// IsCloned returns true if the directory is a git repository.
func IsCloned(repoDir string) bool {
	info, err := os.Stat(filepath.Join(repoDir, ".git"))
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsInstalled returns true if git is available on the system PATH.
func IsInstalled() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// Version returns the output of git version.
func (c *Client) Version(ctx context.Context) (string, error) {
	out, err := c.output(ctx, ".", "version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (c *Client) binary() string {
	if c.Binary == "" {
		return "git"
	}
	return c.Binary
}

// run executes a git command in dir, streaming output to c.Progress.
// Stderr is also captured and included in the error message on failure.
func (c *Client) run(ctx context.Context, dir string, args ...string) error {
	log.WithFields(log.Fields{"dir": dir, "args": args}).Debug("running git")

	cmd := exec.CommandContext(ctx, c.binary(), args...) //nolint:gosec // args are built by this package
	cmd.Dir = dir
	var stderr bytes.Buffer
	if c.Progress != nil {
		cmd.Stdout = c.Progress
		cmd.Stderr = io.MultiWriter(c.Progress, &stderr)
	} else {
		cmd.Stderr = &stderr
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// output executes a git command and returns its stdout.
func (c *Client) output(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, c.binary(), args...) //nolint:gosec // args are built by this package
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
