// Package gogit implements vcs.Client with the embedded go-git library, so
// depot can fetch dependencies on machines without a git binary.
package gogit

import (
	"context"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	git "gopkg.in/src-d/go-git.v4"
	"gopkg.in/src-d/go-git.v4/plumbing"

	"github.com/fbkclanna/depot/internal/vcs"
)

// Client is a vcs.Client backed by go-git.
type Client struct {
	// Progress receives textual progress updates. Nil discards them.
	Progress io.Writer
}

var _ vcs.Client = (*Client)(nil)

// New returns a Client writing progress to w.
func New(w io.Writer) *Client {
	return &Client{Progress: w}
}

// Clone clones url into dest.
func (c *Client) Clone(ctx context.Context, url, dest string, opts vcs.CloneOpts) error {
	o := &git.CloneOptions{
		URL:      url,
		Depth:    opts.Depth,
		Progress: c.Progress,
	}
	if opts.Branch != "" {
		o.ReferenceName = branchRef(opts.Branch)
		o.SingleBranch = true
	}
	if opts.Recursive {
		o.RecurseSubmodules = git.DefaultSubmoduleRecursionDepth
	}

	log.WithFields(log.Fields{"url": url, "dest": dest, "branch": opts.Branch}).Debug("go-git clone")
	if _, err := git.PlainCloneContext(ctx, dest, false, o); err != nil {
		return fmt.Errorf("cloning %s: %w", url, err)
	}
	return nil
}

// Fetch updates the remote-tracking references of the repository in dir.
func (c *Client) Fetch(ctx context.Context, dir string, depth int) error {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return fmt.Errorf("opening repository at %s: %w", dir, err)
	}
	err = repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: git.DefaultRemoteName,
		Depth:      depth,
		Progress:   c.Progress,
	})
	switch err {
	case nil, git.NoErrAlreadyUpToDate:
		return nil
	default:
		return fmt.Errorf("fetching in %s: %w", dir, err)
	}
}

// RevParse resolves ref to a full SHA. go-git does not write FETCH_HEAD, so
// that name resolves to the remote-tracking ref of the checked out branch.
func (c *Client) RevParse(_ context.Context, dir, ref string) (string, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return "", fmt.Errorf("opening repository at %s: %w", dir, err)
	}

	if ref == vcs.RefFetchHead {
		return fetchHead(repo, dir)
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return "", fmt.Errorf("resolving %s in %s: %w", ref, dir, err)
	}
	return hash.String(), nil
}

func fetchHead(repo *git.Repository, dir string) (string, error) {
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("reading HEAD in %s: %w", dir, err)
	}
	if !head.Name().IsBranch() {
		return "", fmt.Errorf("resolving %s in %s: HEAD is detached", vcs.RefFetchHead, dir)
	}
	name := plumbing.ReferenceName("refs/remotes/" + git.DefaultRemoteName + "/" + head.Name().Short())
	remote, err := repo.Reference(name, true)
	if err != nil {
		return "", fmt.Errorf("resolving %s in %s: %w", name, dir, err)
	}
	return remote.Hash().String(), nil
}

func branchRef(name string) plumbing.ReferenceName {
	return plumbing.ReferenceName("refs/heads/" + name)
}
