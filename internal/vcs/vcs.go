// Package vcs defines the version control capability used by the sync
// engine. Implementations live in the git (command line) and gogit
// (embedded) packages.
package vcs

import (
	"context"
	"fmt"
)

// Revisions the engine asks RevParse for.
const (
	RefHead      = "HEAD"
	RefFetchHead = "FETCH_HEAD"
)

// CloneOpts configures a clone.
type CloneOpts struct {
	// Branch checks out the named branch instead of the remote default.
	Branch string
	// Recursive also clones submodules.
	Recursive bool
	// Depth limits history when greater than zero.
	Depth int
}

// Client clones, fetches and resolves revisions of remote repositories.
// Every call blocks until the underlying operation finishes or ctx is done.
type Client interface {
	Clone(ctx context.Context, url, dest string, opts CloneOpts) error
	Fetch(ctx context.Context, dir string, depth int) error
	RevParse(ctx context.Context, dir, ref string) (string, error)
}

// Kind names a Client implementation.
type Kind string

const (
	KindGit      Kind = "git"
	KindEmbedded Kind = "embedded"
)

// ParseKind parses a client name, defaulting to the git command line.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindGit, "":
		return KindGit, nil
	case KindEmbedded:
		return KindEmbedded, nil
	default:
		return "", fmt.Errorf("unknown vcs: %q (must be git or embedded)", s)
	}
}
