package testutil

import (
	"context"
	"crypto/sha1" //nolint:gosec // revision ids only need to look like git SHAs
	"encoding/hex"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"github.com/fbkclanna/depot/internal/vcs"
)

// FakeRemote is an in-memory repository served by FakeVCS.
type FakeRemote struct {
	// Files are written into the clone destination.
	Files map[string]string
	// Branches holds extra file sets per branch; the default branch uses Files.
	Branches map[string]map[string]string
	rev      int
}

// FakeVCS implements vcs.Client on an afero filesystem. Clones write the
// remote's files into the destination; revisions are derived from a
// per-remote counter bumped by Push.
type FakeVCS struct {
	fs      afero.Fs
	mu      sync.Mutex
	remotes map[string]*FakeRemote
	// checkouts maps clone dir to (url, branch, rev at clone time).
	checkouts map[string]checkout
	fetched   map[string]string

	// FailClone makes Clone fail for these URLs.
	FailClone map[string]bool
	// Calls records every invocation as "op url-or-dir".
	Calls []string
}

type checkout struct {
	url    string
	branch string
	rev    string
}

var _ vcs.Client = (*FakeVCS)(nil)

// NewFakeVCS returns a FakeVCS writing to fs.
func NewFakeVCS(fs afero.Fs) *FakeVCS {
	return &FakeVCS{
		fs:        fs,
		remotes:   make(map[string]*FakeRemote),
		checkouts: make(map[string]checkout),
		fetched:   make(map[string]string),
		FailClone: make(map[string]bool),
	}
}

// AddRemote registers a remote under its clone URL.
func (f *FakeVCS) AddRemote(url string, files map[string]string) *FakeRemote {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := &FakeRemote{Files: files, Branches: make(map[string]map[string]string)}
	f.remotes[url] = r
	return r
}

// Push advances the remote's revision, optionally replacing its files.
func (f *FakeVCS) Push(url string, files map[string]string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := f.remotes[url]
	r.rev++
	if files != nil {
		r.Files = files
	}
	return revision(url, "", r.rev)
}

// Revision returns the current revision of a remote's branch.
func (f *FakeVCS) Revision(url, branch string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return revision(url, branch, f.remotes[url].rev)
}

// Count returns how many recorded calls start with op.
func (f *FakeVCS) Count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if strings.HasPrefix(c, op+" ") {
			n++
		}
	}
	return n
}

// Clone implements vcs.Client.
func (f *FakeVCS) Clone(_ context.Context, url, dest string, opts vcs.CloneOpts) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, "clone "+url)

	r, ok := f.remotes[url]
	if !ok || f.FailClone[url] {
		return fmt.Errorf("fake clone %s: repository not found", url)
	}
	files := r.Files
	if opts.Branch != "" {
		if bf, ok := r.Branches[opts.Branch]; ok {
			files = bf
		}
	}

	if err := f.fs.MkdirAll(filepath.Join(dest, ".git"), 0755); err != nil {
		return err
	}
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		path := filepath.Join(dest, name)
		if err := f.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := afero.WriteFile(f.fs, path, []byte(files[name]), 0644); err != nil {
			return err
		}
	}
	f.checkouts[filepath.Clean(dest)] = checkout{url: url, branch: opts.Branch, rev: revision(url, opts.Branch, r.rev)}
	return nil
}

// Fetch implements vcs.Client.
func (f *FakeVCS) Fetch(_ context.Context, dir string, _ int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, "fetch "+dir)

	co, ok := f.checkouts[filepath.Clean(dir)]
	if !ok {
		return fmt.Errorf("fake fetch: %s is not a clone", dir)
	}
	f.fetched[filepath.Clean(dir)] = revision(co.url, co.branch, f.remotes[co.url].rev)
	return nil
}

// RevParse implements vcs.Client.
func (f *FakeVCS) RevParse(_ context.Context, dir, ref string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, "rev-parse "+dir+" "+ref)

	key := filepath.Clean(dir)
	switch ref {
	case vcs.RefHead:
		co, ok := f.checkouts[key]
		if !ok {
			return "", fmt.Errorf("fake rev-parse: %s is not a clone", dir)
		}
		return co.rev, nil
	case vcs.RefFetchHead:
		rev, ok := f.fetched[key]
		if !ok {
			return "", fmt.Errorf("fake rev-parse: no FETCH_HEAD in %s", dir)
		}
		return rev, nil
	default:
		return "", fmt.Errorf("fake rev-parse: unsupported ref %q", ref)
	}
}

func revision(url, branch string, n int) string {
	sum := sha1.Sum([]byte(fmt.Sprintf("%s@%s#%d", url, branch, n))) //nolint:gosec // not security sensitive
	return hex.EncodeToString(sum[:])
}
