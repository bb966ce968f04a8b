package workspace

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/fbkclanna/depot/internal/lock"
	"github.com/fbkclanna/depot/internal/manifest"
)

// Context holds the resolved paths and loaded state for a project.
type Context struct {
	Root         string
	ManifestPath string
	LockPath     string
	Manifest     *manifest.Project
	Lock         *lock.Store
	Tree         Tree
}

// Options configures Load.
type Options struct {
	// Fs defaults to the OS filesystem.
	Fs afero.Fs
	// DirName is the dependency directory name. Defaults to DefaultDirName.
	DirName string
	// LockFile is the lock file name. Defaults to lock.FileName.
	LockFile string
	// ToolVersion is recorded in the lock file.
	ToolVersion string
	// LockOptions are passed to lock.Load; Name is filled from the manifest.
	LockOptions lock.Options
}

// Load resolves project paths and loads the manifest and lock file.
func Load(root string, opts Options) (*Context, error) {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.LockFile == "" {
		opts.LockFile = lock.FileName
	}

	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}

	store := manifest.NewStore(opts.Fs)
	manifestPath, err := store.Locate(root)
	if err != nil {
		return nil, fmt.Errorf("%w (run `depot init <name>` to create one)", err)
	}
	p, err := store.Load(manifestPath)
	if err != nil {
		return nil, err
	}

	lockPath := filepath.Join(root, opts.LockFile)
	lo := opts.LockOptions
	lo.Name = p.Name
	if lo.ToolVersion == "" {
		lo.ToolVersion = opts.ToolVersion
	}
	ls, err := lock.Load(opts.Fs, lockPath, lo)
	if err != nil {
		return nil, err
	}

	return &Context{
		Root:         root,
		ManifestPath: manifestPath,
		LockPath:     lockPath,
		Manifest:     p,
		Lock:         ls,
		Tree:         NewTree(opts.Fs, root, opts.DirName),
	}, nil
}

// DependencyDir returns the absolute path for a dependency.
func (c *Context) DependencyDir(d manifest.Dependency) string {
	return c.Tree.Dir(d.Name)
}
