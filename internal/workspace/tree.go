package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// DefaultDirName is the directory holding fetched dependencies, relative to
// the project directory.
const DefaultDirName = ".depot"

// Tree is the directory of fetched dependencies for one project. Trees are
// values: a nested dependency gets its own Tree instead of changing a
// shared current directory.
type Tree struct {
	fs         afero.Fs
	projectDir string
	dirName    string
}

// NewTree returns the dependency tree of the project in projectDir.
func NewTree(fs afero.Fs, projectDir, dirName string) Tree {
	if dirName == "" {
		dirName = DefaultDirName
	}
	return Tree{fs: fs, projectDir: projectDir, dirName: dirName}
}

// ProjectDir returns the directory of the project owning this tree.
func (t Tree) ProjectDir() string { return t.projectDir }

// Root returns the directory holding dependency directories.
func (t Tree) Root() string { return filepath.Join(t.projectDir, t.dirName) }

// Dir returns the directory for a dependency name.
func (t Tree) Dir(name string) string { return filepath.Join(t.Root(), name) }

// Fs returns the filesystem the tree lives on.
func (t Tree) Fs() afero.Fs { return t.fs }

// Exists reports whether the dependency directory exists.
func (t Tree) Exists(name string) bool {
	info, err := t.fs.Stat(t.Dir(name))
	return err == nil && info.IsDir()
}

// Remove deletes the dependency directory and everything below it.
// Removing a missing directory is not an error.
func (t Tree) Remove(name string) error {
	dir := t.Dir(name)
	if err := t.fs.RemoveAll(dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing %s: %w", dir, err)
	}
	return nil
}

// Ensure creates the tree root if needed.
func (t Tree) Ensure() error {
	if err := t.fs.MkdirAll(t.Root(), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", t.Root(), err)
	}
	return nil
}

// Nested returns the tree of a fetched dependency's own dependencies.
func (t Tree) Nested(name string) Tree {
	return Tree{fs: t.fs, projectDir: t.Dir(name), dirName: t.dirName}
}

// Clean removes the whole tree root.
func (t Tree) Clean() error {
	if err := t.fs.RemoveAll(t.Root()); err != nil {
		return fmt.Errorf("removing %s: %w", t.Root(), err)
	}
	return nil
}

// Resolve returns path joined to the project directory unless it is
// already absolute.
func (t Tree) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(t.projectDir, path)
}
