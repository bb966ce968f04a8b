package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Store loads and saves manifests on a filesystem.
type Store struct {
	fs afero.Fs
}

// NewStore returns a Store backed by fs. A nil fs uses the OS filesystem.
func NewStore(fs afero.Fs) *Store {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Store{fs: fs}
}

// Load reads and validates the manifest at path.
func (s *Store) Load(path string) (*Project, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return Parse(data, f)
}

// Save validates and writes a manifest to path, in the format implied by
// its extension.
func (s *Store) Save(p *Project, path string) error {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := Marshal(p, f)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(s.fs, path, data, 0644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// Locate returns the path of the manifest at the root of dir.
func (s *Store) Locate(dir string) (string, error) {
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		info, err := s.fs.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w in %s", ErrNotFound, dir)
}
