package lock

import (
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// FileName is the default lock file name.
const FileName = "depot.lock.yaml"

// Read reads a lock file from fs.
func Read(fs afero.Fs, path string) (*File, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading lock file: %w", err)
	}
	return Parse(data)
}

// Parse parses depot.lock.yaml content.
func Parse(data []byte) (*File, error) {
	var lf File
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parsing lock YAML: %w", err)
	}
	if lf.Version != 0 && lf.Version != 1 {
		return nil, fmt.Errorf("unsupported lock file version: %d (expected 1)", lf.Version)
	}
	if lf.Revisions == nil {
		lf.Revisions = make(map[string]string)
	}
	return &lf, nil
}

// Write writes the lock file to fs.
func Write(fs afero.Fs, path string, lf *File) error {
	data, err := yaml.Marshal(lf)
	if err != nil {
		return fmt.Errorf("marshaling lock file: %w", err)
	}
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return fmt.Errorf("writing lock file: %w", err)
	}
	return nil
}
