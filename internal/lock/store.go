package lock

import (
	"os"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
)

// Store is the in-memory lock state for one command. It is loaded once,
// mutated as dependencies are synced, and written back with Save.
// A Store is not safe for concurrent use.
type Store struct {
	fs          afero.Fs
	path        string
	name        string
	toolVersion string
	clock       clockwork.Clock
	revisions   map[string]string
	dirty       bool
}

// Options configures Load.
type Options struct {
	// Name is the project name written into the lock file.
	Name string
	// ToolVersion is written into the lock file.
	ToolVersion string
	// Clock stamps generated_at. Defaults to the real clock.
	Clock clockwork.Clock
}

// Load reads the lock file at path. A missing file yields an empty store.
func Load(fs afero.Fs, path string, opts Options) (*Store, error) {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	s := &Store{
		fs:          fs,
		path:        path,
		name:        opts.Name,
		toolVersion: opts.ToolVersion,
		clock:       opts.Clock,
		revisions:   make(map[string]string),
	}

	if _, err := fs.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	lf, err := Read(fs, path)
	if err != nil {
		return nil, err
	}
	for k, v := range lf.Revisions {
		s.revisions[k] = v
	}
	return s, nil
}

// Path returns the lock file location.
func (s *Store) Path() string { return s.path }

// Get returns the locked revision for key.
func (s *Store) Get(key string) (string, bool) {
	rev, ok := s.revisions[key]
	return rev, ok
}

// Set records rev for key.
func (s *Store) Set(key, rev string) {
	if cur, ok := s.revisions[key]; ok && cur == rev {
		return
	}
	s.revisions[key] = rev
	s.dirty = true
}

// Delete removes the entry for key. It reports whether an entry existed.
func (s *Store) Delete(key string) bool {
	if _, ok := s.revisions[key]; !ok {
		return false
	}
	delete(s.revisions, key)
	s.dirty = true
	return true
}

// Reset drops every entry.
func (s *Store) Reset() {
	if len(s.revisions) > 0 {
		s.dirty = true
	}
	s.revisions = make(map[string]string)
}

// Keys returns the locked keys in sorted order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.revisions))
	for k := range s.revisions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of entries.
func (s *Store) Len() int { return len(s.revisions) }

// Dirty reports whether the store has unsaved changes.
func (s *Store) Dirty() bool { return s.dirty }

// Save writes the lock file if the store has changed since it was loaded
// or last saved.
func (s *Store) Save() error {
	if !s.dirty {
		return nil
	}
	revisions := make(map[string]string, len(s.revisions))
	for k, v := range s.revisions {
		revisions[k] = v
	}
	lf := &File{
		Version:     1,
		Name:        s.name,
		GeneratedAt: s.clock.Now().Format(time.RFC3339),
		ToolVersion: s.toolVersion,
		Revisions:   revisions,
	}
	if err := Write(s.fs, s.path, lf); err != nil {
		return err
	}
	s.dirty = false
	return nil
}
