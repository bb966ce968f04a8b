package lock

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
)

func TestParse_valid(t *testing.T) {
	data := []byte(`
version: 1
name: app
generated_at: "2026-02-15T12:34:56+09:00"
tool_version: "0.1.0"
revisions:
  https://example.com/libs/foo: a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2
  git@github.com:org/bar: deadbeef1234deadbeef1234deadbeef12345678
`)
	lf, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lf.Name != "app" {
		t.Errorf("name = %q, want %q", lf.Name, "app")
	}
	if len(lf.Revisions) != 2 {
		t.Errorf("revisions count = %d, want 2", len(lf.Revisions))
	}
	if got := lf.Revisions["https://example.com/libs/foo"]; got != "a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2" {
		t.Errorf("revision = %q", got)
	}
}

func TestParse_unsupportedVersion(t *testing.T) {
	if _, err := Parse([]byte("version: 7\n")); err == nil {
		t.Fatal("expected error for unsupported version")
	}
}

func TestParse_emptyRevisions(t *testing.T) {
	lf, err := Parse([]byte("version: 1\nname: app\n"))
	if err != nil {
		t.Fatal(err)
	}
	if lf.Revisions == nil {
		t.Error("revisions map should be initialized")
	}
}

func TestStore_missingFileIsEmpty(t *testing.T) {
	s, err := Load(afero.NewMemMapFs(), "/p/depot.lock.yaml", Options{Name: "app"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("len = %d, want 0", s.Len())
	}
}

func TestStore_SaveAndLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	clock := clockwork.NewFakeClockAt(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	path := "/p/depot.lock.yaml"

	s, err := Load(fs, path, Options{Name: "app", ToolVersion: "dev", Clock: clock})
	if err != nil {
		t.Fatal(err)
	}
	s.Set("https://example.com/libs/foo", "abc123")
	s.Set("https://example.com/libs/bar", "def456")
	if err := s.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	lf, err := Read(fs, path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if lf.GeneratedAt != "2026-01-01T00:00:00Z" {
		t.Errorf("generated_at = %q", lf.GeneratedAt)
	}
	if lf.ToolVersion != "dev" {
		t.Errorf("tool_version = %q", lf.ToolVersion)
	}

	reloaded, err := Load(fs, path, Options{Name: "app"})
	if err != nil {
		t.Fatal(err)
	}
	if rev, ok := reloaded.Get("https://example.com/libs/foo"); !ok || rev != "abc123" {
		t.Errorf("reloaded foo = %q, %v", rev, ok)
	}
	if got := reloaded.Keys(); len(got) != 2 || got[0] != "https://example.com/libs/bar" {
		t.Errorf("keys = %v", got)
	}
}

func TestStore_SaveOnlyWhenDirty(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/p/depot.lock.yaml"
	s, _ := Load(fs, path, Options{Name: "app"})

	if err := s.Save(); err != nil {
		t.Fatal(err)
	}
	if ok, _ := afero.Exists(fs, path); ok {
		t.Error("clean store should not write a lock file")
	}

	s.Set("k", "v")
	s.Set("k", "v")
	if !s.Dirty() {
		t.Error("store should be dirty after Set")
	}
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}
	if s.Dirty() {
		t.Error("store should be clean after Save")
	}
}

func TestStore_DeleteAndReset(t *testing.T) {
	s, _ := Load(afero.NewMemMapFs(), "/p/depot.lock.yaml", Options{})
	s.Set("a", "1")
	s.Set("b", "2")

	if !s.Delete("a") {
		t.Error("Delete(a) should report an existing entry")
	}
	if s.Delete("a") {
		t.Error("second Delete(a) should report nothing removed")
	}
	s.Reset()
	if s.Len() != 0 {
		t.Errorf("len after reset = %d", s.Len())
	}
}
