package main

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/fbkclanna/depot/internal/engine"
	"github.com/fbkclanna/depot/internal/testutil"
)

func initProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if _, err := execute(t, "--root", dir, "init", "app"); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestRunAdd(t *testing.T) {
	testutil.RequireGit(t)
	remote := libRemote(t, "lib", "src/lib.csproj")
	dir := initProject(t)

	if _, err := execute(t, "--root", dir, "add", remote.URL(), "main"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	p := loadManifest(t, dir)
	if len(p.Dependencies) != 1 {
		t.Fatalf("dependencies = %+v", p.Dependencies)
	}
	d := p.Dependencies[0]
	if d.Name != "lib" || d.Repository != remote.Dir || d.Branch != "main" || d.Project != "src/lib.csproj" {
		t.Errorf("dependency = %+v", d)
	}
	if !exists(filepath.Join(dir, ".depot", "lib", "depot.yaml")) {
		t.Error("dependency not fetched into .depot/lib")
	}
	if rev := lockedRevisions(t, dir)[remote.URL()]; rev != remote.Head(t) {
		t.Errorf("locked revision = %q, want %q", rev, remote.Head(t))
	}
}

func TestRunAdd_selectProject(t *testing.T) {
	testutil.RequireGit(t)
	remote := libRemote(t, "lib", "core.csproj", "extras.csproj")
	dir := initProject(t)

	if _, err := execute(t, "--root", dir, "--select", "2", "add", remote.URL()); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if got := loadManifest(t, dir).Dependencies[0].Project; got != "extras.csproj" {
		t.Errorf("project = %q, want extras.csproj", got)
	}
}

func TestRunAdd_selectionOutOfRange(t *testing.T) {
	testutil.RequireGit(t)
	remote := libRemote(t, "lib", "core.csproj", "extras.csproj")
	dir := initProject(t)

	_, err := execute(t, "--root", dir, "--select", "7,8,9", "add", remote.URL())
	if !errors.Is(err, engine.ErrSelectionOutOfRange) {
		t.Fatalf("err = %v, want ErrSelectionOutOfRange", err)
	}
	if len(loadManifest(t, dir).Dependencies) != 0 {
		t.Error("manifest changed after failed add")
	}
	if exists(filepath.Join(dir, ".depot", "lib")) {
		t.Error("fetched directory left behind")
	}
	if len(lockedRevisions(t, dir)) != 0 {
		t.Error("lock entry left behind")
	}
}

func TestRunAdd_notAProject(t *testing.T) {
	testutil.RequireGit(t)
	remote := testutil.CreateRemote(t, "plain", nil)
	dir := initProject(t)

	_, err := execute(t, "--root", dir, "add", remote.URL())
	var invalid *engine.InvalidDependencyError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want InvalidDependencyError", err)
	}
	if exists(filepath.Join(dir, ".depot", "plain")) {
		t.Error("invalid dependency left on disk")
	}
}

func TestRunAdd_duplicate(t *testing.T) {
	testutil.RequireGit(t)
	remote := libRemote(t, "lib", "lib.csproj")
	dir := initProject(t)

	if _, err := execute(t, "--root", dir, "add", remote.URL()); err != nil {
		t.Fatal(err)
	}
	_, err := execute(t, "--root", dir, "add", remote.URL())
	if !errors.Is(err, engine.ErrDuplicateDependency) {
		t.Fatalf("err = %v, want ErrDuplicateDependency", err)
	}
}

func TestRunAdd_invalidURL(t *testing.T) {
	dir := initProject(t)
	if _, err := execute(t, "--root", dir, "add", "noslash"); err == nil {
		t.Fatal("expected error for url without a name segment")
	}
}

func TestRunRemove(t *testing.T) {
	testutil.RequireGit(t)
	remote := libRemote(t, "lib", "lib.csproj")
	dir := initProject(t)

	if _, err := execute(t, "--root", dir, "add", remote.URL()); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "--root", dir, "remove", remote.URL()); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	if len(loadManifest(t, dir).Dependencies) != 0 {
		t.Error("dependency still declared")
	}
	if exists(filepath.Join(dir, ".depot", "lib")) {
		t.Error("dependency directory still present")
	}
	if _, ok := lockedRevisions(t, dir)[remote.URL()]; ok {
		t.Error("lock entry still present")
	}
}

func TestRunRemove_notDeclared(t *testing.T) {
	dir := initProject(t)
	_, err := execute(t, "--root", dir, "remove", "https://example.com/libs/foo")
	if !errors.Is(err, engine.ErrDependencyNotFound) {
		t.Fatalf("err = %v, want ErrDependencyNotFound", err)
	}
}
