package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/fbkclanna/depot/internal/lock"
	"github.com/fbkclanna/depot/internal/manifest"
	"github.com/fbkclanna/depot/internal/testutil"
)

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)
	err := root.Execute()
	if err != nil {
		t.Logf("stderr:\n%s", errOut.String())
	}
	return out.String(), err
}

// libRemote creates a remote that is a valid project with the given
// sub-projects.
func libRemote(t *testing.T, name string, projects ...string) *testutil.Remote {
	t.Helper()
	p := &manifest.Project{Name: name, Version: "1.0.0", ProjectPaths: projects}
	data, err := manifest.Marshal(p, manifest.FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	return testutil.CreateRemote(t, name, map[string]string{"depot.yaml": string(data)})
}

// setupProject writes a project manifest declaring remotes in a new
// directory and returns the directory.
func setupProject(t *testing.T, remotes ...*testutil.Remote) string {
	t.Helper()
	dir := t.TempDir()
	p := &manifest.Project{Name: "app", Version: "0.1.0"}
	for _, r := range remotes {
		p.Dependencies = append(p.Dependencies, setupDependency(r))
	}
	saveManifest(t, dir, p)
	return dir
}

func loadManifest(t *testing.T, dir string) *manifest.Project {
	t.Helper()
	p, err := manifest.NewStore(nil).Load(filepath.Join(dir, "depot.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func lockedRevisions(t *testing.T, dir string) map[string]string {
	t.Helper()
	path := filepath.Join(dir, lock.FileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return map[string]string{}
	}
	lf, err := lock.Read(afero.NewOsFs(), path)
	if err != nil {
		t.Fatal(err)
	}
	return lf.Revisions
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func setupDependency(r *testutil.Remote) manifest.Dependency {
	return manifest.Dependency{Name: r.Name, Repository: r.Dir}
}

func saveManifest(t *testing.T, dir string, p *manifest.Project) {
	t.Helper()
	if err := manifest.NewStore(nil).Save(p, filepath.Join(dir, "depot.yaml")); err != nil {
		t.Fatal(err)
	}
}
