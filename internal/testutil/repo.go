package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// Remote is a bare repository created for a test. Its dependency URL is
// Dir + "/" + Name and git finds it at Dir/Name.git.
type Remote struct {
	Dir  string
	Name string
	work string
}

// URL returns the "repository/name" form used on the depot command line.
func (r *Remote) URL() string {
	return r.Dir + "/" + r.Name
}

// Bare returns the path of the bare repository.
func (r *Remote) Bare() string {
	return filepath.Join(r.Dir, r.Name+".git")
}

// CreateRemote creates a bare git repository named name.git whose initial
// commit on main contains files. Returns the remote.
func CreateRemote(t *testing.T, name string, files map[string]string) *Remote {
	t.Helper()
	dir := t.TempDir()
	r := &Remote{Dir: dir, Name: name, work: filepath.Join(dir, "work-"+name)}

	run(t, dir, "git", "init", "-b", "main", r.work)
	run(t, r.work, "git", "config", "user.email", "test@example.com")
	run(t, r.work, "git", "config", "user.name", "Test")

	if len(files) == 0 {
		files = map[string]string{"README.md": "# " + name + "\n"}
	}
	writeFiles(t, r.work, files)
	run(t, r.work, "git", "add", ".")
	run(t, r.work, "git", "commit", "-m", "initial commit")

	run(t, dir, "git", "clone", "--bare", r.work, r.Bare())
	run(t, r.work, "git", "remote", "add", "origin", r.Bare())
	return r
}

// Commit adds a commit on main with files and pushes it to the bare
// repository. Returns the new revision.
func (r *Remote) Commit(t *testing.T, files map[string]string) string {
	t.Helper()
	writeFiles(t, r.work, files)
	run(t, r.work, "git", "add", ".")
	run(t, r.work, "git", "commit", "-m", "update")
	run(t, r.work, "git", "push", "origin", "main")
	return r.Head(t)
}

// Branch creates a branch from main with one extra commit and pushes it.
func (r *Remote) Branch(t *testing.T, branch string, files map[string]string) {
	t.Helper()
	run(t, r.work, "git", "checkout", "-b", branch)
	writeFiles(t, r.work, files)
	run(t, r.work, "git", "add", ".")
	run(t, r.work, "git", "commit", "-m", "branch commit")
	run(t, r.work, "git", "push", "origin", branch)
	// Switch back so later commits land on main.
	run(t, r.work, "git", "checkout", "main")
}

// Head returns the revision of main in the remote's working copy.
func (r *Remote) Head(t *testing.T) string {
	t.Helper()
	cmd := exec.Command("git", "rev-parse", "main")
	cmd.Dir = r.work
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("rev-parse main: %v", err)
	}
	return strings.TrimSpace(string(out))
}

// RequireGit skips the test when git is not installed.
func RequireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil { //nolint:gosec // test file
			t.Fatal(err)
		}
	}
}

func run(t *testing.T, dir string, name string, args ...string) {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("command %s %v failed: %v", name, args, err)
	}
}
