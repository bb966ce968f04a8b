package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/fbkclanna/depot/internal/testutil"
)

func TestRunClean(t *testing.T) {
	testutil.RequireGit(t)
	remote := libRemote(t, "lib", "lib.csproj")
	dir := setupProject(t, remote)
	if _, err := execute(t, "--root", dir, "sync"); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "--root", dir, "clean"); err == nil {
		t.Fatal("clean without --force should fail")
	}
	out, err := execute(t, "--root", dir, "clean", "--force")
	if err != nil {
		t.Fatalf("clean failed: %v", err)
	}
	if !strings.Contains(out, "Lock entries reset: 1") {
		t.Errorf("unexpected output: %q", out)
	}
	if exists(filepath.Join(dir, ".depot")) {
		t.Error(".depot still present")
	}
	if len(lockedRevisions(t, dir)) != 0 {
		t.Error("lock not reset")
	}
	if !exists(filepath.Join(dir, "depot.yaml")) {
		t.Error("clean must keep the manifest")
	}
}
