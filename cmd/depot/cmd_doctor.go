package main

import (
	"fmt"
	"sort"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/fbkclanna/depot/internal/git"
	"github.com/fbkclanna/depot/internal/manifest"
	"github.com/fbkclanna/depot/internal/vcs"
	"github.com/fbkclanna/depot/internal/workspace"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the environment and the workspace for common issues",
		Args:  cobra.NoArgs,
		RunE:  runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	ok := true

	root, cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.File != "" {
		_, _ = fmt.Fprintf(out, "Config file: %s\n", cfg.File)
	}

	kind, _ := vcs.ParseKind(cfg.VCS)
	_, _ = fmt.Fprintf(out, "Checking git... ")
	switch {
	case kind == vcs.KindEmbedded:
		_, _ = fmt.Fprintln(out, "embedded client in use")
	case !git.IsInstalled():
		_, _ = fmt.Fprintln(out, "NOT FOUND")
		_, _ = fmt.Fprintln(out, "  git is required. Install it from https://git-scm.com/ or set vcs: embedded")
		ok = false
	default:
		ver, verr := (&git.Client{}).Version(cmd.Context())
		if verr != nil {
			_, _ = fmt.Fprintln(out, "ERROR")
			ok = false
		} else {
			_, _ = fmt.Fprintln(out, ver)
		}
	}

	ws, loadErr := workspace.Load(root, workspace.Options{
		DirName:     cfg.WorkspaceDir,
		LockFile:    cfg.LockFile,
		ToolVersion: version,
	})
	if loadErr != nil {
		_, _ = fmt.Fprintf(out, "No project found in %s (%v)\n", root, loadErr)
	} else {
		_, _ = fmt.Fprintf(out, "Project: %s (%d dependencies)\n", ws.Manifest.Name, len(ws.Manifest.Dependencies))
		for _, problem := range workspaceProblems(ws) {
			_, _ = fmt.Fprintf(out, "  %s\n", problem)
			ok = false
		}
	}

	if ok {
		_, _ = fmt.Fprintln(out, "\nAll checks passed.")
		return nil
	}
	_, _ = fmt.Fprintln(out, "\nSome checks failed. See above for details.")
	return fmt.Errorf("doctor checks failed")
}

// workspaceProblems compares the manifest, the lock file and the
// dependency directory.
func workspaceProblems(ws *workspace.Context) []string {
	var problems []string
	declared := make(map[string]bool, len(ws.Manifest.Dependencies))
	for _, d := range ws.Manifest.Dependencies {
		declared[d.Name] = true
		_, locked := ws.Lock.Get(d.Key())
		present := ws.Tree.Exists(d.Name)
		switch {
		case present && !git.IsCloned(ws.DependencyDir(d)):
			problems = append(problems, fmt.Sprintf("%s: %s is not a git checkout (remove it and run `depot sync`)", d.Name, ws.DependencyDir(d)))
		case present && !locked:
			problems = append(problems, fmt.Sprintf("%s: fetched but not locked (run `depot pin`)", d.Name))
		case !present && locked:
			problems = append(problems, fmt.Sprintf("%s: locked but missing (run `depot sync`)", d.Name))
		}
	}

	keys := make(map[string]bool)
	collectKeys(manifest.NewStore(ws.Tree.Fs()), ws.Tree, ws.Manifest, keys)
	for _, k := range ws.Lock.Keys() {
		if !keys[k] {
			problems = append(problems, fmt.Sprintf("%s: lock entry for an undeclared dependency", k))
		}
	}

	entries, err := afero.ReadDir(ws.Tree.Fs(), ws.Tree.Root())
	if err == nil {
		var orphans []string
		for _, e := range entries {
			if e.IsDir() && !declared[e.Name()] {
				orphans = append(orphans, e.Name())
			}
		}
		sort.Strings(orphans)
		for _, name := range orphans {
			problems = append(problems, fmt.Sprintf("%s: directory in %s is not declared", name, ws.Tree.Root()))
		}
	}
	return problems
}

// collectKeys gathers the lock keys of project's dependencies and of the
// nested dependencies of those present in tree.
func collectKeys(store *manifest.Store, tree workspace.Tree, project *manifest.Project, keys map[string]bool) {
	for _, d := range project.Dependencies {
		keys[d.Key()] = true
		if !tree.Exists(d.Name) {
			continue
		}
		path, err := store.Locate(tree.Dir(d.Name))
		if err != nil {
			continue
		}
		nested, err := store.Load(path)
		if err != nil {
			continue
		}
		collectKeys(store, tree.Nested(d.Name), nested, keys)
	}
}
