package engine

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/fbkclanna/depot/internal/manifest"
	"github.com/fbkclanna/depot/internal/workspace"
)

// AddDependency fetches dep, selects the sub-project to use from its
// manifest and declares it in the project manifest, which is saved to
// wc.ManifestPath. Nothing is declared when fetching or selection fails,
// and a directory fetched by this call is removed again together with the
// lock entries the fetch wrote.
func (e *Engine) AddDependency(ctx context.Context, wc *workspace.Context, dep manifest.Dependency) error {
	if wc.Manifest.Find(dep.Name) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateDependency, dep.Name)
	}

	fresh := !wc.Tree.Exists(dep.Name)
	f, err := e.sync(ctx, wc.Tree, wc.Manifest, dep, 0)
	if err != nil {
		e.report("add", Result{Dependency: dep, Outcome: OutcomeFailed, Err: err})
		return err
	}
	rollback := func() {
		if fresh {
			e.removeDir(wc.Tree, dep)
			e.revertLock(f.locked)
		}
	}

	manifestPath := f.manifestPath
	if manifestPath == "" {
		if manifestPath, err = e.resolveManifest(wc.Tree, wc.Manifest, dep.Name); err != nil {
			rollback()
			return err
		}
	}
	fetchedProject, err := e.manifests.Load(manifestPath)
	if err != nil {
		rollback()
		return &InvalidDependencyError{Name: dep.Name, Dir: wc.Tree.Dir(dep.Name), Err: err}
	}

	selected, err := e.selectProject(fetchedProject.ProjectPaths)
	if err != nil {
		rollback()
		return err
	}
	dep.Project = selected

	wc.Manifest.Dependencies = append(wc.Manifest.Dependencies, dep)
	if err := e.manifests.Save(wc.Manifest, wc.ManifestPath); err != nil {
		wc.Manifest.Dependencies = wc.Manifest.Dependencies[:len(wc.Manifest.Dependencies)-1]
		rollback()
		return err
	}

	e.log.WithFields(log.Fields{"dependency": dep.Name, "project": selected}).Info("dependency added")
	e.report("add", Result{Dependency: dep, Outcome: OutcomeAdded, Revision: f.revision})
	return nil
}

// selectProject picks one of paths, asking the selector when there is a
// choice to make or nothing to choose from.
func (e *Engine) selectProject(paths []string) (string, error) {
	switch len(paths) {
	case 1:
		return paths[0], nil
	case 0:
		if e.selector == nil {
			return "", ErrNoSelector
		}
		path, err := e.selector.RequestPath()
		if err != nil {
			return "", fmt.Errorf("requesting project path: %w", err)
		}
		path = strings.TrimSpace(path)
		if path == "" {
			return "", ErrEmptyPath
		}
		return path, nil
	}

	if e.selector == nil {
		return "", ErrNoSelector
	}
	for attempt := 1; attempt <= e.attempts; attempt++ {
		idx, err := e.selector.ChooseIndex(paths)
		if err != nil {
			return "", fmt.Errorf("choosing project: %w", err)
		}
		if idx >= 0 && idx < len(paths) {
			return paths[idx], nil
		}
		e.log.WithFields(log.Fields{"answer": idx + 1, "choices": len(paths), "attempt": attempt}).Warn("selection out of range")
	}
	return "", fmt.Errorf("%w: no valid choice among %d projects after %d attempts", ErrSelectionOutOfRange, len(paths), e.attempts)
}

// RemoveDependency removes the dependency named like dep from the project:
// its directory, its manifest entry and its lock entry. The manifest is
// saved to wc.ManifestPath.
func (e *Engine) RemoveDependency(_ context.Context, wc *workspace.Context, dep manifest.Dependency) error {
	idx := wc.Manifest.Find(dep.Name)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrDependencyNotFound, dep.Name)
	}
	declared := wc.Manifest.Dependencies[idx]

	if err := wc.Tree.Remove(declared.Name); err != nil {
		return err
	}

	deps := make([]manifest.Dependency, 0, len(wc.Manifest.Dependencies)-1)
	deps = append(deps, wc.Manifest.Dependencies[:idx]...)
	deps = append(deps, wc.Manifest.Dependencies[idx+1:]...)
	previous := wc.Manifest.Dependencies
	wc.Manifest.Dependencies = deps
	if err := e.manifests.Save(wc.Manifest, wc.ManifestPath); err != nil {
		wc.Manifest.Dependencies = previous
		return err
	}

	if e.lock.Delete(declared.Key()) {
		e.commitLock()
	}
	e.report("remove", Result{Dependency: declared, Outcome: OutcomeRemoved})
	return nil
}
