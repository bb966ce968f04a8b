package engine

import (
	"context"
	"fmt"

	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/fbkclanna/depot/internal/manifest"
	"github.com/fbkclanna/depot/internal/workspace"
)

// fetched is what a sync learned about a dependency.
type fetched struct {
	outcome      Outcome
	revision     string
	manifestPath string
	// locked lists the lock entries written by the sync, nested ones
	// included, oldest first.
	locked []lockChange
}

// lockChange is a lock entry written by a sync and the value it replaced.
type lockChange struct {
	key      string
	previous string
	existed  bool
}

// Sync fetches dep into tree unless its directory already exists. A fresh
// fetch records the checked out revision in the lock store and then syncs
// the dependency's own dependencies into its nested tree.
func (e *Engine) Sync(ctx context.Context, tree workspace.Tree, project *manifest.Project, dep manifest.Dependency) (Outcome, error) {
	f, err := e.sync(ctx, tree, project, dep, 0)
	e.report("sync", Result{Dependency: dep, Outcome: f.outcome, Revision: f.revision, Err: err})
	return f.outcome, err
}

// SyncAll syncs every declared dependency in manifest order. A failure does
// not stop the remaining dependencies.
func (e *Engine) SyncAll(ctx context.Context, tree workspace.Tree, project *manifest.Project) []Result {
	results, _ := e.syncAll(ctx, tree, project, 0)
	return results
}

func (e *Engine) syncAll(ctx context.Context, tree workspace.Tree, project *manifest.Project, depth int) ([]Result, []lockChange) {
	results := make([]Result, 0, len(project.Dependencies))
	var locked []lockChange
	for _, dep := range project.Dependencies {
		var (
			f   fetched
			err error
		)
		if err = ctx.Err(); err != nil {
			f.outcome = OutcomeFailed
		} else {
			f, err = e.sync(ctx, tree, project, dep, depth)
		}
		locked = append(locked, f.locked...)
		r := Result{Dependency: dep, Depth: depth, Outcome: f.outcome, Revision: f.revision, Err: err}
		e.report("sync", r)
		results = append(results, r)
	}
	return results, locked
}

func (e *Engine) sync(ctx context.Context, tree workspace.Tree, project *manifest.Project, dep manifest.Dependency, depth int) (fetched, error) {
	logger := e.log.WithFields(log.Fields{"dependency": dep.Name, "depth": depth})
	if tree.Exists(dep.Name) {
		logger.Debug("already present")
		rev, _ := e.lock.Get(dep.Key())
		return fetched{outcome: OutcomeAlreadyPresent, revision: rev}, nil
	}

	failed := fetched{outcome: OutcomeFailed}
	if err := tree.Ensure(); err != nil {
		return failed, err
	}
	dir := tree.Dir(dep.Name)
	logger.WithField("url", dep.CloneURL()).Info("cloning")
	if err := e.clone(ctx, dep, dir); err != nil {
		e.removeDir(tree, dep)
		return failed, err
	}

	manifestPath, err := e.resolveManifest(tree, project, dep.Name)
	if err != nil {
		e.removeDir(tree, dep)
		return failed, err
	}
	nested, err := e.manifests.Load(manifestPath)
	if err != nil {
		e.removeDir(tree, dep)
		return failed, &InvalidDependencyError{Name: dep.Name, Dir: dir, Err: err}
	}

	rev, err := e.revParse(ctx, dep, dir, "HEAD")
	if err != nil {
		e.removeDir(tree, dep)
		return failed, err
	}
	locked := []lockChange{e.setLock(dep.Key(), rev)}

	if len(nested.Dependencies) > 0 {
		logger.WithField("count", len(nested.Dependencies)).Debug("syncing nested dependencies")
		_, nestedLocked := e.syncAll(ctx, tree.Nested(dep.Name), nested, depth+1)
		locked = append(locked, nestedLocked...)
	}
	return fetched{outcome: OutcomeFetched, revision: rev, manifestPath: manifestPath, locked: locked}, nil
}

// resolveManifest finds the manifest of a fetched dependency, falling back
// to the declaring project's resolve override.
func (e *Engine) resolveManifest(tree workspace.Tree, project *manifest.Project, name string) (string, error) {
	dir := tree.Dir(name)
	if path, err := e.manifests.Locate(dir); err == nil {
		return path, nil
	}
	override, ok := project.Override(name)
	if !ok {
		return "", &InvalidDependencyError{Name: name, Dir: dir}
	}
	expanded, err := homedir.Expand(override)
	if err != nil {
		return "", &InvalidDependencyError{Name: name, Dir: dir, Err: fmt.Errorf("expanding override %q: %w", override, err)}
	}
	path := tree.Resolve(expanded)
	if ok, _ := afero.Exists(tree.Fs(), path); !ok {
		return "", &InvalidDependencyError{Name: name, Dir: dir, Err: fmt.Errorf("resolve override %s does not exist", path)}
	}
	e.log.WithFields(log.Fields{"dependency": name, "manifest": path}).Debug("using resolve override")
	return path, nil
}

// removeDir removes a dependency's directory after a failed fetch. Its
// lock entry is left alone: a failed fetch writes none, and an existing
// entry with the same key belongs to another copy of the repository.
func (e *Engine) removeDir(tree workspace.Tree, dep manifest.Dependency) {
	if err := tree.Remove(dep.Name); err != nil {
		e.log.WithError(err).WithField("dependency", dep.Name).Warn("rolling back directory")
	}
}

// setLock records rev for key and returns what it replaced.
func (e *Engine) setLock(key, rev string) lockChange {
	previous, existed := e.lock.Get(key)
	e.lock.Set(key, rev)
	e.commitLock()
	return lockChange{key: key, previous: previous, existed: existed}
}

// revertLock undoes changes, newest first.
func (e *Engine) revertLock(changes []lockChange) {
	if len(changes) == 0 {
		return
	}
	for i := len(changes) - 1; i >= 0; i-- {
		c := changes[i]
		if c.existed {
			e.lock.Set(c.key, c.previous)
		} else {
			e.lock.Delete(c.key)
		}
	}
	e.commitLock()
}
