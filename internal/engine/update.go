package engine

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/fbkclanna/depot/internal/manifest"
	"github.com/fbkclanna/depot/internal/workspace"
)

// Update refreshes the named dependency. It fetches the remote and, when
// the fetched revision differs from the locked one or no lock entry
// exists, replaces the checkout with a fresh clone. A dependency that is
// not on disk yet is synced.
func (e *Engine) Update(ctx context.Context, tree workspace.Tree, project *manifest.Project, name string) (Outcome, error) {
	idx := project.Find(name)
	if idx < 0 {
		err := fmt.Errorf("%w: %s", ErrDependencyNotFound, name)
		e.report("update", Result{Dependency: manifest.Dependency{Name: name}, Outcome: OutcomeNotFound, Err: err})
		return OutcomeNotFound, err
	}
	r := e.update(ctx, tree, project, project.Dependencies[idx])
	e.report("update", r)
	return r.Outcome, r.Err
}

// UpdateAll updates every declared dependency in manifest order.
func (e *Engine) UpdateAll(ctx context.Context, tree workspace.Tree, project *manifest.Project) []Result {
	results := make([]Result, 0, len(project.Dependencies))
	for _, dep := range project.Dependencies {
		var r Result
		if err := ctx.Err(); err != nil {
			r = Result{Dependency: dep, Outcome: OutcomeFailed, Err: err}
		} else {
			r = e.update(ctx, tree, project, dep)
		}
		e.report("update", r)
		results = append(results, r)
	}
	return results
}

func (e *Engine) update(ctx context.Context, tree workspace.Tree, project *manifest.Project, dep manifest.Dependency) Result {
	res := Result{Dependency: dep}
	if !tree.Exists(dep.Name) {
		f, err := e.sync(ctx, tree, project, dep, 0)
		res.Outcome, res.Revision, res.Err = f.outcome, f.revision, err
		return res
	}

	dir := tree.Dir(dep.Name)
	if err := e.fetch(ctx, dep, dir); err != nil {
		res.Outcome, res.Err = OutcomeFailed, err
		return res
	}
	remote, err := e.revParse(ctx, dep, dir, "FETCH_HEAD")
	if err != nil {
		res.Outcome, res.Err = OutcomeFailed, err
		return res
	}

	logger := e.log.WithFields(log.Fields{"dependency": dep.Name, "remote": remote})
	if locked, ok := e.lock.Get(dep.Key()); ok && locked == remote {
		logger.Debug("up to date")
		res.Outcome, res.Revision = OutcomeUpToDate, locked
		return res
	}

	logger.Info("refreshing checkout")
	if err := tree.Remove(dep.Name); err != nil {
		res.Outcome, res.Err = OutcomeFailed, err
		return res
	}
	f, err := e.sync(ctx, tree, project, dep, 0)
	if err != nil {
		// The checkout the entry described was removed above.
		if e.lock.Delete(dep.Key()) {
			e.commitLock()
		}
		res.Outcome, res.Err = OutcomeFailed, err
		return res
	}
	res.Outcome, res.Revision = OutcomeUpdated, f.revision
	return res
}
