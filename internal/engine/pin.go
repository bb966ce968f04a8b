package engine

import (
	"context"

	"github.com/fbkclanna/depot/internal/manifest"
	"github.com/fbkclanna/depot/internal/workspace"
)

// Pin records the checked out revision of every dependency present on
// disk, nested ones included. It repairs lock entries lost when a process
// died between a fetch and the lock file write.
func (e *Engine) Pin(ctx context.Context, tree workspace.Tree, project *manifest.Project) []Result {
	return e.pin(ctx, tree, project, 0)
}

func (e *Engine) pin(ctx context.Context, tree workspace.Tree, project *manifest.Project, depth int) []Result {
	results := make([]Result, 0, len(project.Dependencies))
	for _, dep := range project.Dependencies {
		r := Result{Dependency: dep, Depth: depth}
		switch {
		case ctx.Err() != nil:
			r.Outcome, r.Err = OutcomeFailed, ctx.Err()
		case !tree.Exists(dep.Name):
			r.Outcome = OutcomeMissing
		default:
			r = e.pinOne(ctx, tree, project, dep, depth)
		}
		e.report("pin", r)
		results = append(results, r)
	}
	return results
}

func (e *Engine) pinOne(ctx context.Context, tree workspace.Tree, project *manifest.Project, dep manifest.Dependency, depth int) Result {
	r := Result{Dependency: dep, Depth: depth}
	rev, err := e.revParse(ctx, dep, tree.Dir(dep.Name), "HEAD")
	if err != nil {
		r.Outcome, r.Err = OutcomeFailed, err
		return r
	}
	r.Revision = rev
	r.Outcome = OutcomeAlreadyPresent
	if locked, ok := e.lock.Get(dep.Key()); !ok || locked != rev {
		e.lock.Set(dep.Key(), rev)
		r.Outcome = OutcomePinned
	}

	path, err := e.resolveManifest(tree, project, dep.Name)
	if err != nil {
		e.log.WithError(err).WithField("dependency", dep.Name).Debug("not descending into dependency")
		return r
	}
	nested, err := e.manifests.Load(path)
	if err != nil {
		e.log.WithError(err).WithField("dependency", dep.Name).Debug("not descending into dependency")
		return r
	}
	e.pin(ctx, tree.Nested(dep.Name), nested, depth+1)
	return r
}
