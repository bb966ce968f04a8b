package engine

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/fbkclanna/depot/internal/lock"
	"github.com/fbkclanna/depot/internal/manifest"
	"github.com/fbkclanna/depot/internal/metrics"
	"github.com/fbkclanna/depot/internal/selector"
	"github.com/fbkclanna/depot/internal/vcs"
)

// DefaultSelectionAttempts bounds how often an out of range project index
// is asked again.
const DefaultSelectionAttempts = 3

// Manifests loads, saves and locates project manifests.
type Manifests interface {
	Load(path string) (*manifest.Project, error)
	Save(p *manifest.Project, path string) error
	Locate(dir string) (string, error)
}

// Options configures an Engine.
type Options struct {
	VCS       vcs.Client
	Manifests Manifests
	Lock      *lock.Store
	// Selector answers project choices during AddDependency.
	Selector selector.Provider
	// Logger defaults to the logrus standard logger.
	Logger log.FieldLogger
	// Metrics may be nil.
	Metrics *metrics.Recorder
	// EagerLock saves the lock file after every fetched dependency instead
	// of leaving it to the caller.
	EagerLock bool
	// Observer may be nil.
	Observer Observer
	// SelectionAttempts defaults to DefaultSelectionAttempts.
	SelectionAttempts int
}

// Engine runs dependency operations.
type Engine struct {
	vcs       vcs.Client
	manifests Manifests
	lock      *lock.Store
	selector  selector.Provider
	log       log.FieldLogger
	metrics   *metrics.Recorder
	eagerLock bool
	observer  Observer
	attempts  int
}

// New returns an Engine.
func New(opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = log.StandardLogger()
	}
	if opts.SelectionAttempts <= 0 {
		opts.SelectionAttempts = DefaultSelectionAttempts
	}
	return &Engine{
		vcs:       opts.VCS,
		manifests: opts.Manifests,
		lock:      opts.Lock,
		selector:  opts.Selector,
		log:       opts.Logger,
		metrics:   opts.Metrics,
		eagerLock: opts.EagerLock,
		observer:  opts.Observer,
		attempts:  opts.SelectionAttempts,
	}
}

func (e *Engine) report(op string, r Result) {
	e.metrics.Outcome(op, r.Outcome.String())
	fields := log.Fields{
		"op":         op,
		"dependency": r.Dependency.Name,
		"depth":      r.Depth,
		"outcome":    r.Outcome.String(),
	}
	if r.Err != nil {
		e.log.WithFields(fields).WithError(r.Err).Warn("dependency failed")
	} else {
		e.log.WithFields(fields).Debug("dependency done")
	}
	if e.observer != nil {
		e.observer(r)
	}
}

func (e *Engine) clone(ctx context.Context, d manifest.Dependency, dest string) error {
	start := time.Now()
	err := e.vcs.Clone(ctx, d.CloneURL(), dest, vcs.CloneOpts{Branch: d.Branch, Recursive: true})
	e.metrics.VCS("clone", start, err)
	if err != nil {
		return &VCSError{Op: "clone", Dependency: d.Name, Err: err}
	}
	return nil
}

func (e *Engine) fetch(ctx context.Context, d manifest.Dependency, dir string) error {
	start := time.Now()
	err := e.vcs.Fetch(ctx, dir, 0)
	e.metrics.VCS("fetch", start, err)
	if err != nil {
		return &VCSError{Op: "fetch", Dependency: d.Name, Err: err}
	}
	return nil
}

func (e *Engine) revParse(ctx context.Context, d manifest.Dependency, dir, ref string) (string, error) {
	start := time.Now()
	rev, err := e.vcs.RevParse(ctx, dir, ref)
	e.metrics.VCS("rev-parse", start, err)
	if err != nil {
		return "", &VCSError{Op: "rev-parse " + ref, Dependency: d.Name, Err: err}
	}
	return rev, nil
}

// commitLock persists the lock file when eager locking is on.
func (e *Engine) commitLock() {
	if !e.eagerLock {
		return
	}
	if err := e.lock.Save(); err != nil {
		e.log.WithError(err).Warn("saving lock file")
	}
}
