package engine

import (
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/fbkclanna/depot/internal/lock"
	"github.com/fbkclanna/depot/internal/manifest"
	"github.com/fbkclanna/depot/internal/metrics"
	"github.com/fbkclanna/depot/internal/selector"
	"github.com/fbkclanna/depot/internal/testutil"
	"github.com/fbkclanna/depot/internal/workspace"
)

const libs = "https://example.com/libs"

type fixture struct {
	fs       afero.Fs
	vcs      *testutil.FakeVCS
	wc       *workspace.Context
	engine   *Engine
	selector *selector.Scripted
	hook     *test.Hook
	metrics  *metrics.Recorder
	results  []Result
}

type fixtureOption func(*Options)

func withEagerLock(o *Options) { o.EagerLock = true }

func newFixture(t *testing.T, answers []string, opts ...fixtureOption) *fixture {
	t.Helper()
	fs := afero.NewMemMapFs()
	writeProject(t, fs, "/proj/depot.yaml", &manifest.Project{Name: "app", Version: "0.1.0"})

	wc, err := workspace.Load("/proj", workspace.Options{
		Fs:          fs,
		ToolVersion: "test",
		LockOptions: lock.Options{Clock: clockwork.NewFakeClock()},
	})
	require.NoError(t, err)

	logger, hook := test.NewNullLogger()
	f := &fixture{
		fs:       fs,
		vcs:      testutil.NewFakeVCS(fs),
		wc:       wc,
		selector: selector.NewScripted(answers...),
		hook:     hook,
		metrics:  metrics.New(),
	}
	o := Options{
		VCS:       f.vcs,
		Manifests: manifest.NewStore(fs),
		Lock:      wc.Lock,
		Selector:  f.selector,
		Logger:    logger,
		Metrics:   f.metrics,
		Observer:  func(r Result) { f.results = append(f.results, r) },
	}
	for _, opt := range opts {
		opt(&o)
	}
	f.engine = New(o)
	return f
}

func writeProject(t *testing.T, fs afero.Fs, path string, p *manifest.Project) {
	t.Helper()
	require.NoError(t, manifest.NewStore(fs).Save(p, path))
}

func projectYAML(t *testing.T, name string, projects []string, deps ...manifest.Dependency) string {
	t.Helper()
	data, err := manifest.Marshal(&manifest.Project{Name: name, Version: "1.0.0", ProjectPaths: projects, Dependencies: deps}, manifest.FormatYAML)
	require.NoError(t, err)
	return string(data)
}

func dep(name string) manifest.Dependency {
	return manifest.Dependency{Name: name, Repository: libs}
}

// addRemote registers a remote that is a valid project with the given
// sub-projects and dependencies.
func (f *fixture) addRemote(t *testing.T, name string, projects []string, deps ...manifest.Dependency) string {
	t.Helper()
	url := dep(name).CloneURL()
	f.vcs.AddRemote(url, map[string]string{
		"depot.yaml": projectYAML(t, name, projects, deps...),
		"README.md":  "# " + name + "\n",
	})
	return url
}

func (f *fixture) tree() workspace.Tree { return f.wc.Tree }

func (f *fixture) exists(t *testing.T, path string) bool {
	t.Helper()
	ok, err := afero.Exists(f.fs, path)
	require.NoError(t, err)
	return ok
}

func (f *fixture) reloadManifest(t *testing.T) *manifest.Project {
	t.Helper()
	p, err := manifest.NewStore(f.fs).Load("/proj/depot.yaml")
	require.NoError(t, err)
	return p
}

func (f *fixture) outcomes(depth int) []Outcome {
	var out []Outcome
	for _, r := range f.results {
		if r.Depth == depth {
			out = append(out, r.Outcome)
		}
	}
	return out
}
