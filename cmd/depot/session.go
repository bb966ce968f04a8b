package main

import (
	"fmt"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/fbkclanna/depot/internal/config"
	"github.com/fbkclanna/depot/internal/engine"
	"github.com/fbkclanna/depot/internal/git"
	"github.com/fbkclanna/depot/internal/gogit"
	"github.com/fbkclanna/depot/internal/manifest"
	"github.com/fbkclanna/depot/internal/metrics"
	"github.com/fbkclanna/depot/internal/selector"
	"github.com/fbkclanna/depot/internal/ui"
	"github.com/fbkclanna/depot/internal/vcs"
	"github.com/fbkclanna/depot/internal/workspace"
)

// session is the state shared by commands operating on a project.
type session struct {
	root     string
	fs       afero.Fs
	cfg      *config.Config
	ws       *workspace.Context
	vcs      vcs.Client
	metrics  *metrics.Recorder
	progress *ui.Progress
	selector selector.Provider
	engine   *engine.Engine
}

// loadConfig resolves the project root and configuration, and configures
// logging from it.
func loadConfig(cmd *cobra.Command) (string, *config.Config, error) {
	rootFlag, _ := cmd.Flags().GetString("root")
	root, err := filepath.Abs(rootFlag)
	if err != nil {
		return "", nil, fmt.Errorf("resolving project root: %w", err)
	}
	cfg, err := config.Load(config.Options{Root: root, Flags: cmd.Flags()})
	if err != nil {
		return "", nil, err
	}
	log.SetOutput(cmd.ErrOrStderr())
	log.SetLevel(cfg.Level())
	return root, cfg, nil
}

func newVCS(cmd *cobra.Command, cfg *config.Config) (vcs.Client, error) {
	kind, err := vcs.ParseKind(cfg.VCS)
	if err != nil {
		return nil, err
	}
	if kind == vcs.KindEmbedded {
		return gogit.New(cmd.ErrOrStderr()), nil
	}
	return &git.Client{Progress: cmd.ErrOrStderr()}, nil
}

// openSession loads the project in --root and builds an engine for it.
func openSession(cmd *cobra.Command) (*session, error) {
	root, cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	fs := afero.NewOsFs()
	ws, err := workspace.Load(root, workspace.Options{
		Fs:          fs,
		DirName:     cfg.WorkspaceDir,
		LockFile:    cfg.LockFile,
		ToolVersion: version,
	})
	if err != nil {
		return nil, err
	}
	client, err := newVCS(cmd, cfg)
	if err != nil {
		return nil, err
	}

	s := &session{
		root:     root,
		fs:       fs,
		cfg:      cfg,
		ws:       ws,
		vcs:      client,
		progress: ui.NewProgress(cmd.ErrOrStderr(), len(ws.Manifest.Dependencies)),
		selector: newSelector(cmd, cfg),
	}
	if cfg.MetricsFile != "" {
		s.metrics = metrics.New()
	}
	s.engine = engine.New(engine.Options{
		VCS:       client,
		Manifests: manifest.NewStore(fs),
		Lock:      ws.Lock,
		Selector:  s.selector,
		Logger:    log.StandardLogger(),
		Metrics:   s.metrics,
		EagerLock: cfg.EagerLock,
		Observer:  s.observe,
	})
	return s, nil
}

func (s *session) observe(r engine.Result) {
	detail := ""
	switch {
	case r.Err != nil:
		detail = r.Err.Error()
	case r.Revision != "":
		detail = shortRev(r.Revision)
	}
	s.progress.Report(r.Depth, r.Dependency.Name, r.Outcome.String(), detail)
}

// finish persists the lock file and metrics. The first error wins.
func (s *session) finish(errp *error) {
	if s.ws.Lock.Dirty() {
		log.WithField("path", s.ws.Lock.Path()).Debug("saving lock file")
	}
	if err := s.ws.Lock.Save(); err != nil && *errp == nil {
		*errp = err
	}
	if sc, ok := s.selector.(*selector.Scripted); ok && sc.Remaining() > 0 {
		log.WithField("unused", sc.Remaining()).Warn("not every --select answer was used")
	}
	if err := s.metrics.WriteToTextfile(s.cfg.MetricsFile); err != nil {
		log.WithError(err).Warn("writing metrics file")
	}
}

// failedError summarizes failed results for the process exit status.
func failedError(results []engine.Result) error {
	n := 0
	for _, r := range results {
		if r.Outcome.Failed() {
			n++
		}
	}
	if n == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d dependencies failed", n, len(results))
}

func shortRev(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}
