package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fbkclanna/depot/internal/manifest"
	"github.com/fbkclanna/depot/internal/ui"
)

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <repository-url/name> [branch]",
		Short: "Fetch a dependency and declare it in the manifest",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runAdd,
	}
}

func runAdd(cmd *cobra.Command, args []string) (err error) {
	branch := ""
	if len(args) == 2 {
		branch = args[1]
	}
	dep, err := manifest.ParseDependency(args[0], branch)
	if err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.finish(&err)
	s.progress = ui.NewProgress(cmd.ErrOrStderr(), 1)

	s.progress.Log("Adding %s from %s ...", dep.Name, dep.Repository)
	if err := s.engine.AddDependency(cmd.Context(), s.ws, dep); err != nil {
		return fmt.Errorf("adding %s: %w", dep.Name, err)
	}
	return nil
}
