package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fbkclanna/depot/internal/manifest"
	"github.com/fbkclanna/depot/internal/ui"
)

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <repository-url/name>",
		Aliases: []string{"rm"},
		Short:   "Remove a dependency from the manifest and the workspace",
		Args:    cobra.ExactArgs(1),
		RunE:    runRemove,
	}
}

func runRemove(cmd *cobra.Command, args []string) (err error) {
	dep, err := manifest.ParseDependency(args[0], "")
	if err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.finish(&err)
	s.progress = ui.NewProgress(cmd.ErrOrStderr(), 1)

	if err := s.engine.RemoveDependency(cmd.Context(), s.ws, dep); err != nil {
		return fmt.Errorf("removing %s: %w", dep.Name, err)
	}
	return nil
}
