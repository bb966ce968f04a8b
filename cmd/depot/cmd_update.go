package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fbkclanna/depot/internal/manifest"
	"github.com/fbkclanna/depot/internal/ui"
)

func newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <repository-url/name | all>",
		Short: "Refresh dependencies whose remote moved past the locked revision",
		Args:  cobra.ExactArgs(1),
		RunE:  runUpdate,
	}
}

func runUpdate(cmd *cobra.Command, args []string) (err error) {
	target := args[0]
	name := ""
	if target != "all" {
		dep, err := manifest.ParseDependency(target, "")
		if err != nil {
			return err
		}
		name = dep.Name
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.finish(&err)

	if name != "" {
		s.progress = ui.NewProgress(cmd.ErrOrStderr(), 1)
		if _, err := s.engine.Update(cmd.Context(), s.ws.Tree, s.ws.Manifest, name); err != nil {
			return fmt.Errorf("updating %s: %w", name, err)
		}
	} else if err := failedError(s.engine.UpdateAll(cmd.Context(), s.ws.Tree, s.ws.Manifest)); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Update complete.")
	return nil
}
