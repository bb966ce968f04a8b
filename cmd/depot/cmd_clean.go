package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove all fetched dependencies and reset the lock file (requires --force)",
		Args:  cobra.NoArgs,
		RunE:  runClean,
	}
	cmd.Flags().Bool("force", false, "Required to confirm destructive operation")
	return cmd
}

func runClean(cmd *cobra.Command, _ []string) (err error) {
	force, _ := cmd.Flags().GetBool("force")
	if !force {
		return fmt.Errorf("clean is destructive; pass --force to confirm")
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.finish(&err)

	if s.ws.Tree.Root() == s.root {
		return fmt.Errorf("refusing to clean project root %s", s.root)
	}
	if err := s.ws.Tree.Clean(); err != nil {
		return err
	}
	entries := s.ws.Lock.Len()
	s.ws.Lock.Reset()

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Dependencies removed: %s\n", s.ws.Tree.Root())
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Lock entries reset: %d\n", entries)
	return nil
}
