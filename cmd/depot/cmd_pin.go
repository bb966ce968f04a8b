package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pin",
		Short: "Record the checked out revision of every present dependency",
		Args:  cobra.NoArgs,
		RunE:  runPin,
	}
}

func runPin(cmd *cobra.Command, _ []string) (err error) {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.finish(&err)

	results := s.engine.Pin(cmd.Context(), s.ws.Tree, s.ws.Manifest)
	if err := failedError(results); err != nil {
		return err
	}
	if s.ws.Lock.Dirty() {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Lock file updated: %s\n", s.ws.Lock.Path())
	} else {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Lock file already up to date: %s\n", s.ws.Lock.Path())
	}
	return nil
}
