package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "depot",
		Short:         "Source-level dependency manager",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.String("root", ".", "Project directory")
	pf.String("vcs", "git", "Version control client: git or embedded")
	pf.String("log-level", "warn", "Log level: debug, info, warn, error")
	pf.String("metrics-file", "", "Write metrics in Prometheus text format to this file")
	pf.String("select", "", "Comma separated answers for project selection prompts")

	cmd.AddCommand(
		newInitCmd(),
		newAddCmd(),
		newRemoveCmd(),
		newSyncCmd(),
		newUpdateCmd(),
		newStatusCmd(),
		newPinCmd(),
		newCleanCmd(),
		newDoctorCmd(),
	)

	return cmd
}
