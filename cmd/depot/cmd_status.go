package main

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/fbkclanna/depot/internal/manifest"
	"github.com/fbkclanna/depot/internal/ui"
	"github.com/fbkclanna/depot/internal/vcs"
	"github.com/fbkclanna/depot/internal/workspace"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show dependency status",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

type dependencyStatus struct {
	Name       string `json:"name"`
	Repository string `json:"repository"`
	Branch     string `json:"branch,omitempty"`
	Project    string `json:"project,omitempty"`
	Present    bool   `json:"present"`
	Head       string `json:"head,omitempty"`
	Locked     string `json:"locked,omitempty"`
	LockDiff   string `json:"lock_diff,omitempty"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	statuses := make([]dependencyStatus, 0, len(s.ws.Manifest.Dependencies))
	for _, d := range s.ws.Manifest.Dependencies {
		statuses = append(statuses, collectStatus(cmd, s.ws, s.vcs, d))
	}

	out := cmd.OutOrStdout()

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(statuses)
	}

	tbl := ui.NewTable(out, "DEPENDENCY", "BRANCH", "PROJECT", "STATE", "HEAD", "LOCK DIFF")
	for _, st := range statuses {
		state := "present"
		if !st.Present {
			state = "missing"
		}
		tbl.Row(st.Name, st.Branch, st.Project, state, shortRev(st.Head), st.LockDiff)
	}
	if err := tbl.Flush(); err != nil {
		return err
	}
	if tbl.Rows() == 0 {
		_, _ = fmt.Fprintln(out, "No dependencies declared. Add one with `depot add <url>`.")
	}
	return nil
}

func collectStatus(cmd *cobra.Command, ws *workspace.Context, client vcs.Client, d manifest.Dependency) dependencyStatus {
	st := dependencyStatus{
		Name:       d.Name,
		Repository: d.Repository,
		Branch:     d.Branch,
		Project:    d.Project,
	}
	st.Locked, _ = ws.Lock.Get(d.Key())

	if !ws.Tree.Exists(d.Name) {
		return st
	}
	st.Present = true

	if head, err := client.RevParse(cmd.Context(), ws.DependencyDir(d), vcs.RefHead); err == nil {
		st.Head = head
	}
	switch {
	case st.Locked == "":
		st.LockDiff = "unlocked"
	case st.Head != "" && st.Head != st.Locked:
		st.LockDiff = fmt.Sprintf("lock=%s", shortRev(st.Locked))
	}
	return st
}
