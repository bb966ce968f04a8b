// Package git implements vcs.Client by running the git command line tool.
// It handles clone, fetch and rev-parse without depending on other
// internal packages beyond the vcs interface.
package git
