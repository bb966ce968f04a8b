// Package engine synchronizes a project's declared dependencies with its
// workspace tree and lock file.
//
// Every operation works on an explicit workspace.Tree, so fetching a
// dependency's own dependencies is a recursive call on the nested tree
// and never changes the process working directory. Operations run
// sequentially; an Engine and its lock store must not be shared between
// goroutines.
package engine
