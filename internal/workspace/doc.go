// Package workspace integrates manifest and lock loading with path
// resolution. It provides the Context type holding a project's resolved
// paths and loaded state, and the Tree type addressing fetched dependency
// directories by name.
package workspace
