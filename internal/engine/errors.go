package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateDependency is returned by AddDependency when the name is
	// already declared.
	ErrDuplicateDependency = errors.New("dependency already declared")

	// ErrDependencyNotFound is returned when a named dependency is not
	// declared in the project.
	ErrDependencyNotFound = errors.New("dependency not declared")

	// ErrSelectionOutOfRange is returned when no valid project index was
	// chosen within the allowed attempts.
	ErrSelectionOutOfRange = errors.New("selection out of range")

	// ErrEmptyPath is returned when the user enters an empty project path.
	ErrEmptyPath = errors.New("project path must not be empty")

	// ErrNoSelector is returned when a choice is needed but the engine has
	// no selection provider.
	ErrNoSelector = errors.New("no selection provider configured")
)

// InvalidDependencyError reports a fetched dependency that has neither a
// manifest nor a resolve override.
type InvalidDependencyError struct {
	Name string
	Dir  string
	Err  error
}

func (e *InvalidDependencyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dependency %s is not a valid project: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("dependency %s has no manifest in %s and no resolve override", e.Name, e.Dir)
}

func (e *InvalidDependencyError) Unwrap() error { return e.Err }

// VCSError reports a failed version control call.
type VCSError struct {
	Op         string
	Dependency string
	Err        error
}

func (e *VCSError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Dependency, e.Err)
}

func (e *VCSError) Unwrap() error { return e.Err }
