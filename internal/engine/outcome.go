package engine

import "github.com/fbkclanna/depot/internal/manifest"

// Outcome is the result of an engine operation on one dependency.
type Outcome int

const (
	OutcomeAlreadyPresent Outcome = iota
	OutcomeFetched
	OutcomeAdded
	OutcomeRemoved
	OutcomeFailed
	OutcomeUpToDate
	OutcomeUpdated
	OutcomeNotFound
	OutcomePinned
	OutcomeMissing
)

var outcomeLabels = map[Outcome]string{
	OutcomeAlreadyPresent: "OK",
	OutcomeFetched:        "Fetched",
	OutcomeAdded:          "Added",
	OutcomeRemoved:        "Removed",
	OutcomeFailed:         "FAILED",
	OutcomeUpToDate:       "Up to date",
	OutcomeUpdated:        "UPDATED",
	OutcomeNotFound:       "NOT FOUND",
	OutcomePinned:         "Pinned",
	OutcomeMissing:        "MISSING",
}

// String returns the status label shown to users.
func (o Outcome) String() string {
	if s, ok := outcomeLabels[o]; ok {
		return s
	}
	return "UNKNOWN"
}

// Failed reports whether the outcome counts as a failure for the process
// exit status.
func (o Outcome) Failed() bool {
	return o == OutcomeFailed || o == OutcomeNotFound
}

// Result describes what happened to one dependency.
type Result struct {
	Dependency manifest.Dependency
	// Depth is 0 for the project's own dependencies and grows by one per
	// nesting level.
	Depth    int
	Outcome  Outcome
	Revision string
	Err      error
}

// Observer receives every result, nested ones included, as it happens.
type Observer func(Result)

// AnyFailed reports whether any result failed.
func AnyFailed(results []Result) bool {
	for _, r := range results {
		if r.Outcome.Failed() {
			return true
		}
	}
	return false
}
