package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutcome_String(t *testing.T) {
	tests := map[Outcome]string{
		OutcomeAlreadyPresent: "OK",
		OutcomeFetched:        "Fetched",
		OutcomeAdded:          "Added",
		OutcomeRemoved:        "Removed",
		OutcomeFailed:         "FAILED",
		OutcomeUpToDate:       "Up to date",
		OutcomeUpdated:        "UPDATED",
		OutcomeNotFound:       "NOT FOUND",
		Outcome(99):           "UNKNOWN",
	}
	for o, want := range tests {
		assert.Equal(t, want, o.String())
	}
}

func TestOutcome_Failed(t *testing.T) {
	assert.True(t, OutcomeFailed.Failed())
	assert.True(t, OutcomeNotFound.Failed())
	assert.False(t, OutcomeMissing.Failed())
	assert.False(t, OutcomeUpToDate.Failed())
}

func TestErrors_unwrap(t *testing.T) {
	cause := errors.New("exit status 128")
	err := error(&VCSError{Op: "clone", Dependency: "foo", Err: cause})
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "clone foo: exit status 128", err.Error())

	invalid := &InvalidDependencyError{Name: "foo", Dir: "/p/.depot/foo"}
	assert.Contains(t, invalid.Error(), "no manifest")
	assert.Nil(t, invalid.Unwrap())
}
