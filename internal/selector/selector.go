package selector

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNoAnswer is returned when a provider has no more answers to give.
var ErrNoAnswer = errors.New("no answer available")

// Provider answers selection questions during AddDependency.
type Provider interface {
	// ChooseIndex returns the zero-based index of the chosen entry. Out of
	// range answers are returned as is; callers validate them.
	ChooseIndex(choices []string) (int, error)
	// RequestPath returns the path of the project to use, typed by the user.
	RequestPath() (string, error)
}

// Scripted replays a fixed list of answers. Index answers are one-based,
// matching what a user types at the line prompt.
type Scripted struct {
	answers []string
	next    int
}

// NewScripted returns a provider answering with answers in order.
func NewScripted(answers ...string) *Scripted {
	return &Scripted{answers: answers}
}

// ParseScript splits a comma separated answer list.
func ParseScript(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func (s *Scripted) pop() (string, error) {
	if s.next >= len(s.answers) {
		return "", ErrNoAnswer
	}
	a := s.answers[s.next]
	s.next++
	return a, nil
}

// ChooseIndex implements Provider.
func (s *Scripted) ChooseIndex(choices []string) (int, error) {
	a, err := s.pop()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(a)
	if err != nil {
		return 0, fmt.Errorf("scripted answer %q is not a number: %w", a, err)
	}
	return n - 1, nil
}

// RequestPath implements Provider.
func (s *Scripted) RequestPath() (string, error) {
	return s.pop()
}

// Remaining returns how many answers are left.
func (s *Scripted) Remaining() int { return len(s.answers) - s.next }
