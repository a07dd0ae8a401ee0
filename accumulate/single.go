package accumulate

import (
	"unicode/utf8"

	"github.com/wippyai/callback-bridge/errors"
)

// Single adapts an emitter that is contractually guaranteed to invoke
// its callback exactly once. A zero or double invocation is a
// collaborator defect, not bad input, and fails fast with a panic.
type Single struct {
	value   string
	invoked bool
}

// NewSingle creates an empty Single.
func NewSingle() *Single {
	return &Single{}
}

// Consume stores the one chunk, decoded as UTF-8.
// Panics if called more than once.
func (s *Single) Consume(part []byte) error {
	if s.invoked {
		panic("accumulate: Single called back multiple times")
	}
	s.invoked = true

	if !utf8.Valid(part) {
		return errors.InvalidUTF8(errors.PhaseAccumulate, part)
	}
	s.value = string(part)
	return nil
}

// Take returns the stored value and empties the accumulator.
// Panics if the callback was never invoked.
func (s *Single) Take() string {
	if !s.invoked {
		panic("accumulate: Single not called back")
	}
	v := s.value
	s.value = ""
	return v
}
