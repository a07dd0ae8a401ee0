package accumulate

import (
	"strings"
	"unicode/utf8"

	"github.com/wippyai/callback-bridge/errors"
)

// Joiner collects an unbounded sequence of text chunks and joins them
// into one string once the native call completes.
//
// Chunks are kept in arrival order. A zero-length chunk is a valid
// invocation and contributes an empty part.
type Joiner struct {
	parts []string
}

// NewJoiner creates an empty Joiner.
func NewJoiner() *Joiner {
	return &Joiner{}
}

// Consume decodes a chunk as UTF-8 and appends it to the parts list.
// Invalid UTF-8 is an error; the emitter must stop on it.
func (j *Joiner) Consume(part []byte) error {
	if !utf8.Valid(part) {
		return errors.InvalidUTF8(errors.PhaseAccumulate, part)
	}
	j.parts = append(j.parts, string(part))
	return nil
}

// Join concatenates all parts in arrival order with no separator.
// The parts are not consumed; a repeated Join yields the same result.
func (j *Joiner) Join() string {
	return strings.Join(j.parts, "")
}

// Parts returns the number of chunks consumed so far.
func (j *Joiner) Parts() int {
	return len(j.parts)
}
