package accumulate

import (
	"io"
	"sync"
	"unicode/utf8"

	"github.com/wippyai/callback-bridge/errors"
)

// Mode selects the representation a Stream hands to its sink.
// It is fixed at construction; the two modes are mutually exclusive.
type Mode uint8

const (
	// ModeText validates each chunk as UTF-8 and writes it as text.
	ModeText Mode = iota
	// ModeBinary writes a fresh copy of the raw chunk bytes.
	ModeBinary
)

// Stream forwards each chunk to a pre-opened writable sink instead of
// buffering internally. The sink owns flush and close semantics; this
// accumulator ends at forwarding the exact bytes in the exact order
// received, so there is no finalization step.
//
// The guard, when non-nil, is held around every sink write. The native
// side may invoke the callback from an execution context that does not
// hold the host's exclusivity lock; the in-memory accumulators assume
// the caller already holds it, this one does not.
type Stream struct {
	sink  io.Writer
	guard sync.Locker
	mode  Mode
}

// NewStream creates a Stream writing to sink in the given mode.
// A nil guard means no lock is taken around writes.
func NewStream(sink io.Writer, mode Mode, guard sync.Locker) *Stream {
	return &Stream{
		sink:  sink,
		guard: guard,
		mode:  mode,
	}
}

// Consume forwards one chunk to the sink. A failed sink write
// propagates as the error of this invocation; the emitter must treat
// it as a hard abort of the overall operation.
func (s *Stream) Consume(part []byte) error {
	if s.guard != nil {
		s.guard.Lock()
		defer s.guard.Unlock()
	}

	if s.mode == ModeBinary {
		// The sink gets its own copy; it may retain the buffer.
		buf := make([]byte, len(part))
		copy(buf, part)
		if _, err := s.sink.Write(buf); err != nil {
			return errors.SinkWrite(err)
		}
		return nil
	}

	if !utf8.Valid(part) {
		return errors.InvalidUTF8(errors.PhaseAccumulate, part)
	}
	if _, err := io.WriteString(s.sink, string(part)); err != nil {
		return errors.SinkWrite(err)
	}
	return nil
}
