package callbackbridge

import (
	"fmt"
	"io"
	"sync"

	"github.com/wippyai/callback-bridge/accumulate"
	"github.com/wippyai/callback-bridge/errors"
	"github.com/wippyai/callback-bridge/userdata"
)

// Memory is the linear-memory read surface the emit path needs.
// The engine package adapts wazero memory to it; tests use slice-backed fakes.
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
}

// ChunkSink consumes one borrowed byte range per callback invocation.
// The sink must copy the range before returning; the native side may
// reuse the buffer immediately after. A returned error is the abort
// signal: the emitter must stop and surface it.
type ChunkSink interface {
	Consume(part []byte) error
}

// Callback is the plain pair handed across the boundary: the emit
// function and the opaque user-data to pass back on every invocation.
// The native side must not retain either past its own return.
type Callback struct {
	Emit     func(part []byte, userData userdata.Handle) error
	UserData userdata.Handle
}

// Emitter is the native string-emitting operation contract. It invokes
// the callback zero, one, or many times synchronously, stops on the
// first emit error, and returns it.
type Emitter func(Callback) error

// Bind boxes a sink in the process-wide user-data table and returns
// the boundary pair plus a release function. The release must run
// before the owning call scope exits; after it, the handle is dead.
func Bind(sink ChunkSink) (Callback, func()) {
	h := userdata.Default().Insert(sink)
	cb := Callback{
		Emit:     dispatch,
		UserData: h,
	}
	release := func() {
		userdata.Default().Remove(h)
	}
	return cb, release
}

// dispatch resolves the handle back to its sink and consumes the part.
func dispatch(part []byte, h userdata.Handle) error {
	v, ok := userdata.Default().Get(h)
	if !ok {
		return errors.NotFound(errors.PhaseEmit, "user-data handle", fmt.Sprintf("%d", h))
	}
	sink, ok := v.(ChunkSink)
	if !ok {
		return errors.InvalidInput(errors.PhaseEmit, "user-data is not a chunk sink")
	}
	return sink.Consume(part)
}

// CollectString drives an emitter through a joining accumulator and
// returns the concatenation of everything it emitted.
func CollectString(emit Emitter) (string, error) {
	j := accumulate.NewJoiner()
	cb, release := Bind(j)
	defer release()

	if err := emit(cb); err != nil {
		return "", err
	}
	return j.Join(), nil
}

// CopyToWriter drives an emitter through a stream accumulator,
// forwarding every chunk to w in the given mode. A nil guard means no
// lock is taken around writes.
func CopyToWriter(emit Emitter, w io.Writer, mode accumulate.Mode, guard sync.Locker) error {
	s := accumulate.NewStream(w, mode, guard)
	cb, release := Bind(s)
	defer release()

	return emit(cb)
}

// CollectSingle drives an emitter that is guaranteed to emit exactly
// one chunk. An emitter that violates that count panics; an emitter
// that errors propagates its error before the value is taken.
func CollectSingle(emit Emitter) (string, error) {
	s := accumulate.NewSingle()
	cb, release := Bind(s)
	defer release()

	if err := emit(cb); err != nil {
		return "", err
	}
	return s.Take(), nil
}
