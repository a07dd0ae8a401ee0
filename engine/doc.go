// Package engine is the wazero side of the callback bridge.
//
// It instantiates a host module, callback_bridge, whose single export
// emit(ptr, len, handle) is the C-style string callback as seen from a
// guest: a borrowed byte range in guest linear memory plus the opaque
// user-data handle the host supplied. Each call reads the range,
// resolves the handle to its boxed sink, and consumes the chunk.
//
// The ABI carries no error values back from emit. A sink error aborts
// the in-flight guest call instead: the host function panics with an
// *Abort, wazero recovers it into the error returned by the guest
// Call, and AbortError recovers the original sink error from that
// chain on the host side.
package engine
