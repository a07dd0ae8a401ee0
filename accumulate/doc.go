// Package accumulate turns push-style native callbacks into host-visible values.
//
// A native operation that produces variable-length data does not return a
// host object. It invokes a callback zero, one, or many times, each
// invocation forwarding one borrowed (pointer, length) byte range. The
// accumulator copies the range into host-owned memory before returning
// and, once the native call completes, presents the result as one value.
//
// Three variants share the Consume(part []byte) error shape:
//
//   - Joiner buffers chunks in order and joins them into one string.
//   - Stream forwards each chunk to a pre-opened io.Writer, in text or
//     binary mode, optionally under a host-state guard.
//   - Single stores exactly one chunk and enforces that invocation count
//     with a panic, since a violation is a collaborator defect.
//
// Exactly one accumulator is associated with one native call. Returning
// an error from Consume is the abort signal: the emitter must stop and
// surface the error; the accumulator is left safe to discard even if its
// result is never taken.
//
// Text decoding rejects invalid UTF-8 with an error rather than
// substituting replacement characters, matching the decode policy used
// across the bridge.
package accumulate
