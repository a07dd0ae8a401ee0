// Package callbackbridge bridges a native library's C-style callback ABI
// and the host side's object and error model.
//
// A native operation that produces text or binary data does not allocate
// a host object. It takes an opaque user-data value and a callback of
// shape (pointer, length, user-data) and pushes chunks through it. This
// module turns that protocol into host-visible values:
//
//	result, err := callbackbridge.CollectString(func(cb callbackbridge.Callback) error {
//		// the native call, invoking cb.Emit per chunk
//		return printOp(cb)
//	})
//
// The packages divide as follows:
//
//	callbackbridge   Boundary contracts and high-level collect helpers
//	├── accumulate/  Chunk sinks: join to string, forward to writer, single chunk
//	├── defaulting/  Defaultable argument wrapper with per-type resolvers
//	├── bind/        Conversion-rule registry and function marshalling
//	├── userdata/    Opaque uint32 handles boxing sinks across the boundary
//	├── engine/      wazero host module exposing the emit import to guests
//	└── errors/      Structured Phase/Kind errors
//
// Errors cross the boundary by convention, not by ABI support: an
// accumulator error aborts the emitter, and on the wazero path the
// engine converts it into a panic that wazero surfaces as the error of
// the in-flight guest call.
package callbackbridge
