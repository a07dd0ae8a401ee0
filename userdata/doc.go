// Package userdata boxes host values behind opaque uint32 handles.
//
// A native callback ABI carries an opaque user-data pointer alongside the
// callback itself. On the Go side of the bridge that pointer is a Handle:
// the host boxes a sink into a Table immediately before the native call,
// hands the handle across the boundary, and unboxes it inside each
// callback invocation. The native side must never retain a handle past
// its own return, and the boxed value must outlive every callback
// invocation the call could make.
//
// Handle 0 is reserved and always invalid.
package userdata
