// Package defaulting makes argument positions defaultable.
//
// A Defaulting[T] parameter lets a caller omit the argument and have it
// substituted with an environmentally current instance of T, resolved
// by a per-type resolver registered with Register. Code past the
// conversion boundary always sees a valid reference: if resolution
// fails there is nothing to bind, and the failure propagates as a hard
// error before the underlying operation ever runs, carrying the
// registered type description for diagnosis.
//
// Convert is the only way a wrapper comes into being outside of Of:
//
//	d, outcome, err := defaulting.Convert[Ctx](arg)
//
// nil resolves, *Ctx binds, anything else is a soft non-match. The
// wrapper borrows; it never owns the referent, and the zero value is
// dereferenced by nothing but the marshalling layer's scratch storage.
//
// Register also installs the matching conversion rules in the bind
// package's default registry, so bound functions convert Defaulting
// parameters and unwrap Defaulting results without any per-call-site
// code.
package defaulting
