// Package bind is the argument marshalling layer of the bridge.
//
// Call sites at the boundary deal in loosely-typed values. A BoundFunc
// wraps an ordinary Go function and, per call, runs each argument
// through the conversion rule registered for its parameter type before
// invoking the function.
//
// A rule reports one of three outcomes. Success yields the converted
// value. A soft non-match (matched == false) means the argument simply
// is not of the expected shape; Call turns it into a no_match
// diagnostic naming the expected type, so the caller sees an accurate
// "no matching signature" message instead of an internal cast failure.
// A hard error, such as a failed default resolution, propagates
// unchanged and the underlying function never runs.
//
// Types without a rule marshal by plain assignability.
package bind
