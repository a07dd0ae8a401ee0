// Package errors provides structured error types for the callback-bridge library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes the offending Go type name, a detail message, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseConvert, errors.KindNoMatch).
//		GoType("int").
//		Detail("expected a context reference").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NoDefault("render context", cause)
//	err := errors.InvalidUTF8(errors.PhaseAccumulate, data)
//
// All errors implement the standard error interface and support errors.Is/As.
//
// Protocol violations between collaborators (for example, a single-chunk
// emitter calling back twice) are not represented here; those are defects,
// not errors, and fail fast with a panic at the violation site.
package errors
