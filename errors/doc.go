// Package errors provides structured error types for the bytestruct library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the member path, the Go and layout type names, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseCompile, errors.KindLayout).
//		Path("header", "flags").
//		Type("bitfield<u8>").
//		Detail("bit widths sum to %d, backing integer has %d bits", 7, 8).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.ShortBuffer(errors.PhaseDecode, path, 7, 5)
//	err := errors.TypeMismatch(errors.PhaseEncode, path, "string", "u16")
//
// All errors implement the standard error interface and support errors.Is/As.
// Two *Error values match under errors.Is when their Phase and Kind are equal.
package errors
