// Package errors provides structured error types for the ucsbuf library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: the offending value, its position in the
// input, a field path, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseParse, errors.KindSyntax).
//		Index(17).
//		Detail("expected '=' after key").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidScalar(errors.PhaseEncode, "lone low surrogate", 0xDC00, 2)
//	err := errors.Syntax(8, "unexpected control character")
//
// Encode errors carry the rejected code unit widened to uint32; extract it with
// Scalar. Parse errors carry the byte offset of the problem; extract it with
// Index. All errors implement the standard error interface and support
// errors.Is/As.
package errors
