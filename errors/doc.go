// Package errors provides structured error types for simpleutf.
//
// Errors are categorized by Phase (where the error occurred) and Kind (what
// went wrong). The Error type records the encoding form, the offset of the
// offending unit and the offending value.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindInvalidLeadByte).
//		Form(simpleutf.UTF8).
//		Offset(3).
//		Value(0x80).
//		Build()
//
// Or use convenience constructors for the codec kinds:
//
//	err := errors.LoneSurrogate(simpleutf.UTF16, 0xDC00, 0)
//
// Match kinds with the sentinels, regardless of phase:
//
//	if errors.Is(err, errors.ErrIncompleteSequence) { ... }
package errors
