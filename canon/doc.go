// Package canon lifts and lowers Component Model strings held in WebAssembly
// linear memory.
//
// Strings are described by a pointer and a length in code units of the
// string encoding declared by the canonical options: bytes for UTF-8,
// little-endian 16-bit units for UTF-16. Lifting validates or transcodes the
// units into a Go string. Lowering sizes the output first, calls the guest's
// realloc once with the exact byte count, then writes the units.
//
//	opts := canon.Options{
//	    Memory:   mod.Memory(),
//	    Realloc:  mod.ExportedFunction("cabi_realloc"),
//	    Encoding: canon.StringEncodingUTF16,
//	}
//	ptr, n, err := canon.LowerString(ctx, opts, "héllo")
//	s, err := canon.LiftString(ctx, opts, ptr, n)
//
// TranscodeString moves a string between two components that use different
// encodings without materializing it as a Go string.
//
// The latin1+utf16 encoding is not supported.
package canon
