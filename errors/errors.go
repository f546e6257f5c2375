package errors

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseEncode   Phase = "encode"   // code point to units
	PhaseDecode   Phase = "decode"   // units to code point
	PhaseValidate Phase = "validate" // unit width checks
	PhaseConvert  Phase = "convert"  // converter setup
	PhaseLift     Phase = "lift"     // linear memory to Go
	PhaseLower    Phase = "lower"    // Go to linear memory
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidCodePoint          Kind = "invalid_code_point"
	KindInvalidLeadByte           Kind = "invalid_lead_byte"
	KindIncompleteSequence        Kind = "incomplete_sequence"
	KindInvalidContinuationByte   Kind = "invalid_continuation_byte"
	KindOverlongEncoding          Kind = "overlong_encoding"
	KindLoneOrMisorderedSurrogate Kind = "lone_or_misordered_surrogate"
	KindValueOutOfRange           Kind = "value_out_of_range"
	KindOutOfBounds               Kind = "out_of_bounds"
	KindAllocation                Kind = "allocation"
	KindUnsupported               Kind = "unsupported"
)

// NoOffset marks an error that is not tied to a position in the input.
const NoOffset = -1

// Sentinels for errors.Is. They match any phase.
var (
	ErrInvalidCodePoint          = &Error{Kind: KindInvalidCodePoint, Offset: NoOffset}
	ErrInvalidLeadByte           = &Error{Kind: KindInvalidLeadByte, Offset: NoOffset}
	ErrIncompleteSequence        = &Error{Kind: KindIncompleteSequence, Offset: NoOffset}
	ErrInvalidContinuationByte   = &Error{Kind: KindInvalidContinuationByte, Offset: NoOffset}
	ErrOverlongEncoding          = &Error{Kind: KindOverlongEncoding, Offset: NoOffset}
	ErrLoneOrMisorderedSurrogate = &Error{Kind: KindLoneOrMisorderedSurrogate, Offset: NoOffset}
	ErrValueOutOfRange           = &Error{Kind: KindValueOutOfRange, Offset: NoOffset}
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Form   string
	Detail string
	// Offset is the index of the offending unit, relative to the start of
	// the step that failed, or absolute when returned from a full pass.
	Offset int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Phase != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Phase))
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))

	if e.Form != "" {
		b.WriteString(" in ")
		b.WriteString(e.Form)
	}
	if e.Offset >= 0 {
		b.WriteString(" at offset ")
		b.WriteString(strconv.Itoa(e.Offset))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// Kinds must be equal; phases are compared only when the target sets one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != "" && t.Phase != e.Phase {
		return false
	}
	return e.Kind == t.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase:  phase,
			Kind:   kind,
			Offset: NoOffset,
		},
	}
}

// Form sets the encoding form name
func (b *Builder) Form(f fmt.Stringer) *Builder {
	b.err.Form = f.String()
	return b
}

// Offset sets the position of the offending unit
func (b *Builder) Offset(off int) *Builder {
	b.err.Offset = off
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for the codec error kinds

// InvalidCodePoint creates an error for a value outside the Unicode scalar range
func InvalidCodePoint(phase Phase, form fmt.Stringer, cp rune, off int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidCodePoint,
		Form:   form.String(),
		Offset: off,
		Value:  cp,
		Detail: fmt.Sprintf("U+%04X is not a Unicode scalar value", uint32(cp)),
	}
}

// InvalidLeadByte creates an error for an unrecognized UTF-8 lead byte
func InvalidLeadByte(form fmt.Stringer, b uint32, off int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidLeadByte,
		Form:   form.String(),
		Offset: off,
		Value:  b,
		Detail: fmt.Sprintf("0x%02X cannot start a sequence", b),
	}
}

// IncompleteSequence creates an error for input that ends inside a sequence
func IncompleteSequence(form fmt.Stringer, need, have int, off int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindIncompleteSequence,
		Form:   form.String(),
		Offset: off,
		Value:  have,
		Detail: fmt.Sprintf("sequence needs %d units, %d available", need, have),
	}
}

// InvalidContinuationByte creates an error for a UTF-8 byte that is not 10xxxxxx
func InvalidContinuationByte(form fmt.Stringer, b uint32, off int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidContinuationByte,
		Form:   form.String(),
		Offset: off,
		Value:  b,
		Detail: fmt.Sprintf("0x%02X is not a continuation byte", b),
	}
}

// OverlongEncoding creates an error for a non-minimal UTF-8 sequence
func OverlongEncoding(form fmt.Stringer, cp rune, size int, off int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindOverlongEncoding,
		Form:   form.String(),
		Offset: off,
		Value:  cp,
		Detail: fmt.Sprintf("U+%04X encoded in %d bytes", uint32(cp), size),
	}
}

// LoneSurrogate creates an error for an unpaired or misordered UTF-16 surrogate
func LoneSurrogate(form fmt.Stringer, unit uint32, off int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindLoneOrMisorderedSurrogate,
		Form:   form.String(),
		Offset: off,
		Value:  unit,
		Detail: fmt.Sprintf("unexpected surrogate 0x%04X", unit),
	}
}

// ValueOutOfRange creates an error for a unit whose bits exceed its width
func ValueOutOfRange(value any, size int) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindValueOutOfRange,
		Offset: NoOffset,
		Value:  value,
		Detail: fmt.Sprintf("value %v does not fit in %d byte(s)", value, size),
	}
}

// OutOfBounds creates an error for a linear memory access past its end
func OutOfBounds(phase Phase, ptr, length uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Offset: NoOffset,
		Value:  ptr,
		Detail: fmt.Sprintf("ptr=%d len=%d outside memory", ptr, length),
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, size, align uint32, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Offset: NoOffset,
		Detail: fmt.Sprintf("failed to allocate %d bytes (align %d)", size, align),
		Cause:  cause,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Offset: NoOffset,
		Detail: what,
	}
}
