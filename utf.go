package simpleutf

// Unit is any integer type a caller may use to hold code units.
// Source units of any width are range-checked against the nominal width of
// the form before use. Destination units must be at least that wide.
type Unit interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Form identifies one of the three Unicode encoding forms.
type Form uint8

const (
	// UTF8 encodes a code point in one to four 8-bit units.
	UTF8 Form = iota + 1
	// UTF16 encodes a code point in one 16-bit unit, or in a surrogate pair
	// above U+FFFF.
	UTF16
	// UTF32 encodes a code point in exactly one 32-bit unit.
	UTF32
)

// UnitSize returns the nominal width of one code unit in bytes.
func (f Form) UnitSize() int {
	switch f {
	case UTF8:
		return 1
	case UTF16:
		return 2
	case UTF32:
		return 4
	}
	return 0
}

// MaxUnits returns the maximum number of code units a single code point
// occupies in this form.
func (f Form) MaxUnits() int {
	switch f {
	case UTF8:
		return 4
	case UTF16:
		return 2
	case UTF32:
		return 1
	}
	return 0
}

// Valid reports whether f names a known form.
func (f Form) Valid() bool {
	return f >= UTF8 && f <= UTF32
}

// String returns the IANA-style name of the form, e.g. "utf-16", or
// "unknown" for an invalid Form.
func (f Form) String() string {
	switch f {
	case UTF8:
		return "utf-8"
	case UTF16:
		return "utf-16"
	case UTF32:
		return "utf-32"
	}
	return "unknown"
}

// Codec encodes and decodes single code points in one form using unit type T.
type Codec[T Unit] interface {
	Form() Form
	MaxUnits() int
	EncodedSize(cp rune) (int, error)
	Encode(sink Sink[T], cp rune) (int, error)
	Decode(src []T) (rune, int, error)
}
