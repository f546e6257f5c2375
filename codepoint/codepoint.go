package codepoint

import (
	"fmt"
	"math/bits"
	"unsafe"

	simpleutf "github.com/zhenghaven/SimpleUtf"
	"github.com/zhenghaven/SimpleUtf/errors"
)

const (
	MaxRune      = '\U0010FFFF'
	SurrogateMin = 0xD800
	SurrogateMax = 0xDFFF

	// 0xd800-0xdc00 encodes the high 10 bits of a pair.
	// 0xdc00-0xe000 encodes the low 10 bits of a pair.
	HighSurrogateMin = 0xD800
	HighSurrogateMax = 0xDBFF
	LowSurrogateMin  = 0xDC00
	LowSurrogateMax  = 0xDFFF
)

// IsValid reports whether cp is a Unicode scalar value.
// Negative runes are treated as their unsigned bit pattern and rejected.
func IsValid(cp rune) bool {
	u := uint32(cp)
	return u <= MaxRune && (u < SurrogateMin || u > SurrogateMax)
}

// IsSurrogate reports whether v lies in [0xD800, 0xDFFF].
func IsSurrogate(v uint32) bool {
	return v >= SurrogateMin && v <= SurrogateMax
}

func IsHighSurrogate(v uint32) bool {
	return v >= HighSurrogateMin && v <= HighSurrogateMax
}

func IsLowSurrogate(v uint32) bool {
	return v >= LowSurrogateMin && v <= LowSurrogateMax
}

// BitWidth returns the number of significant bits in cp; 0 for 0.
func BitWidth(cp rune) int {
	return bits.Len32(uint32(cp))
}

// UnitWidth returns the size of T in bytes.
func UnitWidth[T simpleutf.Unit]() int {
	var v T
	return int(unsafe.Sizeof(v))
}

// EnsureUnitWidth checks that T can hold every unit of form f.
func EnsureUnitWidth[T simpleutf.Unit](phase errors.Phase, f simpleutf.Form) error {
	if w := UnitWidth[T](); w < f.UnitSize() {
		return errors.Unsupported(phase, fmt.Sprintf("%d-byte unit type cannot hold %s units", w, f))
	}
	return nil
}

// EnsureFits checks that v, used as a code unit, fits in size bytes and
// returns its unsigned value.
//
// A type no wider than size is extended to size bytes: signed types are
// sign-extended, so int8(-1) yields 0xFF for size 1 and 0xFFFF for size 2.
// A wider type must be non-negative with no bits set at or above bit
// 8*size; otherwise the value is rejected rather than masked. size must be
// 1, 2 or 4.
func EnsureFits[T simpleutf.Unit](v T, size int) (uint32, error) {
	if UnitWidth[T]() <= size {
		return uint32(uint64(int64(v)) & (1<<(8*size) - 1)), nil
	}
	if v < 0 || uint64(v)>>(8*size) != 0 {
		return 0, errors.ValueOutOfRange(v, size)
	}
	return uint32(v), nil
}
