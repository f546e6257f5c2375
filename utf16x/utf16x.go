package utf16x

import (
	simpleutf "github.com/zhenghaven/SimpleUtf"
	"github.com/zhenghaven/SimpleUtf/codepoint"
	"github.com/zhenghaven/SimpleUtf/errors"
)

const (
	MaxUnits = 2

	// the value of a pair is its 20 payload bits plus 0x10000.
	surrSelf = 0x10000
)

// EncodedSize returns the number of units Encode produces for cp: 1 inside
// the Basic Multilingual Plane, 2 for a surrogate pair.
func EncodedSize(cp rune) (int, error) {
	if !codepoint.IsValid(cp) {
		return 0, errors.InvalidCodePoint(errors.PhaseEncode, simpleutf.UTF16, cp, errors.NoOffset)
	}
	if cp < surrSelf {
		return 1, nil
	}
	return 2, nil
}

// EncodePair splits a supplementary code point into its surrogates.
// cp must be a valid code point of at least 0x10000.
func EncodePair(cp rune) (hi, lo uint16) {
	v := uint32(cp) - surrSelf
	return uint16(codepoint.HighSurrogateMin + v>>10), uint16(codepoint.LowSurrogateMin + v&0x3FF)
}

// DecodePair joins a high and a low surrogate.
func DecodePair(hi, lo uint32) rune {
	return rune((hi-codepoint.HighSurrogateMin)<<10|(lo-codepoint.LowSurrogateMin)) + surrSelf
}

// Put writes the encoding of cp into dst and returns the number of units
// written. dst must have room for EncodedSize(cp) units. T must be at least
// two bytes wide.
func Put[T simpleutf.Unit](dst []T, cp rune) (int, error) {
	if err := codepoint.EnsureUnitWidth[T](errors.PhaseEncode, simpleutf.UTF16); err != nil {
		return 0, err
	}
	n, err := EncodedSize(cp)
	if err != nil {
		return 0, err
	}
	if n == 1 {
		dst[0] = T(cp)
		return 1, nil
	}
	_ = dst[1] // Eliminate bounds check.
	hi, lo := EncodePair(cp)
	dst[0] = T(hi)
	dst[1] = T(lo)
	return 2, nil
}

// Encode appends the encoding of cp to sink.
// Nothing is appended when cp is invalid.
func Encode[T simpleutf.Unit](sink simpleutf.Sink[T], cp rune) (int, error) {
	var buf [MaxUnits]T
	n, err := Put(buf[:], cp)
	if err != nil {
		return 0, err
	}
	sink.Append(buf[:n]...)
	return n, nil
}

// Append appends the encoding of cp to dst.
func Append[T simpleutf.Unit](dst []T, cp rune) ([]T, error) {
	var buf [MaxUnits]T
	n, err := Put(buf[:], cp)
	if err != nil {
		return dst, err
	}
	return append(dst, buf[:n]...), nil
}

// Decode decodes the first code point in src and returns it with the number
// of units consumed.
func Decode[T simpleutf.Unit](src []T) (rune, int, error) {
	if len(src) == 0 {
		return 0, 0, errors.IncompleteSequence(simpleutf.UTF16, 1, 0, 0)
	}
	u1, err := unitAt(src, 0)
	if err != nil {
		return 0, 0, err
	}

	switch {
	case codepoint.IsLowSurrogate(u1):
		return 0, 0, errors.LoneSurrogate(simpleutf.UTF16, u1, 0)
	case !codepoint.IsHighSurrogate(u1):
		return rune(u1), 1, nil
	}

	if len(src) < 2 {
		return 0, 0, errors.IncompleteSequence(simpleutf.UTF16, 2, len(src), 0)
	}
	u2, err := unitAt(src, 1)
	if err != nil {
		return 0, 0, err
	}
	if !codepoint.IsLowSurrogate(u2) {
		return 0, 0, errors.LoneSurrogate(simpleutf.UTF16, u2, 1)
	}
	return DecodePair(u1, u2), 2, nil
}

func unitAt[T simpleutf.Unit](src []T, i int) (uint32, error) {
	u, err := codepoint.EnsureFits(src[i], 2)
	if err != nil {
		e := err.(*errors.Error)
		e.Form = simpleutf.UTF16.String()
		e.Offset = i
		return 0, e
	}
	return u, nil
}

// Codec implements simpleutf.Codec for UTF-16.
type Codec[T simpleutf.Unit] struct{}

var _ simpleutf.Codec[uint16] = Codec[uint16]{}

func (Codec[T]) Form() simpleutf.Form { return simpleutf.UTF16 }

func (Codec[T]) MaxUnits() int { return MaxUnits }

func (Codec[T]) EncodedSize(cp rune) (int, error) { return EncodedSize(cp) }

func (Codec[T]) Encode(sink simpleutf.Sink[T], cp rune) (int, error) { return Encode(sink, cp) }

func (Codec[T]) Decode(src []T) (rune, int, error) { return Decode(src) }
