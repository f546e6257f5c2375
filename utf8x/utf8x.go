package utf8x

import (
	simpleutf "github.com/zhenghaven/SimpleUtf"
	"github.com/zhenghaven/SimpleUtf/codepoint"
	"github.com/zhenghaven/SimpleUtf/errors"
)

const (
	MaxUnits = 4

	contMask = 0x3F // payload of 10xxxxxx
	contTag  = 0x80
)

// Lead byte tags and payload masks, indexed by continuation count.
var (
	leadTag  = [4]uint32{0x00, 0xC0, 0xE0, 0xF0}
	leadMask = [4]uint32{0x7F, 0x1F, 0x0F, 0x07}
	// smallest code point that needs n continuation bytes
	minRune = [4]rune{0, 0x80, 0x800, 0x10000}
)

// ContinuationCount returns how many continuation bytes follow the lead
// byte when cp is encoded.
func ContinuationCount(cp rune) (int, error) {
	if !codepoint.IsValid(cp) {
		return 0, errors.InvalidCodePoint(errors.PhaseEncode, simpleutf.UTF8, cp, errors.NoOffset)
	}
	switch w := codepoint.BitWidth(cp); {
	case w <= 7:
		return 0, nil
	case w <= 11:
		return 1, nil
	case w <= 16:
		return 2, nil
	default:
		return 3, nil
	}
}

// EncodedSize returns the number of bytes Encode produces for cp.
func EncodedSize(cp rune) (int, error) {
	n, err := ContinuationCount(cp)
	if err != nil {
		return 0, err
	}
	return n + 1, nil
}

// Put writes the encoding of cp into dst and returns the number of units
// written. dst must have room for EncodedSize(cp) units.
func Put[T simpleutf.Unit](dst []T, cp rune) (int, error) {
	n, err := ContinuationCount(cp)
	if err != nil {
		return 0, err
	}
	_ = dst[n] // Eliminate bounds check.
	v := uint32(cp)
	for i := n; i > 0; i-- {
		dst[i] = T(contTag | v&contMask)
		v >>= 6
	}
	dst[0] = T(leadTag[n] | v)
	return n + 1, nil
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

// leadContinuations classifies a lead byte by its high bits.
func leadContinuations(b uint32) (int, bool) {
	switch {
	case b&0x80 == 0x00:
		return 0, true
	case b&0xE0 == 0xC0:
		return 1, true
	case b&0xF0 == 0xE0:
		return 2, true
	case b&0xF8 == 0xF0:
		return 3, true
	}
	return 0, false
}

// Decode decodes the first code point in src and returns it with the number
// of units consumed.
func Decode[T simpleutf.Unit](src []T) (rune, int, error) {
	if len(src) == 0 {
		return 0, 0, errors.IncompleteSequence(simpleutf.UTF8, 1, 0, 0)
	}
	lead, err := unitAt(src, 0)
	if err != nil {
		return 0, 0, err
	}
	n, ok := leadContinuations(lead)
	if !ok {
		return 0, 0, errors.InvalidLeadByte(simpleutf.UTF8, lead, 0)
	}
	if len(src) < n+1 {
		return 0, 0, errors.IncompleteSequence(simpleutf.UTF8, n+1, len(src), 0)
	}

	cp := rune(lead & leadMask[n])
	for i := 1; i <= n; i++ {
		b, err := unitAt(src, i)
		if err != nil {
			return 0, 0, err
		}
		if b&0xC0 != contTag {
			return 0, 0, errors.InvalidContinuationByte(simpleutf.UTF8, b, i)
		}
		cp = cp<<6 | rune(b&contMask)
	}

	if cp < minRune[n] {
		return 0, 0, errors.OverlongEncoding(simpleutf.UTF8, cp, n+1, 0)
	}
	if !codepoint.IsValid(cp) {
		return 0, 0, errors.InvalidCodePoint(errors.PhaseDecode, simpleutf.UTF8, cp, 0)
	}
	return cp, n + 1, nil
}

func unitAt[T simpleutf.Unit](src []T, i int) (uint32, error) {
	b, err := codepoint.EnsureFits(src[i], 1)
	if err != nil {
		e := err.(*errors.Error)
		e.Form = simpleutf.UTF8.String()
		e.Offset = i
		return 0, e
	}
	return b, nil
}

// Codec implements simpleutf.Codec for UTF-8.
type Codec[T simpleutf.Unit] struct{}

var _ simpleutf.Codec[byte] = Codec[byte]{}

func (Codec[T]) Form() simpleutf.Form { return simpleutf.UTF8 }

func (Codec[T]) MaxUnits() int { return MaxUnits }

func (Codec[T]) EncodedSize(cp rune) (int, error) { return EncodedSize(cp) }

func (Codec[T]) Encode(sink simpleutf.Sink[T], cp rune) (int, error) { return Encode(sink, cp) }

func (Codec[T]) Decode(src []T) (rune, int, error) { return Decode(src) }
