package utf32x

import (
	simpleutf "github.com/zhenghaven/SimpleUtf"
	"github.com/zhenghaven/SimpleUtf/codepoint"
	"github.com/zhenghaven/SimpleUtf/errors"
)

const MaxUnits = 1

// EncodedSize returns 1 for every valid code point.
func EncodedSize(cp rune) (int, error) {
	if !codepoint.IsValid(cp) {
		return 0, errors.InvalidCodePoint(errors.PhaseEncode, simpleutf.UTF32, cp, errors.NoOffset)
	}
	return 1, nil
}

// check validates cp and that T can hold a UTF-32 unit.
func check[T simpleutf.Unit](cp rune) error {
	if err := codepoint.EnsureUnitWidth[T](errors.PhaseEncode, simpleutf.UTF32); err != nil {
		return err
	}
	_, err := EncodedSize(cp)
	return err
}

// Put writes cp into dst[0]. T must be at least four bytes wide.
func Put[T simpleutf.Unit](dst []T, cp rune) (int, error) {
	if err := check[T](cp); err != nil {
		return 0, err
	}
	dst[0] = T(cp)
	return 1, nil
}

// Encode appends cp to sink.
func Encode[T simpleutf.Unit](sink simpleutf.Sink[T], cp rune) (int, error) {
	if err := check[T](cp); err != nil {
		return 0, err
	}
	sink.Append(T(cp))
	return 1, nil
}

// Append appends cp to dst.
func Append[T simpleutf.Unit](dst []T, cp rune) ([]T, error) {
	if err := check[T](cp); err != nil {
		return dst, err
	}
	return append(dst, T(cp)), nil
}

// Decode validates src[0] as a code point.
func Decode[T simpleutf.Unit](src []T) (rune, int, error) {
	if len(src) == 0 {
		return 0, 0, errors.IncompleteSequence(simpleutf.UTF32, 1, 0, 0)
	}
	u, err := codepoint.EnsureFits(src[0], 4)
	if err != nil {
		e := err.(*errors.Error)
		e.Form = simpleutf.UTF32.String()
		e.Offset = 0
		return 0, 0, e
	}
	cp := rune(u)
	if !codepoint.IsValid(cp) {
		return 0, 0, errors.InvalidCodePoint(errors.PhaseDecode, simpleutf.UTF32, cp, 0)
	}
	return cp, 1, nil
}

// Codec implements simpleutf.Codec for UTF-32.
type Codec[T simpleutf.Unit] struct{}

var _ simpleutf.Codec[uint32] = Codec[uint32]{}

func (Codec[T]) Form() simpleutf.Form { return simpleutf.UTF32 }

func (Codec[T]) MaxUnits() int { return MaxUnits }

func (Codec[T]) EncodedSize(cp rune) (int, error) { return EncodedSize(cp) }

func (Codec[T]) Encode(sink simpleutf.Sink[T], cp rune) (int, error) { return Encode(sink, cp) }

func (Codec[T]) Decode(src []T) (rune, int, error) { return Decode(src) }
