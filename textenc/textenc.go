package textenc

import (
	"encoding/binary"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	simpleutf "github.com/zhenghaven/SimpleUtf"
	"github.com/zhenghaven/SimpleUtf/errors"
	"github.com/zhenghaven/SimpleUtf/transcode"
)

// Predefined encodings. None of them reads or writes a byte order mark.
var (
	UTF16LE encoding.Encoding = &Encoding{form: simpleutf.UTF16, order: binary.LittleEndian}
	UTF16BE encoding.Encoding = &Encoding{form: simpleutf.UTF16, order: binary.BigEndian}
	UTF32LE encoding.Encoding = &Encoding{form: simpleutf.UTF32, order: binary.LittleEndian}
	UTF32BE encoding.Encoding = &Encoding{form: simpleutf.UTF32, order: binary.BigEndian}
)

// Encoding is an x/text encoding whose decoder converts a serialized form to
// UTF-8 and whose encoder converts UTF-8 to the form. Malformed input is an
// error; nothing is replaced with U+FFFD. The zero Encoding is UTF-8.
type Encoding struct {
	form  simpleutf.Form
	order binary.ByteOrder
}

var _ encoding.Encoding = (*Encoding)(nil)

// NewEncoding returns the encoding for form serialized in order.
// order is ignored for UTF-8.
func NewEncoding(form simpleutf.Form, order binary.ByteOrder) (*Encoding, error) {
	if !form.Valid() {
		return nil, errors.Unsupported(errors.PhaseConvert, "unknown encoding form "+form.String())
	}
	if order == nil && form != simpleutf.UTF8 {
		return nil, errors.Unsupported(errors.PhaseConvert, "nil byte order for "+form.String())
	}
	return &Encoding{form: form, order: order}, nil
}

func (e *Encoding) formOrDefault() simpleutf.Form {
	if e.form == 0 {
		return simpleutf.UTF8
	}
	return e.form
}

func (e *Encoding) NewDecoder() *encoding.Decoder {
	return &encoding.Decoder{Transformer: newTransformer(e.formOrDefault(), simpleutf.UTF8, e.order)}
}

func (e *Encoding) NewEncoder() *encoding.Encoder {
	return &encoding.Encoder{Transformer: newTransformer(simpleutf.UTF8, e.formOrDefault(), e.order)}
}

func (e *Encoding) String() string {
	form := e.formOrDefault()
	if form == simpleutf.UTF8 {
		return form.String()
	}
	if e.order == binary.BigEndian {
		return form.String() + "be"
	}
	return form.String() + "le"
}

// NewTransformer returns a transformer converting serialized units of form
// from into serialized units of form to. order applies to every UTF-16 and
// UTF-32 side.
func NewTransformer(from, to simpleutf.Form, order binary.ByteOrder) (transform.Transformer, error) {
	if !from.Valid() || !to.Valid() {
		return nil, errors.Unsupported(errors.PhaseConvert, "unknown encoding form")
	}
	if order == nil && (from != simpleutf.UTF8 || to != simpleutf.UTF8) {
		return nil, errors.Unsupported(errors.PhaseConvert, "nil byte order")
	}
	return newTransformer(from, to, order), nil
}

type transformer struct {
	src   simpleutf.Codec[uint32]
	dst   simpleutf.Codec[uint32]
	order binary.ByteOrder
}

func newTransformer(from, to simpleutf.Form, order binary.ByteOrder) *transformer {
	// Forms are validated by the callers.
	src, _ := transcode.CodecFor[uint32](from)
	dst, _ := transcode.CodecFor[uint32](to)
	return &transformer{src: src, dst: dst, order: order}
}

func (t *transformer) Reset() {}

func (t *transformer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	out := simpleutf.NewSliceSink[uint32](simpleutf.UTF8.MaxUnits())
	unitSize := t.dst.Form().UnitSize()

	for nSrc < len(src) {
		cp, used, err := t.decode(src[nSrc:], atEOF)
		if err != nil {
			if e, ok := err.(*errors.Error); ok && e.Offset >= 0 {
				e.Offset = nSrc + e.Offset*t.src.Form().UnitSize()
			}
			return nDst, nSrc, err
		}

		out.Reset()
		n, err := t.dst.Encode(out, cp)
		if err != nil {
			return nDst, nSrc, err
		}
		if nDst+n*unitSize > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += t.write(dst[nDst:], out.Units)
		nSrc += used
	}
	return nDst, nSrc, nil
}

// decode reads one code point from serialized bytes and returns the number
// of bytes consumed.
func (t *transformer) decode(src []byte, atEOF bool) (rune, int, error) {
	form := t.src.Form()
	size := form.UnitSize()

	var units [4]uint32
	k := min(len(src)/size, form.MaxUnits())
	for i := 0; i < k; i++ {
		units[i] = t.read(src[i*size:])
	}

	cp, n, err := t.src.Decode(units[:k])
	if err != nil {
		if !atEOF && errors.KindOf(err) == errors.KindIncompleteSequence {
			return 0, 0, transform.ErrShortSrc
		}
		return 0, 0, err
	}
	return cp, n * size, nil
}

func (t *transformer) read(b []byte) uint32 {
	switch t.src.Form() {
	case simpleutf.UTF16:
		return uint32(t.order.Uint16(b))
	case simpleutf.UTF32:
		return t.order.Uint32(b)
	}
	return uint32(b[0])
}

func (t *transformer) write(b []byte, units []uint32) int {
	n := 0
	for _, u := range units {
		switch t.dst.Form() {
		case simpleutf.UTF16:
			t.order.PutUint16(b[n:], uint16(u))
			n += 2
		case simpleutf.UTF32:
			t.order.PutUint32(b[n:], u)
			n += 4
		default:
			b[n] = byte(u)
			n++
		}
	}
	return n
}
