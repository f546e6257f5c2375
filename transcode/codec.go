package transcode

import (
	simpleutf "github.com/zhenghaven/SimpleUtf"
	"github.com/zhenghaven/SimpleUtf/errors"
	"github.com/zhenghaven/SimpleUtf/utf16x"
	"github.com/zhenghaven/SimpleUtf/utf32x"
	"github.com/zhenghaven/SimpleUtf/utf8x"
)

// CodecFor returns the codec for form f over unit type T.
func CodecFor[T simpleutf.Unit](f simpleutf.Form) (simpleutf.Codec[T], error) {
	switch f {
	case simpleutf.UTF8:
		return utf8x.Codec[T]{}, nil
	case simpleutf.UTF16:
		return utf16x.Codec[T]{}, nil
	case simpleutf.UTF32:
		return utf32x.Codec[T]{}, nil
	}
	return nil, errors.Unsupported(errors.PhaseConvert, "unknown encoding form "+f.String())
}
