package transcode

import (
	"go.uber.org/zap"

	simpleutf "github.com/zhenghaven/SimpleUtf"
	"github.com/zhenghaven/SimpleUtf/codepoint"
	"github.com/zhenghaven/SimpleUtf/errors"
)

// Option configures a Converter.
type Option func(*config)

type config struct {
	logger *zap.Logger
}

// WithLogger sets the logger used to report failed steps.
// Defaults to the package Logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// Converter transcodes units of one form held in S into units of another
// form held in D. It is immutable and safe for concurrent use.
type Converter[S, D simpleutf.Unit] struct {
	src simpleutf.Codec[S]
	dst simpleutf.Codec[D]
	log *zap.Logger
}

// New creates a Converter from form from to form to. When from == to the
// converter is a validation pass: units are decoded and re-encoded, never
// copied. D must be wide enough to hold a unit of form to.
func New[S, D simpleutf.Unit](from, to simpleutf.Form, opts ...Option) (*Converter[S, D], error) {
	src, err := CodecFor[S](from)
	if err != nil {
		return nil, err
	}
	dst, err := CodecFor[D](to)
	if err != nil {
		return nil, err
	}
	if err := codepoint.EnsureUnitWidth[D](errors.PhaseConvert, to); err != nil {
		return nil, err
	}
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = Logger()
	}
	return &Converter[S, D]{src: src, dst: dst, log: cfg.logger}, nil
}

// From returns the source form.
func (c *Converter[S, D]) From() simpleutf.Form { return c.src.Form() }

// To returns the destination form.
func (c *Converter[S, D]) To() simpleutf.Form { return c.dst.Form() }

// Once converts the first code point of src, appends its units to sink and
// returns the number of source units consumed.
func (c *Converter[S, D]) Once(src []S, sink simpleutf.Sink[D]) (int, error) {
	cp, n, err := c.src.Decode(src)
	if err != nil {
		return 0, err
	}
	if _, err := c.dst.Encode(sink, cp); err != nil {
		return 0, err
	}
	return n, nil
}

// OnceSize decodes the first code point of src and returns the number of
// destination units it would produce, along with the source units consumed.
// Nothing is written.
func (c *Converter[S, D]) OnceSize(src []S) (size, n int, err error) {
	cp, n, err := c.src.Decode(src)
	if err != nil {
		return 0, 0, err
	}
	size, err = c.dst.EncodedSize(cp)
	if err != nil {
		return 0, 0, err
	}
	return size, n, nil
}

// All converts every code point in src. It stops at the first error; units
// appended by earlier steps remain in sink. The returned error carries the
// absolute offset of the offending source unit.
func (c *Converter[S, D]) All(src []S, sink simpleutf.Sink[D]) error {
	for pos := 0; pos < len(src); {
		n, err := c.Once(src[pos:], sink)
		if err != nil {
			return c.fail(err, pos)
		}
		pos += n
	}
	return nil
}

// AllSize returns the number of destination units All would produce.
func (c *Converter[S, D]) AllSize(src []S) (int, error) {
	total := 0
	for pos := 0; pos < len(src); {
		size, n, err := c.OnceSize(src[pos:])
		if err != nil {
			return 0, c.fail(err, pos)
		}
		total += size
		pos += n
	}
	return total, nil
}

// Append converts src and appends the result to dst, growing it once.
// On error dst is returned unchanged.
func (c *Converter[S, D]) Append(dst []D, src []S) ([]D, error) {
	size, err := c.AllSize(src)
	if err != nil {
		return dst, err
	}
	sink := &simpleutf.SliceSink[D]{Units: dst}
	if free := cap(dst) - len(dst); free < size {
		sink.Units = make([]D, len(dst), len(dst)+size)
		copy(sink.Units, dst)
	}
	if err := c.All(src, sink); err != nil {
		return dst, err
	}
	return sink.Units, nil
}

// fail rebases a step error onto the absolute source position.
func (c *Converter[S, D]) fail(err error, pos int) error {
	if e, ok := err.(*errors.Error); ok {
		if e.Offset >= 0 {
			e.Offset += pos
		} else {
			e.Offset = pos
		}
	}
	if ce := c.log.Check(zap.DebugLevel, "conversion step failed"); ce != nil {
		ce.Write(
			zap.Stringer("from", c.src.Form()),
			zap.Stringer("to", c.dst.Form()),
			zap.Int("offset", pos),
			zap.String("kind", string(errors.KindOf(err))),
			zap.Error(err),
		)
	}
	return err
}
