package canon

import (
	"context"
	stderrors "errors"
	"math"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	simpleutf "github.com/zhenghaven/SimpleUtf"
	"github.com/zhenghaven/SimpleUtf/errors"
	"github.com/zhenghaven/SimpleUtf/transcode"
)

var (
	// ErrNilMemory is returned when memory operations are attempted without memory
	ErrNilMemory = stderrors.New("nil memory")

	// ErrNilRealloc is returned when allocation is needed but realloc is nil
	ErrNilRealloc = stderrors.New("nil realloc function")
)

// StringEncoding represents the string encoding for canonical ABI.
// Values match the canonopt string-encoding immediates.
type StringEncoding byte

const (
	StringEncodingUTF8  StringEncoding = 0x00
	StringEncodingUTF16 StringEncoding = 0x01
)

// Form returns the encoding form used for strings in linear memory.
func (e StringEncoding) Form() simpleutf.Form {
	switch e {
	case StringEncodingUTF8:
		return simpleutf.UTF8
	case StringEncodingUTF16:
		return simpleutf.UTF16
	}
	return 0
}

// Align returns the alignment of a string buffer in this encoding.
func (e StringEncoding) Align() uint32 {
	return uint32(e.Form().UnitSize())
}

func (e StringEncoding) String() string {
	return e.Form().String()
}

// Options holds the canonical options that govern string access
type Options struct {
	Memory   api.Memory
	Realloc  api.Function
	Encoding StringEncoding
}

func (o Options) check(phase errors.Phase, needRealloc bool) error {
	if !o.Encoding.Form().Valid() {
		return errors.Unsupported(phase, "string encoding "+o.Encoding.String())
	}
	if o.Memory == nil {
		return ErrNilMemory
	}
	if needRealloc && o.Realloc == nil {
		return ErrNilRealloc
	}
	return nil
}

// LiftString reads a string of length code units at ptr and returns it as
// a Go string. The memory contents must be well-formed in the encoding.
func LiftString(ctx context.Context, opts Options, ptr, length uint32) (string, error) {
	if err := opts.check(errors.PhaseLift, false); err != nil {
		return "", err
	}
	units, err := readUnits(opts, ptr, length)
	if err != nil {
		return "", err
	}
	conv, err := transcode.New[uint32, byte](opts.Encoding.Form(), simpleutf.UTF8)
	if err != nil {
		return "", err
	}
	out, err := conv.Append(nil, units)
	if err != nil {
		logFailure("lift", opts, ptr, err)
		return "", err
	}
	return string(out), nil
}

// LowerString writes s into memory obtained from realloc and returns its
// address and length in code units. The output size is computed before
// allocating, so exactly the needed bytes are requested.
func LowerString(ctx context.Context, opts Options, s string) (ptr, length uint32, err error) {
	if err := opts.check(errors.PhaseLower, true); err != nil {
		return 0, 0, err
	}
	conv, err := transcode.New[byte, uint32](simpleutf.UTF8, opts.Encoding.Form())
	if err != nil {
		return 0, 0, err
	}
	return lower(ctx, opts, conv, []byte(s))
}

// TranscodeString copies a string from one memory and encoding to another,
// converting directly between the two encodings.
func TranscodeString(ctx context.Context, from, to Options, ptr, length uint32) (uint32, uint32, error) {
	if err := from.check(errors.PhaseLift, false); err != nil {
		return 0, 0, err
	}
	if err := to.check(errors.PhaseLower, true); err != nil {
		return 0, 0, err
	}
	units, err := readUnits(from, ptr, length)
	if err != nil {
		return 0, 0, err
	}
	conv, err := transcode.New[uint32, uint32](from.Encoding.Form(), to.Encoding.Form())
	if err != nil {
		return 0, 0, err
	}
	return lower(ctx, to, conv, units)
}

func lower[S simpleutf.Unit](ctx context.Context, opts Options, conv *transcode.Converter[S, uint32], src []S) (uint32, uint32, error) {
	n, err := conv.AllSize(src)
	if err != nil {
		logFailure("lower", opts, 0, err)
		return 0, 0, err
	}
	unitSize := uint64(opts.Encoding.Form().UnitSize())
	if uint64(n)*unitSize > math.MaxUint32 {
		return 0, 0, errors.AllocationFailed(errors.PhaseLower, math.MaxUint32, opts.Encoding.Align(), nil)
	}
	byteLen := uint32(uint64(n) * unitSize)

	sink := simpleutf.NewSliceSink[uint32](n)
	if err := conv.All(src, sink); err != nil {
		return 0, 0, err
	}

	results, err := opts.Realloc.Call(ctx, 0, 0, uint64(opts.Encoding.Align()), uint64(byteLen))
	if err != nil || len(results) == 0 {
		return 0, 0, errors.AllocationFailed(errors.PhaseLower, byteLen, opts.Encoding.Align(), err)
	}
	ptr := uint32(results[0])

	if err := writeUnits(opts, ptr, sink.Units); err != nil {
		return 0, 0, err
	}
	return ptr, uint32(n), nil
}

func readUnits(opts Options, ptr, length uint32) ([]uint32, error) {
	unitSize := uint64(opts.Encoding.Form().UnitSize())
	byteLen := uint64(length) * unitSize
	if byteLen > math.MaxUint32 {
		return nil, errors.OutOfBounds(errors.PhaseLift, ptr, length)
	}
	data, ok := opts.Memory.Read(ptr, uint32(byteLen))
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseLift, ptr, uint32(byteLen))
	}

	units := make([]uint32, length)
	switch opts.Encoding {
	case StringEncodingUTF16:
		for i := range units {
			units[i] = uint32(data[2*i]) | uint32(data[2*i+1])<<8
		}
	default:
		for i := range units {
			units[i] = uint32(data[i])
		}
	}
	return units, nil
}

func writeUnits(opts Options, ptr uint32, units []uint32) error {
	var data []byte
	switch opts.Encoding {
	case StringEncodingUTF16:
		data = make([]byte, 2*len(units))
		for i, u := range units {
			data[2*i] = byte(u)
			data[2*i+1] = byte(u >> 8)
		}
	default:
		data = make([]byte, len(units))
		for i, u := range units {
			data[i] = byte(u)
		}
	}
	if !opts.Memory.Write(ptr, data) {
		return errors.OutOfBounds(errors.PhaseLower, ptr, uint32(len(data)))
	}
	return nil
}

func logFailure(op string, opts Options, ptr uint32, err error) {
	if ce := Logger().Check(zap.DebugLevel, "string "+op+" failed"); ce != nil {
		ce.Write(
			zap.Stringer("encoding", opts.Encoding),
			zap.Uint32("ptr", ptr),
			zap.Error(err),
		)
	}
}
