// Package simpleutf converts text between the UTF-8, UTF-16 and UTF-32
// encoding forms.
//
// Every conversion goes through a single validated code point: units of the
// source form are decoded into one code point, which is then encoded into
// units of the destination form. No state is carried between steps.
//
// # Packages
//
//	simpleutf/       Unit constraint, Form, Sink and Codec contracts
//	├── codepoint/   Code point validation and unit width checks
//	├── utf8x/       UTF-8 codec
//	├── utf16x/      UTF-16 codec (surrogate pairs)
//	├── utf32x/      UTF-32 codec
//	├── transcode/   Streaming driver for all form pairs, size-only passes
//	├── textenc/     golang.org/x/text encoding and transform adapters
//	├── canon/       Component Model string lift/lower over wazero memory
//	└── errors/      Structured error types
//
// # Quick Start
//
//	units, err := transcode.UTF8ToUTF16([]byte("测试程序"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For repeated conversions, build a Converter once and presize buffers with
// a size-only pass:
//
//	conv, _ := transcode.New[byte, uint16](simpleutf.UTF8, simpleutf.UTF16)
//	n, err := conv.AllSize(src)
//	sink := simpleutf.NewSliceSink[uint16](n)
//	err = conv.All(src, sink)
//
// # Unit Types
//
// Code units may be held in any integer type. A value is rejected, never
// truncated, when its bit pattern does not fit the nominal unit width of its
// form: a uint32 holding 0x1FF is not a UTF-8 byte. Narrower signed types
// are sign-extended, so int8(-1) is the byte 0xFF and int16(-1) read as
// UTF-32 is 0xFFFFFFFF, which is rejected. A destination type narrower than
// its form's units is refused up front.
//
// # Thread Safety
//
// All codecs and Converters are safe for concurrent use. Sinks are not; give
// each goroutine its own.
package simpleutf
