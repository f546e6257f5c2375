// Package transcode drives the codecs over whole sequences.
//
// A Converter pairs a source codec and a destination codec, chosen by form
// and unit type, and exposes four operations:
//
//	Once      decode one code point, encode it into a sink
//	OnceSize  decode one code point, report its encoded size only
//	All       repeat Once until the source is exhausted
//	AllSize   repeat OnceSize, summing sizes
//
// Every step consumes at least one unit, so a pass over N units ends after at
// most N steps. The first failing step aborts the pass; whatever earlier steps
// appended stays in the sink. Use Append, or run AllSize first, for an
// all-or-nothing conversion.
//
// # Presizing
//
//	conv, _ := transcode.New[uint16, byte](simpleutf.UTF16, simpleutf.UTF8)
//	n, err := conv.AllSize(units)
//	buf := simpleutf.NewSliceSink[byte](n)
//	err = conv.All(units, buf)
//
// # Error Handling
//
// Errors from All and AllSize report the absolute offset of the offending
// source unit:
//
//	[decode] invalid_continuation_byte in utf-8 at offset 5: 0x41 is not a continuation byte
//
// Failed steps are logged at debug level through the package Logger or the
// logger given to WithLogger.
package transcode
