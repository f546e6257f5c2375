// Package textenc exposes the transcoding engine through the
// golang.org/x/text encoding and transform interfaces, so serialized UTF-16
// and UTF-32 byte streams can be converted with transform.NewReader,
// transform.NewWriter or encoding.Decoder.Bytes.
//
//	r := transform.NewReader(f, textenc.UTF16LE.NewDecoder())
//	data, err := io.ReadAll(r) // UTF-8
//
// A code point split across two source chunks is carried over with
// transform.ErrShortSrc. Malformed input stops the stream with a structured
// error whose Offset is the byte position within the failing chunk.
package textenc
