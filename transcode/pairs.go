package transcode

import (
	simpleutf "github.com/zhenghaven/SimpleUtf"
)

// convert runs a full pass into a slice presized by a size pass.
func convert[S, D simpleutf.Unit](from, to simpleutf.Form, src []S) ([]D, error) {
	c, err := New[S, D](from, to)
	if err != nil {
		return nil, err
	}
	return c.Append(nil, src)
}

// sizeOf runs a size-only pass. uint32 holds the units of every form.
func sizeOf[S simpleutf.Unit](from, to simpleutf.Form, src []S) (int, error) {
	c, err := New[S, uint32](from, to)
	if err != nil {
		return 0, err
	}
	return c.AllSize(src)
}

// UTF8ToUTF16 converts UTF-8 bytes to UTF-16 units.
func UTF8ToUTF16(src []byte) ([]uint16, error) {
	return convert[byte, uint16](simpleutf.UTF8, simpleutf.UTF16, src)
}

// UTF8ToUTF32 converts UTF-8 bytes to UTF-32 units.
func UTF8ToUTF32(src []byte) ([]uint32, error) {
	return convert[byte, uint32](simpleutf.UTF8, simpleutf.UTF32, src)
}

// UTF16ToUTF8 converts UTF-16 units to UTF-8 bytes.
func UTF16ToUTF8(src []uint16) ([]byte, error) {
	return convert[uint16, byte](simpleutf.UTF16, simpleutf.UTF8, src)
}

// UTF16ToUTF32 converts UTF-16 units to UTF-32 units.
func UTF16ToUTF32(src []uint16) ([]uint32, error) {
	return convert[uint16, uint32](simpleutf.UTF16, simpleutf.UTF32, src)
}

// UTF32ToUTF8 converts UTF-32 units to UTF-8 bytes.
func UTF32ToUTF8(src []uint32) ([]byte, error) {
	return convert[uint32, byte](simpleutf.UTF32, simpleutf.UTF8, src)
}

// UTF32ToUTF16 converts UTF-32 units to UTF-16 units.
func UTF32ToUTF16(src []uint32) ([]uint16, error) {
	return convert[uint32, uint16](simpleutf.UTF32, simpleutf.UTF16, src)
}

// UTF8ToUTF16Size returns the number of UTF-16 units UTF8ToUTF16 produces.
func UTF8ToUTF16Size(src []byte) (int, error) {
	return sizeOf(simpleutf.UTF8, simpleutf.UTF16, src)
}

func UTF8ToUTF32Size(src []byte) (int, error) {
	return sizeOf(simpleutf.UTF8, simpleutf.UTF32, src)
}

func UTF16ToUTF8Size(src []uint16) (int, error) {
	return sizeOf(simpleutf.UTF16, simpleutf.UTF8, src)
}

func UTF16ToUTF32Size(src []uint16) (int, error) {
	return sizeOf(simpleutf.UTF16, simpleutf.UTF32, src)
}

func UTF32ToUTF8Size(src []uint32) (int, error) {
	return sizeOf(simpleutf.UTF32, simpleutf.UTF8, src)
}

func UTF32ToUTF16Size(src []uint32) (int, error) {
	return sizeOf(simpleutf.UTF32, simpleutf.UTF16, src)
}

// Validate checks that src is well-formed in form f. It performs a full
// decode and re-encode size pass without producing any output.
func Validate[T simpleutf.Unit](f simpleutf.Form, src []T) error {
	_, err := sizeOf(f, f, src)
	return err
}
