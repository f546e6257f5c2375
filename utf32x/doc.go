// Package utf32x encodes and decodes code points as single UTF-32 units.
package utf32x
