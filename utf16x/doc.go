// Package utf16x encodes and decodes single code points as UTF-16 code
// units. Code points above the Basic Multilingual Plane use a surrogate
// pair: a high surrogate (0xD800-0xDBFF) followed by a low surrogate
// (0xDC00-0xDFFF). Unpaired or misordered surrogates are rejected.
//
// This package works on code units, not bytes; byte order is the caller's
// concern (see package textenc).
package utf16x
