// Package utf8x encodes and decodes single code points as UTF-8.
//
// Unlike unicode/utf8, decoding never substitutes U+FFFD: every malformed
// sequence is reported with a structured error naming the offending byte.
// Units may be held in any integer type; each must fit in one byte.
//
//	Bits  Bytes  Pattern
//	───────────────────────────────────────────────
//	 7    1      0xxxxxxx
//	11    2      110xxxxx 10xxxxxx
//	16    3      1110xxxx 10xxxxxx 10xxxxxx
//	21    4      11110xxx 10xxxxxx 10xxxxxx 10xxxxxx
package utf8x
