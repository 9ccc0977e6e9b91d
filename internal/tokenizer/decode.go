package tokenizer

// decodeChar decodes one variable-length code point starting at buf[pos] and
// reports how many bytes it spans. The encoding is UTF-8-style: the lead
// byte's high bits select a 1-4 byte sequence and each continuation byte
// contributes its low six bits.
//
// Continuation bytes are not validated. A malformed sequence decodes to a
// garbage code point rather than an error; since none of the characters the
// state machine dispatches on (delimiter, quote, comment, newline, space,
// tab) can be produced by a multi-byte decode, garbage code points fall
// through to the "field content" branches and the raw bytes are preserved
// verbatim in the output. Sequences truncated by the end of the buffer are
// clamped so the reported size never extends past len(buf).
func decodeChar(buf []byte, pos int) (rune, int) {
	c := buf[pos]

	var r rune
	var size int
	switch {
	case c&0x80 == 0:
		return rune(c & 0x7F), 1
	case c&0xE0 == 0xC0:
		r = rune(c & 0x1F)
		size = 2
	case c&0xF0 == 0xE0:
		r = rune(c & 0x0F)
		size = 3
	default:
		r = rune(c & 0x07)
		size = 4
	}

	if pos+size > len(buf) {
		size = len(buf) - pos
	}
	for i := 1; i < size; i++ {
		r = r<<6 | rune(buf[pos+i]&0x3F)
	}
	return r, size
}
