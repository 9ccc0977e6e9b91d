package tokenizer

// Initial capacity for the header buffer and for each column buffer.
// Retained tuning constants; growth is geometric so the exact value only
// affects how soon the first resize happens.
const (
	initialHeaderSize = 50
	initialColSize    = 50
)

// Reserved byte values inside output buffers. Field content never contains
// a raw 0x00 byte: 0x00 terminates every field, and a field whose content is
// empty is written as the single sentinel byte 0x01 before its terminator.
// Because freshly grown space is zero-filled, a 0x00 at a field boundary is
// indistinguishable from untouched buffer tail, which is exactly what makes
// "the byte at the cursor is 0x00" an unambiguous end-of-fields signal.
const (
	fieldTerminator  = 0x00
	emptyFieldMarker = 0x01
)

// outputBuffer accumulates the terminated field strings of one column (or of
// the header). Storage is always zero-filled beyond the write cursor, and the
// cursor is a relative offset so growth never invalidates it.
type outputBuffer struct {
	data []byte // zero-filled storage; len(data) is the capacity
	pos  int    // write cursor
}

// newOutputBuffer returns a buffer with the given zero-filled capacity.
func newOutputBuffer(size int) outputBuffer {
	return outputBuffer{data: make([]byte, size)}
}

// push appends raw bytes at the write cursor, doubling the capacity as often
// as needed. The newly acquired space is zero by construction, preserving the
// terminator semantics for everything past the cursor.
func (b *outputBuffer) push(p []byte) {
	for b.pos+len(p) > len(b.data) {
		grown := make([]byte, 2*len(b.data))
		copy(grown, b.data[:b.pos])
		b.data = grown
	}
	b.pos += copy(b.data[b.pos:], p)
}

// pushByte appends a single byte at the write cursor.
func (b *outputBuffer) pushByte(c byte) {
	if b.pos >= len(b.data) {
		grown := make([]byte, 2*len(b.data))
		copy(grown, b.data[:b.pos])
		b.data = grown
	}
	b.data[b.pos] = c
	b.pos++
}

// trimTrailingWhitespace rewinds the write cursor over trailing space and tab
// bytes, re-zeroing them. The previous field's terminator (or the start of
// the buffer) stops the rewind, so trimming never crosses a field boundary.
func (b *outputBuffer) trimTrailingWhitespace() {
	for b.pos > 0 && (b.data[b.pos-1] == ' ' || b.data[b.pos-1] == '\t') {
		b.pos--
		b.data[b.pos] = 0
	}
}

// atFieldStart reports whether no content has been written for the current
// field: the cursor sits at the start of the buffer or directly after the
// previous field's terminator.
func (b *outputBuffer) atFieldStart() bool {
	return b.pos == 0 || b.data[b.pos-1] == fieldTerminator
}
