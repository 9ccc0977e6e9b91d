package tokenizer

import (
	"bytes"
	"unsafe"
)

// emptyField is the shared view handed out for fields recorded as the
// empty-field marker, translating the marker back to an actual empty value.
var emptyField = []byte{}

// StartHeaderIteration positions the iteration cursor at the first header
// field. Valid only after TokenizeHeader has completed.
func (t *Tokenizer) StartHeaderIteration() {
	t.iterBuf = &t.header
	t.iterPos = 0
}

// StartIteration positions the iteration cursor at the first field of
// output column col. Valid only after TokenizeData has completed. An
// out-of-range column leaves the cursor finished.
func (t *Tokenizer) StartIteration(col int) {
	if col < 0 || col >= len(t.cols) {
		t.iterBuf = nil
		t.iterPos = 0
		return
	}
	t.iterBuf = &t.cols[col]
	t.iterPos = 0
}

// FinishedHeaderIteration reports whether every header field has been read.
func (t *Tokenizer) FinishedHeaderIteration() bool { return t.finished() }

// FinishedIteration reports whether every field of the iterated column has
// been read.
func (t *Tokenizer) FinishedIteration() bool { return t.finished() }

// finished is true when the cursor has left the buffer or rests on a
// terminator byte at a field boundary. The zero-filled tail makes a
// terminator there indistinguishable from untouched space; both mean no
// field starts here.
func (t *Tokenizer) finished() bool {
	return t.iterBuf == nil ||
		t.iterPos >= len(t.iterBuf.data) ||
		t.iterBuf.data[t.iterPos] == fieldTerminator
}

// NextField returns a view of the next field's bytes and advances the
// cursor past the field's terminator. A field recorded as empty yields the
// shared empty view rather than its marker byte. The view aliases the
// engine's buffer and is valid only until the next tokenization call.
//
// Calling NextField on a finished cursor returns the empty view.
func (t *Tokenizer) NextField() []byte {
	if t.iterBuf == nil || t.iterPos >= len(t.iterBuf.data) {
		return emptyField
	}

	data := t.iterBuf.data
	start := t.iterPos
	end := bytes.IndexByte(data[start:], fieldTerminator)
	var field []byte
	if end < 0 {
		// Unterminated trailing write; take the rest and finish.
		field = data[start:]
		t.iterPos = len(data)
	} else {
		field = data[start : start+end]
		t.iterPos = start + end + 1
	}

	if len(field) > 0 && field[0] == emptyFieldMarker {
		return emptyField
	}
	return field
}

// NextFieldString returns the next field as a string sharing the engine's
// buffer memory, under the same validity rule as NextField.
func (t *Tokenizer) NextFieldString() string {
	return unsafeString(t.NextField())
}

// unsafeString converts a []byte to a string without allocation.
//
// The string shares the underlying byte array, so the slice must not be
// modified while the string is live. Field views satisfy this: the engine
// only writes during tokenization calls, which invalidate the views anyway.
func unsafeString(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}
