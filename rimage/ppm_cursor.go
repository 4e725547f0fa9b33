package rimage

// byteCursor is a forward-only view over an owned buffer. Once exhausted it
// stays exhausted.
type byteCursor struct {
	buf []byte
	pos int
}

func newByteCursor(buf []byte) *byteCursor {
	return &byteCursor{buf: buf}
}

// next returns the next unread byte, or false if there is none left.
func (c *byteCursor) next() (byte, bool) {
	if c.pos >= len(c.buf) {
		return 0, false
	}
	b := c.buf[c.pos]
	c.pos++
	return b, true
}

// remaining is the number of unread bytes.
func (c *byteCursor) remaining() int {
	return len(c.buf) - c.pos
}
