package model

import (
	"encoding/binary"

	"github.com/bsv-blockchain/blockdecoder/errors"
)

// cursor walks a buffer front to back. Offsets reported in errors are absolute:
// base is the offset of buf[0] within the buffer the caller originally handed in.
type cursor struct {
	buf  []byte
	pos  int
	base int
}

func newCursor(b []byte) *cursor {
	return &cursor{buf: b}
}

func (c *cursor) offset() int {
	return c.base + c.pos
}

func (c *cursor) remaining() int {
	return len(c.buf) - c.pos
}

func (c *cursor) rest() []byte {
	return c.buf[c.pos:]
}

func (c *cursor) short(n int, what string) error {
	return errors.NewInsufficientInputError(c.offset(), "reading %s: need %d bytes, have %d", what, n, c.remaining())
}

func (c *cursor) readBytes(n int, what string) ([]byte, error) {
	if n < 0 || n > c.remaining() {
		return nil, c.short(n, what)
	}

	b := c.buf[c.pos : c.pos+n]
	c.pos += n

	return b, nil
}

// peek returns the next n bytes without consuming them, or nil if fewer remain.
func (c *cursor) peek(n int) []byte {
	if n > c.remaining() {
		return nil
	}

	return c.buf[c.pos : c.pos+n]
}

func (c *cursor) skip(n int) {
	c.pos += n
}

func (c *cursor) readUint32(what string) (uint32, error) {
	b, err := c.readBytes(4, what)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint32(b), nil
}

func (c *cursor) readUint64(what string) (uint64, error) {
	b, err := c.readBytes(8, what)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint64(b), nil
}

func (c *cursor) readHash(what string) (Hash256, error) {
	var h Hash256

	b, err := c.readBytes(HashSize, what)
	if err != nil {
		return h, err
	}

	copy(h[:], b)

	return h, nil
}

// readBlob reads a VarInt length followed by that many bytes. The returned blob
// is a copy, so decoded values never alias the input buffer.
func (c *cursor) readBlob(what string) (ByteBlob, error) {
	start := c.offset()

	length, err := c.readVarInt(what + " length")
	if err != nil {
		return nil, err
	}

	if length > uint64(c.remaining()) {
		return nil, errors.NewInsufficientInputError(c.offset(), "reading %s: need %d bytes, have %d (length prefix at %d)", what, length, c.remaining(), start)
	}

	b, err := c.readBytes(int(length), what)
	if err != nil {
		return nil, err
	}

	if len(b) == 0 {
		return ByteBlob{}, nil
	}

	blob := make(ByteBlob, len(b))
	copy(blob, b)

	return blob, nil
}

// capacity bounds a slice preallocation for count records of at least minSize
// bytes each by what the remaining input could possibly hold.
func (c *cursor) capacity(count uint64, minSize int) int {
	most := uint64(c.remaining() / minSize)
	if count < most {
		return int(count)
	}

	return int(most)
}
