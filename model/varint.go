package model

import (
	"encoding/binary"

	"github.com/bsv-blockchain/blockdecoder/util"
)

// ReadVarInt decodes a Bitcoin variable length integer from the front of b and
// returns the value and the remaining bytes. Non-canonical encodings, such as a
// small value written in the 9 byte form, are accepted.
func ReadVarInt(b []byte) (uint64, []byte, error) {
	c := newCursor(b)

	v, err := c.readVarInt("varint")
	if err != nil {
		return 0, nil, err
	}

	return v, c.rest(), nil
}

// AppendVarInt appends the canonical encoding of v to dst.
func AppendVarInt(dst []byte, v uint64) []byte {
	return util.AppendVarint(dst, v)
}

func (c *cursor) readVarInt(what string) (uint64, error) {
	start := c.pos

	prefix, err := c.readBytes(1, what)
	if err != nil {
		return 0, err
	}

	var width int

	switch prefix[0] {
	case 0xfd:
		width = 2
	case 0xfe:
		width = 4
	case 0xff:
		width = 8
	default:
		return uint64(prefix[0]), nil
	}

	b, err := c.readBytes(width, what)
	if err != nil {
		// report the varint as a whole
		c.pos = start
		return 0, c.short(1+width, what)
	}

	switch width {
	case 2:
		return uint64(binary.LittleEndian.Uint16(b)), nil
	case 4:
		return uint64(binary.LittleEndian.Uint32(b)), nil
	default:
		return binary.LittleEndian.Uint64(b), nil
	}
}

func varIntLen(n int) int {
	return int(util.VarintSize(uint64(n)))
}
