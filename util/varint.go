package util

import "encoding/binary"

// VarintSize returns the canonical encoded width of x as a Bitcoin VarInt: 1, 3, 5 or 9 bytes.
func VarintSize(x uint64) uint64 {
	if x < 0xfd {
		return 1
	}

	if x <= 0xffff {
		return 3
	}

	if x <= 0xffffffff {
		return 5
	}

	return 9
}

// AppendVarint appends the canonical VarInt encoding of x to dst.
func AppendVarint(dst []byte, x uint64) []byte {
	switch VarintSize(x) {
	case 1:
		return append(dst, byte(x))
	case 3:
		return binary.LittleEndian.AppendUint16(append(dst, 0xfd), uint16(x))
	case 5:
		return binary.LittleEndian.AppendUint32(append(dst, 0xfe), uint32(x))
	default:
		return binary.LittleEndian.AppendUint64(append(dst, 0xff), x)
	}
}
