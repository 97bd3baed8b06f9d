package model

import (
	"testing"

	"github.com/bsv-blockchain/blockdecoder/errors"
	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadVarInt(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected uint64
		consumed int
	}{
		{"single byte", []byte{0x6a, 0xff}, 106, 1},
		{"largest single byte", []byte{0xfc}, 0xfc, 1},
		{"two byte form", []byte{0xfd, 0xfd, 0x00}, 0xfd, 3},
		{"four byte form", []byte{0xfe, 0x78, 0x56, 0x34, 0x12}, 0x12345678, 5},
		{"eight byte form", []byte{0xff, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}, 0x0807060504030201, 9},
		{"non canonical two byte", []byte{0xfd, 0x01, 0x00}, 1, 3},
		{"non canonical eight byte", []byte{0xff, 0x05, 0, 0, 0, 0, 0, 0, 0, 0xaa}, 5, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, rest, err := ReadVarInt(tt.input)
			require.NoError(t, err)

			assert.Equal(t, tt.expected, v)
			assert.Equal(t, tt.input[tt.consumed:], rest)
		})
	}
}

func TestReadVarInt_Short(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, _, err := ReadVarInt(nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrInsufficientInput))

		offset, ok := errors.Offset(err)
		require.True(t, ok)
		assert.Equal(t, 0, offset)
	})

	for _, prefix := range []byte{0xfd, 0xfe, 0xff} {
		_, _, err := ReadVarInt([]byte{prefix, 0x01})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrInsufficientInput))

		// reported at the start of the varint, not at the missing byte
		offset, ok := errors.Offset(err)
		require.True(t, ok)
		assert.Equal(t, 0, offset)
	}
}

func TestReadVarInt_OffsetInsideRecord(t *testing.T) {
	// a truncated output count after a complete version
	_, err := NewTransactionFromBytes([]byte{0x01, 0x00, 0x00, 0x00, 0xfd, 0x01})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInsufficientInput))

	offset, ok := errors.Offset(err)
	require.True(t, ok)
	assert.Equal(t, 4, offset)
}

func TestAppendVarInt(t *testing.T) {
	for _, v := range []uint64{0, 1, 0xfc, 0xfd, 0xffff, 0x10000, 0xffffffff, 0x100000000, 1<<64 - 1} {
		encoded := AppendVarInt(nil, v)

		assert.Equal(t, bt.VarInt(v).Bytes(), encoded, "value %d", v)

		decoded, rest, err := ReadVarInt(encoded)
		require.NoError(t, err)
		assert.Equal(t, v, decoded)
		assert.Empty(t, rest)
	}
}

func TestVarIntLen(t *testing.T) {
	assert.Equal(t, 1, varIntLen(0))
	assert.Equal(t, 1, varIntLen(0xfc))
	assert.Equal(t, 3, varIntLen(0xfd))
	assert.Equal(t, 3, varIntLen(0xffff))
	assert.Equal(t, 5, varIntLen(0x10000))
}
