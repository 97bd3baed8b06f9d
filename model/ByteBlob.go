package model

import (
	"encoding/hex"

	"github.com/bsv-blockchain/blockdecoder/errors"
)

// ByteBlob is an opaque run of bytes whose length came from a prefix or a fixed
// size. Its hex form is not reversed.
type ByteBlob []byte

func NewByteBlobFromString(s string) (ByteBlob, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.NewInvalidArgumentError("invalid hex", err)
	}

	return b, nil
}

func (b ByteBlob) String() string {
	return hex.EncodeToString(b)
}

func (b ByteBlob) MarshalJSON() ([]byte, error) {
	return []byte(`"` + b.String() + `"`), nil
}

func (b *ByteBlob) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.NewInvalidArgumentError("byte blob must be a JSON string")
	}

	decoded, err := NewByteBlobFromString(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}

	*b = decoded

	return nil
}
