package model

import (
	"bytes"

	"github.com/bsv-blockchain/blockdecoder/errors"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

const HashSize = chainhash.HashSize

// Hash256 is a 32 byte hash kept in wire order. Its display form is the byte
// reversed hex used by bitcoind and block explorers.
type Hash256 [HashSize]byte

// NewHash256FromBytes copies a wire order hash.
func NewHash256FromBytes(b []byte) (Hash256, error) {
	var h Hash256

	if len(b) != HashSize {
		return h, errors.NewInvalidArgumentError("invalid hash length of %d, want %d", len(b), HashSize)
	}

	copy(h[:], b)

	return h, nil
}

// NewHash256FromStr parses a hash in display (byte reversed) order.
func NewHash256FromStr(s string) (Hash256, error) {
	ch, err := chainhash.NewHashFromStr(s)
	if err != nil {
		return Hash256{}, errors.NewInvalidArgumentError("invalid hash %q", s, err)
	}

	return Hash256(*ch), nil
}

// IsZero reports whether every byte is zero, the marker of a coinbase input.
func (h Hash256) IsZero() bool {
	return h == Hash256{}
}

func (h Hash256) Equal(other Hash256) bool {
	return bytes.Equal(h[:], other[:])
}

func (h Hash256) CloneBytes() []byte {
	b := make([]byte, HashSize)
	copy(b, h[:])

	return b
}

func (h Hash256) String() string {
	return chainhash.Hash(h).String()
}

func (h Hash256) MarshalJSON() ([]byte, error) {
	return []byte(`"` + h.String() + `"`), nil
}

func (h *Hash256) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return errors.NewInvalidArgumentError("hash must be a JSON string")
	}

	parsed, err := NewHash256FromStr(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}

	*h = parsed

	return nil
}
