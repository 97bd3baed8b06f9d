package model

import (
	"encoding/binary"
	"encoding/hex"
	"math/big"
	"time"

	"github.com/bsv-blockchain/blockdecoder/errors"
	"github.com/bsv-blockchain/blockdecoder/util"
)

const (
	BlockHeaderSize = 80

	// TimestampFormat is RFC 1123 with a numeric zone, the same shape as RFC 2822.
	TimestampFormat = "Mon, 02 Jan 2006 15:04:05 -0700"
)

type BlockHeader struct {
	// Version of the block.  This is not the same as the protocol version.
	Version uint32

	// Hash of the previous block header in the blockchain.
	PreviousBlockHash Hash256

	// Merkle tree reference to hash of all transactions for the block.
	MerkleRoot Hash256

	// Time the block was created in unix time, as found on the wire.
	Timestamp uint32

	// Timestamp rendered with FormatTimestamp.
	Time string

	// Difficulty target for the block, 4 bytes in wire order.
	Bits ByteBlob

	// Nonce used to generate the block, 4 bytes in wire order.
	Nonce ByteBlob
}

// NewBlockHeaderFromBytes decodes a header from exactly 80 bytes.
func NewBlockHeaderFromBytes(headerBytes []byte) (*BlockHeader, error) {
	if len(headerBytes) < BlockHeaderSize {
		return nil, errors.NewInsufficientInputError(0, "block header should be %d bytes long, got %d", BlockHeaderSize, len(headerBytes))
	}

	if len(headerBytes) > BlockHeaderSize {
		return nil, errors.NewMalformedError(BlockHeaderSize, "block header should be %d bytes long, got %d", BlockHeaderSize, len(headerBytes))
	}

	return newCursor(headerBytes).readBlockHeader()
}

func NewBlockHeaderFromString(headerHex string) (*BlockHeader, error) {
	headerBytes, err := hex.DecodeString(headerHex)
	if err != nil {
		return nil, errors.NewInvalidArgumentError("error decoding hex string to bytes", err)
	}

	return NewBlockHeaderFromBytes(headerBytes)
}

// ReadBlockHeader decodes a header from the front of b and returns the rest.
func ReadBlockHeader(b []byte) (*BlockHeader, []byte, error) {
	c := newCursor(b)

	header, err := c.readBlockHeader()
	if err != nil {
		return nil, nil, err
	}

	return header, c.rest(), nil
}

func (c *cursor) readBlockHeader() (*BlockHeader, error) {
	b, err := c.readBytes(BlockHeaderSize, "block header")
	if err != nil {
		return nil, err
	}

	header := &BlockHeader{
		Version:   binary.LittleEndian.Uint32(b[:4]),
		Timestamp: binary.LittleEndian.Uint32(b[68:72]),
		Bits:      append(ByteBlob(nil), b[72:76]...),
		Nonce:     append(ByteBlob(nil), b[76:80]...),
	}

	copy(header.PreviousBlockHash[:], b[4:36])
	copy(header.MerkleRoot[:], b[36:68])

	header.Time = FormatTimestamp(header.Timestamp)

	return header, nil
}

// FormatTimestamp renders a block timestamp in UTC.
func FormatTimestamp(ts uint32) string {
	return time.Unix(int64(ts), 0).UTC().Format(TimestampFormat)
}

func (bh *BlockHeader) Bytes() []byte {
	blockHeaderBytes := make([]byte, 0, BlockHeaderSize)
	blockHeaderBytes = binary.LittleEndian.AppendUint32(blockHeaderBytes, bh.Version)
	blockHeaderBytes = append(blockHeaderBytes, bh.PreviousBlockHash[:]...)
	blockHeaderBytes = append(blockHeaderBytes, bh.MerkleRoot[:]...)
	blockHeaderBytes = binary.LittleEndian.AppendUint32(blockHeaderBytes, bh.Timestamp)
	blockHeaderBytes = append(blockHeaderBytes, fixed4(bh.Bits)...)
	blockHeaderBytes = append(blockHeaderBytes, fixed4(bh.Nonce)...)

	return blockHeaderBytes
}

func fixed4(b ByteBlob) []byte {
	out := make([]byte, 4)
	copy(out, b)

	return out
}

func (bh *BlockHeader) Hash() Hash256 {
	return Hash256(util.Sha256d(bh.Bytes()))
}

// Target expands the compact difficulty in Bits.
func (bh *BlockHeader) Target() *big.Int {
	return util.CalculateTarget(binary.LittleEndian.Uint32(fixed4(bh.Bits)))
}

// HasMetTargetDifficulty reports whether the header hash is at or below the target.
func (bh *BlockHeader) HasMetTargetDifficulty() (bool, Hash256, error) {
	target := bh.Target()
	if target.Sign() <= 0 {
		return false, Hash256{}, errors.NewBlockInvalidError("invalid difficulty bits %s", bh.Bits)
	}

	hash := bh.Hash()

	// the hash is a little endian number
	reversed := hash.CloneBytes()
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}

	return new(big.Int).SetBytes(reversed).Cmp(target) <= 0, hash, nil
}
