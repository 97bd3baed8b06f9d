package model

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/bsv-blockchain/blockdecoder/chaincfg"
	"github.com/bsv-blockchain/blockdecoder/errors"
	"github.com/bsv-blockchain/blockdecoder/util"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	safeconversion "github.com/bsv-blockchain/go-safe-conversion"
	"github.com/davecgh/go-spew/spew"
	"github.com/dolthub/swiss"
)

// frameHeaderSize is the magic and size that precede each block in blk*.dat files.
const frameHeaderSize = 8

// script opcodes used to read the BIP34 height from a coinbase
const (
	opZero    = 0x00
	opOne     = 0x51
	opSixteen = 0x60
)

type Block struct {
	Header *BlockHeader

	// Network is the chain the block was recorded for, taken from the frame magic
	// or supplied by the caller for unframed blocks.
	Network chaincfg.Network

	// DeclaredSize is the size from the frame, or the number of bytes an
	// unframed block occupied.
	DeclaredSize uint32

	Transactions []*Transaction
}

// NewBlockFromBytes decodes an unframed block that must occupy all of b.
func NewBlockFromBytes(b []byte, network chaincfg.Network) (*Block, error) {
	c := newCursor(b)

	block, err := c.readBlock(network)
	if err != nil {
		return nil, err
	}

	if c.remaining() != 0 {
		return nil, errors.NewMalformedError(c.offset(), "%d unexpected bytes after block", c.remaining())
	}

	return block, nil
}

func NewBlockFromString(s string, network chaincfg.Network) (*Block, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.NewInvalidArgumentError("invalid block hex", err)
	}

	return NewBlockFromBytes(b, network)
}

// ReadBlock decodes an unframed block from the front of b and returns the rest.
func ReadBlock(b []byte, network chaincfg.Network) (*Block, []byte, error) {
	c := newCursor(b)

	block, err := c.readBlock(network)
	if err != nil {
		return nil, nil, err
	}

	return block, c.rest(), nil
}

// NewFramedBlockFromBytes decodes magic | size | block, where the record must occupy all of b.
func NewFramedBlockFromBytes(b []byte) (*Block, error) {
	c := newCursor(b)

	block, err := c.readFramedBlock()
	if err != nil {
		return nil, err
	}

	if c.remaining() != 0 {
		return nil, errors.NewMalformedError(c.offset(), "%d unexpected bytes after block record", c.remaining())
	}

	return block, nil
}

// ReadFramedBlock decodes one magic | size | block record from the front of b
// and returns the rest, so consecutive records of a blk*.dat file can be walked.
// An unrecognised magic still decodes, with Network set to chaincfg.UnknownNet.
func ReadFramedBlock(b []byte) (*Block, []byte, error) {
	c := newCursor(b)

	block, err := c.readFramedBlock()
	if err != nil {
		return nil, nil, err
	}

	return block, c.rest(), nil
}

// ReadBlockFile decodes every record of a blk*.dat file image in order. It stops
// at the end of b or at the zero padding left after the last record.
func ReadBlockFile(b []byte) ([]*Block, error) {
	c := newCursor(b)

	var blocks []*Block

	for c.remaining() > 0 && !c.atPadding() {
		block, err := c.readFramedBlock()
		if err != nil {
			return nil, errors.WithOffset(err, "[ReadBlockFile] record %d", len(blocks))
		}

		blocks = append(blocks, block)
	}

	return blocks, nil
}

// atPadding reports whether the next magic, or what is left of it, is all zero.
func (c *cursor) atPadding() bool {
	n := 4
	if c.remaining() < n {
		n = c.remaining()
	}

	for _, v := range c.peek(n) {
		if v != 0 {
			return false
		}
	}

	return true
}

func (c *cursor) readFramedBlock() (*Block, error) {
	magic, err := c.readUint32("block magic")
	if err != nil {
		return nil, err
	}

	size, err := c.readUint32("block size")
	if err != nil {
		return nil, err
	}

	start := c.offset()

	if uint64(size) > uint64(c.remaining()) {
		return nil, errors.NewInsufficientInputError(start, "block record declares %d bytes, have %d", size, c.remaining())
	}

	// decode within the declared size only, offsets stay absolute
	inner := &cursor{buf: c.buf[c.pos : c.pos+int(size)], base: start}

	block, err := inner.readBlock(chaincfg.NetworkFromMagic(magic))
	if err != nil {
		if errors.Is(err, errors.ErrInsufficientInput) && c.remaining() > int(size) {
			offset, _ := errors.Offset(err)
			return nil, errors.NewMalformedError(offset, "block overruns its declared size of %d bytes", size)
		}

		return nil, err
	}

	if inner.remaining() != 0 {
		return nil, errors.NewMalformedError(inner.offset(), "block record declares %d bytes, block used %d", size, inner.pos)
	}

	c.skip(inner.pos)

	block.DeclaredSize = size

	return block, nil
}

func (c *cursor) readBlock(network chaincfg.Network) (*Block, error) {
	start := c.pos

	header, err := c.readBlockHeader()
	if err != nil {
		return nil, errors.WithOffset(err, "[readBlock] header")
	}

	count, err := c.readVarInt("transaction count")
	if err != nil {
		return nil, err
	}

	block := &Block{
		Header:       header,
		Network:      network,
		Transactions: make([]*Transaction, 0, c.capacity(count, minTransactionSize)),
	}

	for i := uint64(0); i < count; i++ {
		tx, err := c.readTransaction()
		if err != nil {
			return nil, errors.WithOffset(err, "[readBlock] transaction %d", i)
		}

		block.Transactions = append(block.Transactions, tx)
	}

	size, err := safeconversion.IntToUint32(c.pos - start)
	if err != nil {
		return nil, errors.NewMalformedError(c.offset(), "block too large", err)
	}

	block.DeclaredSize = size

	return block, nil
}

func (b *Block) Hash() Hash256 {
	return b.Header.Hash()
}

func (b *Block) String() string {
	return b.Hash().String()
}

// Bytes returns the unframed wire form of the block.
func (b *Block) Bytes() []byte {
	buf := make([]byte, 0, b.TotalSize())
	buf = append(buf, b.Header.Bytes()...)
	buf = AppendVarInt(buf, uint64(len(b.Transactions)))

	for _, tx := range b.Transactions {
		buf = tx.appendTo(buf, tx.HasWitness)
	}

	return buf
}

// FramedBytes returns the block as a blk*.dat record. Blocks of an unknown
// network have no magic to write and are rejected.
func (b *Block) FramedBytes() ([]byte, error) {
	magic := b.Network.Magic()
	if magic == 0 {
		return nil, errors.NewInvalidArgumentError("no magic for network %s", b.Network)
	}

	size, err := safeconversion.IntToUint32(b.TotalSize())
	if err != nil {
		return nil, errors.NewProcessingError("block too large to frame", err)
	}

	buf := make([]byte, 0, frameHeaderSize+int(size))
	buf = binary.LittleEndian.AppendUint32(buf, magic)
	buf = binary.LittleEndian.AppendUint32(buf, size)

	return append(buf, b.Bytes()...), nil
}

// TotalSize is the serialized size of the unframed block.
func (b *Block) TotalSize() int {
	size := BlockHeaderSize + varIntLen(len(b.Transactions))
	for _, tx := range b.Transactions {
		size += tx.Size()
	}

	return size
}

// Weight is the sum of the transaction weights plus four times the header and count.
func (b *Block) Weight() int {
	weight := 4 * (BlockHeaderSize + varIntLen(len(b.Transactions)))
	for _, tx := range b.Transactions {
		weight += tx.Weight()
	}

	return weight
}

// HasWitness reports whether any transaction in the block carries witness data.
func (b *Block) HasWitness() bool {
	for _, tx := range b.Transactions {
		if tx.HasWitness {
			return true
		}
	}

	return false
}

func (b *Block) CoinbaseTx() *Transaction {
	if len(b.Transactions) == 0 || !b.Transactions[0].IsCoinbase {
		return nil
	}

	return b.Transactions[0]
}

// CalculateMerkleRoot builds the merkle root over the transaction ids.
func (b *Block) CalculateMerkleRoot() Hash256 {
	leaves := make([]chainhash.Hash, len(b.Transactions))
	for i, tx := range b.Transactions {
		leaves[i] = chainhash.Hash(tx.TxID())
	}

	return Hash256(util.BuildMerkleRoot(leaves))
}

func (b *Block) CheckMerkleRoot() error {
	if len(b.Transactions) == 0 {
		return errors.NewBlockInvalidError("block %s has no transactions", b.Hash())
	}

	calculated := b.CalculateMerkleRoot()
	if !calculated.Equal(b.Header.MerkleRoot) {
		return errors.NewBlockInvalidError("merkle root mismatch for block %s: header %s, calculated %s", b.Hash(), b.Header.MerkleRoot, calculated)
	}

	return nil
}

// CheckDuplicateTransactions fails when two transactions share a txid.
func (b *Block) CheckDuplicateTransactions() error {
	seen := swiss.NewMap[Hash256, int](uint32(len(b.Transactions)))

	for i, tx := range b.Transactions {
		txID := tx.TxID()

		if first, ok := seen.Get(txID); ok {
			return errors.NewBlockInvalidError("block %s repeats a transaction", b.Hash(),
				errors.NewTxInvalidError("duplicate transaction %s at %d and %d", txID, first, i))
		}

		seen.Put(txID, i)
	}

	return nil
}

// ExtractCoinbaseHeight reads the BIP34 height from the coinbase signature script.
func (b *Block) ExtractCoinbaseHeight() (uint32, error) {
	coinbase := b.CoinbaseTx()
	if coinbase == nil {
		return 0, errors.NewBlockInvalidError("block %s has no coinbase", b.Hash())
	}

	sigScript := coinbase.Inputs[0].SignatureScript
	if len(sigScript) < 1 {
		return 0, errors.NewBlockInvalidError("coinbase signature script of block %s does not start with the block height", b.Hash())
	}

	// small heights are pushed with a single opcode
	opcode := sigScript[0]
	if opcode == opZero {
		return 0, nil
	}

	if opcode >= opOne && opcode <= opSixteen {
		return uint32(opcode - (opOne - 1)), nil
	}

	serializedLen := int(opcode)
	if serializedLen > 8 || len(sigScript[1:]) < serializedLen {
		return 0, errors.NewBlockInvalidError("coinbase signature script of block %s has a truncated block height", b.Hash())
	}

	serializedHeightBytes := make([]byte, 8)
	copy(serializedHeightBytes, sigScript[1:serializedLen+1])

	height, err := safeconversion.Uint64ToUint32(binary.LittleEndian.Uint64(serializedHeightBytes))
	if err != nil {
		return 0, errors.NewBlockInvalidError("coinbase height of block %s out of range", b.Hash(), err)
	}

	return height, nil
}

// Dump renders the whole decoded tree for debugging.
func (b *Block) Dump() string {
	// without String, so spew walks the fields
	type block Block

	return spew.Sdump((*block)(b))
}
