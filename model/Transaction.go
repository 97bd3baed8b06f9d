package model

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/bsv-blockchain/blockdecoder/errors"
	"github.com/bsv-blockchain/blockdecoder/util"
)

const (
	segwitMarker = 0x00
	segwitFlag   = 0x01

	// version, one input, an empty output count and the lock time
	minTransactionSize = 4 + 1 + minTxInputSize + 1 + 4
)

type Transaction struct {
	Version uint32
	Inputs  []*TxInput
	Outputs []*TxOutput

	// WitnessStacks is nil for a transaction without the segwit marker, otherwise
	// it holds one stack per input in input order.
	WitnessStacks []WitnessStack

	LockTime uint32

	HasWitness bool

	// IsCoinbase is informational, decoding does not depend on it.
	IsCoinbase bool
}

// NewTransactionFromBytes decodes a transaction that must occupy all of b.
func NewTransactionFromBytes(b []byte) (*Transaction, error) {
	c := newCursor(b)

	tx, err := c.readTransaction()
	if err != nil {
		return nil, err
	}

	if c.remaining() != 0 {
		return nil, errors.NewMalformedError(c.offset(), "%d unexpected bytes after transaction", c.remaining())
	}

	return tx, nil
}

func NewTransactionFromString(s string) (*Transaction, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.NewInvalidArgumentError("invalid transaction hex", err)
	}

	return NewTransactionFromBytes(b)
}

// ReadTransaction decodes a transaction from the front of b and returns the rest.
func ReadTransaction(b []byte) (*Transaction, []byte, error) {
	c := newCursor(b)

	tx, err := c.readTransaction()
	if err != nil {
		return nil, nil, err
	}

	return tx, c.rest(), nil
}

func (c *cursor) readTransaction() (*Transaction, error) {
	var (
		tx  Transaction
		err error
	)

	if tx.Version, err = c.readUint32("version"); err != nil {
		return nil, err
	}

	// The marker and flag are the only segwit discriminator. A legacy transaction
	// can not start its inputs with 0x00 0x01, since zero inputs is invalid.
	if m := c.peek(2); m != nil && m[0] == segwitMarker && m[1] == segwitFlag {
		c.skip(2)

		tx.HasWitness = true
	}

	countOffset := c.offset()

	if tx.Inputs, err = c.readTxInputs(); err != nil {
		return nil, err
	}

	if len(tx.Inputs) == 0 {
		return nil, errors.NewMalformedError(countOffset, "transaction has no inputs")
	}

	tx.IsCoinbase = tx.Inputs[0].IsCoinbase()

	if tx.Outputs, err = c.readTxOutputs(); err != nil {
		return nil, err
	}

	if tx.HasWitness {
		tx.WitnessStacks = make([]WitnessStack, 0, len(tx.Inputs))

		for i := range tx.Inputs {
			stack, err := c.readWitnessStack()
			if err != nil {
				return nil, errors.WithOffset(err, "[readTransaction] witness of input %d", i)
			}

			tx.WitnessStacks = append(tx.WitnessStacks, stack)
		}
	}

	if tx.LockTime, err = c.readUint32("lock time"); err != nil {
		return nil, err
	}

	return &tx, nil
}

// Bytes returns the full wire form, including the segwit marker and witnesses
// when the transaction has them.
func (tx *Transaction) Bytes() []byte {
	return tx.appendTo(make([]byte, 0, tx.Size()), tx.HasWitness)
}

// LegacyBytes returns the wire form without marker and witnesses, the form the txid is computed over.
func (tx *Transaction) LegacyBytes() []byte {
	return tx.appendTo(make([]byte, 0, tx.BaseSize()), false)
}

func (tx *Transaction) appendTo(dst []byte, withWitness bool) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, tx.Version)

	if withWitness {
		dst = append(dst, segwitMarker, segwitFlag)
	}

	dst = AppendVarInt(dst, uint64(len(tx.Inputs)))
	for _, input := range tx.Inputs {
		dst = input.appendTo(dst)
	}

	dst = AppendVarInt(dst, uint64(len(tx.Outputs)))
	for _, output := range tx.Outputs {
		dst = output.appendTo(dst)
	}

	if withWitness {
		for i := range tx.Inputs {
			var stack WitnessStack
			if i < len(tx.WitnessStacks) {
				stack = tx.WitnessStacks[i]
			}

			dst = stack.appendTo(dst)
		}
	}

	return binary.LittleEndian.AppendUint32(dst, tx.LockTime)
}

// TxID is the double SHA-256 of the legacy serialization.
func (tx *Transaction) TxID() Hash256 {
	return Hash256(util.Sha256d(tx.LegacyBytes()))
}

// WTxID is the double SHA-256 of the full serialization. It equals TxID for a
// transaction without witness data.
func (tx *Transaction) WTxID() Hash256 {
	if !tx.HasWitness {
		return tx.TxID()
	}

	return Hash256(util.Sha256d(tx.Bytes()))
}

// BaseSize is the size of the legacy serialization.
func (tx *Transaction) BaseSize() int {
	size := 4 + varIntLen(len(tx.Inputs)) + varIntLen(len(tx.Outputs)) + 4

	for _, input := range tx.Inputs {
		size += input.Size()
	}

	for _, output := range tx.Outputs {
		size += output.Size()
	}

	return size
}

// Size is the size of the full serialization.
func (tx *Transaction) Size() int {
	size := tx.BaseSize()

	if tx.HasWitness {
		size += 2

		for i := range tx.Inputs {
			if i < len(tx.WitnessStacks) {
				size += tx.WitnessStacks[i].Size()
			} else {
				size++
			}
		}
	}

	return size
}

// Weight counts base bytes four times and witness bytes once.
func (tx *Transaction) Weight() int {
	return 3*tx.BaseSize() + tx.Size()
}

func (tx *Transaction) VirtualSize() int {
	return (tx.Weight() + 3) / 4
}

func (tx *Transaction) TotalOutputValue() uint64 {
	var total uint64
	for _, output := range tx.Outputs {
		total += output.Value
	}

	return total
}
