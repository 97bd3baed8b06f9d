package model

import (
	"encoding/binary"

	"github.com/bsv-blockchain/blockdecoder/errors"
)

// minTxInputSize is a hash, an index, a one byte empty script length and a sequence.
const minTxInputSize = HashSize + 4 + 1 + 4

type TxInput struct {
	PreviousTxHash      Hash256  `json:"previous_tx_hash"`
	PreviousOutputIndex uint32   `json:"previous_output_index"`
	SignatureScript     ByteBlob `json:"signature_script"`
	Sequence            uint32   `json:"sequence"`
}

// NewTxInputFromBytes decodes one input from the front of b and returns the rest.
func NewTxInputFromBytes(b []byte) (*TxInput, []byte, error) {
	c := newCursor(b)

	input, err := c.readTxInput()
	if err != nil {
		return nil, nil, err
	}

	return input, c.rest(), nil
}

// ReadTxInputs decodes a VarInt count followed by that many inputs.
func ReadTxInputs(b []byte) ([]*TxInput, []byte, error) {
	c := newCursor(b)

	inputs, err := c.readTxInputs()
	if err != nil {
		return nil, nil, err
	}

	return inputs, c.rest(), nil
}

func (c *cursor) readTxInput() (*TxInput, error) {
	var (
		input TxInput
		err   error
	)

	if input.PreviousTxHash, err = c.readHash("previous tx hash"); err != nil {
		return nil, err
	}

	if input.PreviousOutputIndex, err = c.readUint32("previous output index"); err != nil {
		return nil, err
	}

	if input.SignatureScript, err = c.readBlob("signature script"); err != nil {
		return nil, err
	}

	if input.Sequence, err = c.readUint32("sequence"); err != nil {
		return nil, err
	}

	return &input, nil
}

func (c *cursor) readTxInputs() ([]*TxInput, error) {
	count, err := c.readVarInt("input count")
	if err != nil {
		return nil, err
	}

	inputs := make([]*TxInput, 0, c.capacity(count, minTxInputSize))

	for i := uint64(0); i < count; i++ {
		input, err := c.readTxInput()
		if err != nil {
			return nil, errors.WithOffset(err, "[readTxInputs] input %d", i)
		}

		inputs = append(inputs, input)
	}

	return inputs, nil
}

// IsCoinbase reports whether the input spends nothing, which only a coinbase input does.
func (i *TxInput) IsCoinbase() bool {
	return i.PreviousTxHash.IsZero()
}

func (i *TxInput) Size() int {
	return HashSize + 4 + varIntLen(len(i.SignatureScript)) + len(i.SignatureScript) + 4
}

func (i *TxInput) Bytes() []byte {
	return i.appendTo(make([]byte, 0, i.Size()))
}

func (i *TxInput) appendTo(dst []byte) []byte {
	dst = append(dst, i.PreviousTxHash[:]...)
	dst = binary.LittleEndian.AppendUint32(dst, i.PreviousOutputIndex)
	dst = AppendVarInt(dst, uint64(len(i.SignatureScript)))
	dst = append(dst, i.SignatureScript...)

	return binary.LittleEndian.AppendUint32(dst, i.Sequence)
}
