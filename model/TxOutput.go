package model

import (
	"encoding/binary"

	"github.com/bsv-blockchain/blockdecoder/errors"
)

// minTxOutputSize is a value and a one byte empty script length.
const minTxOutputSize = 8 + 1

type TxOutput struct {
	Value        uint64   `json:"value"`
	PubKeyScript ByteBlob `json:"pub_key_script"`
}

// NewTxOutputFromBytes decodes one output from the front of b and returns the rest.
func NewTxOutputFromBytes(b []byte) (*TxOutput, []byte, error) {
	c := newCursor(b)

	output, err := c.readTxOutput()
	if err != nil {
		return nil, nil, err
	}

	return output, c.rest(), nil
}

// ReadTxOutputs decodes a VarInt count followed by that many outputs.
func ReadTxOutputs(b []byte) ([]*TxOutput, []byte, error) {
	c := newCursor(b)

	outputs, err := c.readTxOutputs()
	if err != nil {
		return nil, nil, err
	}

	return outputs, c.rest(), nil
}

func (c *cursor) readTxOutput() (*TxOutput, error) {
	var (
		output TxOutput
		err    error
	)

	if output.Value, err = c.readUint64("output value"); err != nil {
		return nil, err
	}

	if output.PubKeyScript, err = c.readBlob("pubkey script"); err != nil {
		return nil, err
	}

	return &output, nil
}

func (c *cursor) readTxOutputs() ([]*TxOutput, error) {
	count, err := c.readVarInt("output count")
	if err != nil {
		return nil, err
	}

	outputs := make([]*TxOutput, 0, c.capacity(count, minTxOutputSize))

	for i := uint64(0); i < count; i++ {
		output, err := c.readTxOutput()
		if err != nil {
			return nil, errors.WithOffset(err, "[readTxOutputs] output %d", i)
		}

		outputs = append(outputs, output)
	}

	return outputs, nil
}

func (o *TxOutput) Size() int {
	return 8 + varIntLen(len(o.PubKeyScript)) + len(o.PubKeyScript)
}

func (o *TxOutput) Bytes() []byte {
	return o.appendTo(make([]byte, 0, o.Size()))
}

func (o *TxOutput) appendTo(dst []byte) []byte {
	dst = binary.LittleEndian.AppendUint64(dst, o.Value)
	dst = AppendVarInt(dst, uint64(len(o.PubKeyScript)))

	return append(dst, o.PubKeyScript...)
}
