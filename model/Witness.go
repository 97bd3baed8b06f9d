package model

import (
	"encoding/hex"

	"github.com/bsv-blockchain/blockdecoder/errors"
)

// Witness is one witness item. A zero length Witness is the empty variant.
type Witness []byte

// WitnessStack holds the witness items of one input. A stack is never a zero
// length list: an input without witness data carries one empty Witness so
// that stacks stay aligned with inputs.
type WitnessStack []Witness

func (w Witness) IsEmpty() bool {
	return len(w) == 0
}

func (w Witness) String() string {
	return hex.EncodeToString(w)
}

// MarshalJSON renders an empty witness as null and a present one as hex.
func (w Witness) MarshalJSON() ([]byte, error) {
	if w.IsEmpty() {
		return []byte("null"), nil
	}

	return []byte(`"` + w.String() + `"`), nil
}

// ReadWitnessStack decodes the witness stack of one input from the front of b.
func ReadWitnessStack(b []byte) (WitnessStack, []byte, error) {
	c := newCursor(b)

	stack, err := c.readWitnessStack()
	if err != nil {
		return nil, nil, err
	}

	return stack, c.rest(), nil
}

func (c *cursor) readWitnessStack() (WitnessStack, error) {
	count, err := c.readVarInt("witness item count")
	if err != nil {
		return nil, err
	}

	if count == 0 {
		return WitnessStack{nil}, nil
	}

	stack := make(WitnessStack, 0, c.capacity(count, 1))

	for i := uint64(0); i < count; i++ {
		item, err := c.readBlob("witness item")
		if err != nil {
			return nil, errors.WithOffset(err, "[readWitnessStack] item %d", i)
		}

		if len(item) == 0 {
			stack = append(stack, nil)
			continue
		}

		stack = append(stack, Witness(item))
	}

	return stack, nil
}

// IsEmpty reports whether the stack is the placeholder of an input with no witness data.
func (s WitnessStack) IsEmpty() bool {
	return len(s) == 0 || (len(s) == 1 && s[0].IsEmpty())
}

func (s WitnessStack) Size() int {
	if s.IsEmpty() {
		return 1
	}

	size := varIntLen(len(s))
	for _, w := range s {
		size += varIntLen(len(w)) + len(w)
	}

	return size
}

// appendTo writes the stack. The placeholder stack is written as a zero item count.
func (s WitnessStack) appendTo(dst []byte) []byte {
	if s.IsEmpty() {
		return append(dst, 0x00)
	}

	dst = AppendVarInt(dst, uint64(len(s)))
	for _, w := range s {
		dst = AppendVarInt(dst, uint64(len(w)))
		dst = append(dst, w...)
	}

	return dst
}
