package errors

import "strconv"

// ERR is the numeric code carried by every *Error. Codes are grouped in ranges
// of ten so that GetErrorCategory can classify them without a lookup table.
type ERR int32

const (
	ERR_UNKNOWN          ERR = 0
	ERR_INVALID_ARGUMENT ERR = 1
	ERR_PROCESSING       ERR = 4
	ERR_CONFIGURATION    ERR = 5
	ERR_CONTEXT_CANCELED ERR = 7

	ERR_BLOCK_INVALID ERR = 11

	ERR_TX_INVALID ERR = 31

	// decode failures, never retryable
	ERR_INSUFFICIENT_INPUT ERR = 120
	ERR_MALFORMED          ERR = 121
)

var ERR_name = map[int32]string{
	0:   "UNKNOWN",
	1:   "INVALID_ARGUMENT",
	4:   "PROCESSING",
	5:   "CONFIGURATION",
	7:   "CONTEXT_CANCELED",
	11:  "BLOCK_INVALID",
	31:  "TX_INVALID",
	120: "INSUFFICIENT_INPUT",
	121: "MALFORMED",
}

func (x ERR) String() string {
	if name, ok := ERR_name[int32(x)]; ok {
		return name
	}

	return strconv.Itoa(int(x))
}
