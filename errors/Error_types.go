package errors

var (
	ErrInvalidArgument   = New(ERR_INVALID_ARGUMENT, "invalid argument")
	ErrProcessing        = New(ERR_PROCESSING, "error processing")
	ErrConfiguration     = New(ERR_CONFIGURATION, "configuration error")
	ErrContextCanceled   = New(ERR_CONTEXT_CANCELED, "context canceled")
	ErrBlockInvalid      = New(ERR_BLOCK_INVALID, "block invalid")
	ErrTxInvalid         = New(ERR_TX_INVALID, "tx invalid")
	ErrInsufficientInput = New(ERR_INSUFFICIENT_INPUT, "insufficient input")
	ErrMalformed         = New(ERR_MALFORMED, "malformed input")
)

const offsetKey = "offset"

func NewInvalidArgumentError(message string, params ...interface{}) error {
	return New(ERR_INVALID_ARGUMENT, message, params...)
}

func NewProcessingError(message string, params ...interface{}) error {
	return New(ERR_PROCESSING, message, params...)
}

func NewConfigurationError(message string, params ...interface{}) error {
	return New(ERR_CONFIGURATION, message, params...)
}

func NewContextCanceledError(message string, params ...interface{}) error {
	return New(ERR_CONTEXT_CANCELED, message, params...)
}

func NewBlockInvalidError(message string, params ...interface{}) error {
	return New(ERR_BLOCK_INVALID, message, params...)
}

// NewTxInvalidError reports a transaction that decoded but is not acceptable in
// its block, such as a repeated txid.
func NewTxInvalidError(message string, params ...interface{}) error {
	return New(ERR_TX_INVALID, message, params...)
}

// NewInsufficientInputError reports a read that needed more bytes than remained.
// offset is the absolute position in the decoded buffer where the read started.
func NewInsufficientInputError(offset int, message string, params ...interface{}) error {
	err := New(ERR_INSUFFICIENT_INPUT, message, params...)
	err.SetData(offsetKey, offset)

	return err
}

// NewMalformedError reports a structurally impossible value at offset.
func NewMalformedError(offset int, message string, params ...interface{}) error {
	err := New(ERR_MALFORMED, message, params...)
	err.SetData(offsetKey, offset)

	return err
}

// WithOffset wraps err in a new error with the same code, adding context to the
// message. The offset of err is kept so that Offset still resolves it.
func WithOffset(err error, message string, params ...interface{}) error {
	if err == nil {
		return nil
	}

	code := ERR_PROCESSING

	var tErr *Error
	if As(err, &tErr) {
		code = tErr.Code()
	}

	wrapped := New(code, message, append(params, err)...)
	if offset, ok := Offset(err); ok {
		wrapped.SetData(offsetKey, offset)
	}

	return wrapped
}
