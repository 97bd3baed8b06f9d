package errors

import (
	"fmt"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrDataI is the key/value payload attached to an *Error.
type ErrDataI interface {
	EncodeErrorData() []byte
	Error() string
	GetData(key string) interface{}
	SetData(key string, value interface{})
}

// Fields is the default ErrDataI, a plain map rendered in key order.
type Fields map[string]interface{}

func (f Fields) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s=%v", k, f[k])
	}

	return sb.String()
}

func (f Fields) SetData(key string, value interface{}) {
	f[key] = value
}

func (f Fields) GetData(key string) interface{} {
	return f[key]
}

// EncodeErrorData returns the fields as JSON, or an empty slice when a value cannot be encoded.
func (f Fields) EncodeErrorData() []byte {
	b, err := json.Marshal(map[string]interface{}(f))
	if err != nil {
		return []byte{}
	}

	return b
}

// GetErrorData is the inverse of EncodeErrorData. JSON numbers decode as float64,
// the offset is turned back into an int.
func GetErrorData(b []byte) (ErrDataI, error) {
	f := Fields{}
	if err := json.Unmarshal(b, &f); err != nil {
		return f, err
	}

	if v, ok := f[offsetKey].(float64); ok {
		f[offsetKey] = int(v)
	}

	return f, nil
}
