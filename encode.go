package jsonrepair

import "github.com/vmihailenco/msgpack/v5"

// EncodeMsgpack repairs and decodes input, then re-encodes the result as
// MessagePack, for callers that would rather consume a compact binary
// form than JSON text.
func EncodeMsgpack(input string, opts ...Option) ([]byte, error) {
	v, err := Decode(input, opts...)
	if err != nil {
		return nil, err
	}
	return msgpack.Marshal(v)
}
