// Package msgpack provides a MessagePack encoder for protohttp bodies.
// MessagePack is a binary format that is faster and more compact than JSON
// and needs no schema.
package msgpack

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/RobertWHurst/protohttp"
)

// ContentType is the media type of MessagePack bodies.
const ContentType = "application/msgpack"

// Encoder implements protohttp.Encoder using MessagePack binary serialization.
type Encoder struct{}

var _ protohttp.Encoder = &Encoder{}

func (e *Encoder) Encode(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (d *Encoder) Decode(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}

func (e *Encoder) ContentType() string {
	return ContentType
}

func New() *Encoder {
	return &Encoder{}
}
