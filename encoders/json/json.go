// Package json provides a JSON encoder for protohttp bodies.
// It uses Go's standard encoding/json package for serialization.
package json

import (
	"encoding/json"

	"github.com/RobertWHurst/protohttp"
)

// ContentType is the media type of JSON bodies.
const ContentType = "application/json"

// Encoder implements protohttp.Encoder using JSON serialization.
// It is useful for peers that cannot speak protobuf.
type Encoder struct{}

var _ protohttp.Encoder = &Encoder{}

// Encode serializes v to JSON bytes.
func (e *Encoder) Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Decode deserializes JSON bytes into v.
func (d *Encoder) Decode(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// ContentType returns application/json.
func (e *Encoder) ContentType() string {
	return ContentType
}

// New creates a new JSON encoder.
func New() *Encoder {
	return &Encoder{}
}
