package protobuf

import (
	"fmt"

	"google.golang.org/protobuf/proto"

	"github.com/RobertWHurst/protohttp"
)

type Encoder struct{}

var _ protohttp.Encoder = &Encoder{}

func (e *Encoder) Encode(v any) ([]byte, error) {
	if m, ok := v.(proto.Message); ok {
		return proto.Marshal(m)
	}
	return nil, fmt.Errorf("v must implement proto.Message")
}

func (e *Encoder) Decode(data []byte, v any) error {
	if m, ok := v.(proto.Message); ok {
		return proto.UnmarshalOptions{Merge: true}.Unmarshal(data, m)
	}
	return fmt.Errorf("v must implement proto.Message")
}

func (e *Encoder) ContentType() string {
	return protohttp.ContentTypeProtobuf
}

func New() *Encoder {
	return &Encoder{}
}
