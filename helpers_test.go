package protohttp

import (
	"bytes"
	"io"
	"net/http"
	"sync"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

type mockEncoder struct {
	encodeFunc  func(v any) ([]byte, error)
	decodeFunc  func(data []byte, v any) error
	contentType string
}

func (m *mockEncoder) Encode(v any) ([]byte, error) {
	if m.encodeFunc != nil {
		return m.encodeFunc(v)
	}
	return []byte("encoded"), nil
}

func (m *mockEncoder) Decode(data []byte, v any) error {
	if m.decodeFunc != nil {
		return m.decodeFunc(data, v)
	}
	return nil
}

func (m *mockEncoder) ContentType() string {
	if m.contentType != "" {
		return m.contentType
	}
	return "application/x-mock"
}

// itemType is a message type equivalent to
//
//	message Item { int64 id = 1; string name = 2; }
var itemType = func() protoreflect.MessageType {
	fd := &descriptorpb.FileDescriptorProto{
		Name:    proto.String("protohttp/test/item.proto"),
		Package: proto.String("protohttp.test"),
		Syntax:  proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{{
			Name: proto.String("Item"),
			Field: []*descriptorpb.FieldDescriptorProto{
				{
					Name:     proto.String("id"),
					JsonName: proto.String("id"),
					Number:   proto.Int32(1),
					Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
					Type:     descriptorpb.FieldDescriptorProto_TYPE_INT64.Enum(),
				},
				{
					Name:     proto.String("name"),
					JsonName: proto.String("name"),
					Number:   proto.Int32(2),
					Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
					Type:     descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum(),
				},
			},
		}},
	}
	file, err := protodesc.NewFile(fd, new(protoregistry.Files))
	if err != nil {
		panic(err)
	}
	return dynamicpb.NewMessageType(file.Messages().ByName("Item"))
}()

func newItem(id int64, name string) proto.Message {
	m := itemType.New()
	fields := m.Descriptor().Fields()
	if id != 0 {
		m.Set(fields.ByName("id"), protoreflect.ValueOfInt64(id))
	}
	if name != "" {
		m.Set(fields.ByName("name"), protoreflect.ValueOfString(name))
	}
	return m.Interface()
}

func itemFields(m proto.Message) (int64, string) {
	r := m.ProtoReflect()
	fields := r.Descriptor().Fields()
	return r.Get(fields.ByName("id")).Int(), r.Get(fields.ByName("name")).String()
}

func newResponse(body io.ReadCloser) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{HeaderContentType: []string{ContentTypeProtobuf}},
		Body:       body,
	}
}

func bytesResponse(data []byte) *http.Response {
	return newResponse(io.NopCloser(bytes.NewReader(data)))
}

// errBody yields data and then fails with err.
type errBody struct {
	data   []byte
	err    error
	closed bool
}

func (b *errBody) Read(p []byte) (int, error) {
	if len(b.data) > 0 {
		n := copy(p, b.data)
		b.data = b.data[n:]
		return n, nil
	}
	return 0, b.err
}

func (b *errBody) Close() error {
	b.closed = true
	return nil
}

// blockingBody blocks every read until it is closed.
type blockingBody struct {
	once   sync.Once
	closed chan struct{}
}

func newBlockingBody() *blockingBody {
	return &blockingBody{closed: make(chan struct{})}
}

func (b *blockingBody) Read(p []byte) (int, error) {
	<-b.closed
	return 0, io.ErrClosedPipe
}

func (b *blockingBody) Close() error {
	b.once.Do(func() { close(b.closed) })
	return nil
}

func (b *blockingBody) isClosed() bool {
	select {
	case <-b.closed:
		return true
	default:
		return false
	}
}

// stuckBody ignores Close; reads block until release is closed.
type stuckBody struct {
	release chan struct{}
}

func (b *stuckBody) Read(p []byte) (int, error) {
	<-b.release
	return 0, io.EOF
}

func (b *stuckBody) Close() error {
	return nil
}
