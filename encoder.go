package protohttp

// Encoder defines the interface for body serialization and deserialization.
// Implementations include JSON, MessagePack, and Protocol Buffers encoders.
type Encoder interface {
	// Encode serializes v into bytes.
	Encode(v any) ([]byte, error)

	// Decode deserializes data into v.
	Decode(data []byte, v any) error

	// ContentType is the media type sent in the Accept and Content-Type
	// headers for bodies produced by this encoder.
	ContentType() string
}
