package protohttp

import (
	"context"
	"net/http"

	"google.golang.org/protobuf/proto"
)

// RequestBuilder stages an outgoing request. Each method mutates the staged
// request and returns the builder so calls can be chained:
//
//	b, err := protohttp.NewRequest(ctx, http.MethodPost, url)
//	...
//	b, err = b.AcceptProtobuf().Protobuf(item)
//	...
//	resp, err := b.Send(client)
type RequestBuilder struct {
	req *http.Request
}

// NewRequest creates a builder for a request with no body.
func NewRequest(ctx context.Context, method, url string) (*RequestBuilder, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	return &RequestBuilder{req: req}, nil
}

// Wrap takes ownership of req. The caller should not use req directly after
// wrapping it.
func Wrap(req *http.Request) *RequestBuilder {
	return &RequestBuilder{req: req}
}

// Header sets a header on the staged request, replacing any existing values.
func (b *RequestBuilder) Header(key, value string) *RequestBuilder {
	setHeader(b.req, key, value)
	return b
}

// AcceptProtobuf marks the request as accepting protobuf responses.
func (b *RequestBuilder) AcceptProtobuf() *RequestBuilder {
	AcceptProtobuf(b.req)
	return b
}

// Protobuf attaches m as the encoded request body. On failure the staged
// request is left as it was and nil is returned with the error.
func (b *RequestBuilder) Protobuf(m proto.Message) (*RequestBuilder, error) {
	if _, err := Protobuf(b.req, m); err != nil {
		return nil, err
	}
	return b, nil
}

// Accept marks the request as accepting bodies produced by encoder.
func (b *RequestBuilder) Accept(encoder Encoder) *RequestBuilder {
	Accept(b.req, encoder)
	return b
}

// Body attaches v encoded with encoder as the request body.
func (b *RequestBuilder) Body(encoder Encoder, v any) (*RequestBuilder, error) {
	if _, err := Body(b.req, encoder, v); err != nil {
		return nil, err
	}
	return b, nil
}

// Request returns the staged request.
func (b *RequestBuilder) Request() *http.Request {
	return b.req
}

// Send submits the staged request with client, or http.DefaultClient when
// client is nil.
func (b *RequestBuilder) Send(client *http.Client) (*http.Response, error) {
	if client == nil {
		client = http.DefaultClient
	}
	return client.Do(b.req)
}
