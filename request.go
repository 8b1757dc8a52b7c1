// Package protohttp adds protobuf bodies to net/http requests and responses.
// Requests are marked with the application/protobuf media type and response
// bodies are decoded straight into a typed message.
package protohttp

import (
	"bytes"
	"io"
	"net/http"

	"google.golang.org/protobuf/proto"
)

// ContentTypeProtobuf is the media type advertised for protobuf bodies. It is
// not the registered IANA value; peers are expected to agree on it.
const ContentTypeProtobuf = "application/protobuf"

const (
	HeaderAccept      = "Accept"
	HeaderContentType = "Content-Type"
)

// AcceptProtobuf sets the Accept header of req to application/protobuf and
// returns req. Any previous Accept value is replaced.
func AcceptProtobuf(req *http.Request) *http.Request {
	setHeader(req, HeaderAccept, ContentTypeProtobuf)
	return req
}

// Protobuf encodes m and attaches it as the body of req, setting the
// Content-Type header to application/protobuf. Callers must continue with the
// returned request. If encoding fails an *EncodeError is returned and req is
// not modified.
func Protobuf(req *http.Request, m proto.Message) (*http.Request, error) {
	buf, err := proto.Marshal(m)
	if err != nil {
		return nil, &EncodeError{Err: err}
	}
	setHeader(req, HeaderContentType, ContentTypeProtobuf)
	setBody(req, buf)
	return req, nil
}

// Accept sets the Accept header of req to the content type of encoder.
func Accept(req *http.Request, encoder Encoder) *http.Request {
	setHeader(req, HeaderAccept, encoder.ContentType())
	return req
}

// Body encodes v with encoder and attaches it as the body of req. It follows
// the same rules as Protobuf.
func Body(req *http.Request, encoder Encoder, v any) (*http.Request, error) {
	buf, err := encoder.Encode(v)
	if err != nil {
		return nil, &EncodeError{Err: err}
	}
	setHeader(req, HeaderContentType, encoder.ContentType())
	setBody(req, buf)
	return req, nil
}

func setHeader(req *http.Request, key, value string) {
	if req.Header == nil {
		req.Header = make(http.Header)
	}
	req.Header.Set(key, value)
}

// setBody mirrors what http.NewRequest does for a *bytes.Reader so the body
// can be replayed on redirects.
func setBody(req *http.Request, buf []byte) {
	req.ContentLength = int64(len(buf))
	if len(buf) == 0 {
		req.Body = http.NoBody
		req.GetBody = func() (io.ReadCloser, error) { return http.NoBody, nil }
		return
	}
	req.Body = io.NopCloser(bytes.NewReader(buf))
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(buf)), nil
	}
}
