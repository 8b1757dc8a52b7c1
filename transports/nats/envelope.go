package nats

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// RequestEnvelope carries an HTTP request over NATS.
type RequestEnvelope struct {
	Method string              `msgpack:"method"`
	URL    string              `msgpack:"url"`
	Header map[string][]string `msgpack:"header,omitempty"`
	Body   []byte              `msgpack:"body,omitempty"`
}

// ResponseEnvelope carries an HTTP response, or the reason one could not be
// produced, back to the requester.
type ResponseEnvelope struct {
	StatusCode int                 `msgpack:"statusCode"`
	Header     map[string][]string `msgpack:"header,omitempty"`
	Body       []byte              `msgpack:"body,omitempty"`
	Error      string              `msgpack:"error,omitempty"`
}

// newRequestEnvelope consumes and closes the request body.
func newRequestEnvelope(req *http.Request) (*RequestEnvelope, error) {
	env := &RequestEnvelope{
		Method: req.Method,
		URL:    req.URL.String(),
		Header: req.Header.Clone(),
	}
	if req.Body != nil && req.Body != http.NoBody {
		defer req.Body.Close()
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		env.Body = body
	}
	return env, nil
}

func (e *RequestEnvelope) toRequest(ctx context.Context) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, e.Method, e.URL, bytes.NewReader(e.Body))
	if err != nil {
		return nil, err
	}
	if e.Header != nil {
		req.Header = http.Header(e.Header)
	}
	req.RequestURI = req.URL.RequestURI()
	return req, nil
}

func (e *ResponseEnvelope) toResponse(req *http.Request) *http.Response {
	header := http.Header(e.Header)
	if header == nil {
		header = make(http.Header)
	}
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode)),
		StatusCode:    e.StatusCode,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(e.Body)),
		ContentLength: int64(len(e.Body)),
		Request:       req,
	}
}

// responseWriter buffers a handler's response so it can be sent as a single
// NATS reply.
type responseWriter struct {
	header     http.Header
	statusCode int
	body       bytes.Buffer
}

var _ http.ResponseWriter = &responseWriter{}

func newResponseWriter() *responseWriter {
	return &responseWriter{header: make(http.Header)}
}

func (w *responseWriter) Header() http.Header {
	return w.header
}

func (w *responseWriter) WriteHeader(statusCode int) {
	if w.statusCode != 0 {
		return
	}
	w.statusCode = statusCode
}

func (w *responseWriter) Write(p []byte) (int, error) {
	if w.statusCode == 0 {
		w.WriteHeader(http.StatusOK)
	}
	return w.body.Write(p)
}

func (w *responseWriter) envelope() *ResponseEnvelope {
	statusCode := w.statusCode
	if statusCode == 0 {
		statusCode = http.StatusOK
	}
	return &ResponseEnvelope{
		StatusCode: statusCode,
		Header:     w.header,
		Body:       w.body.Bytes(),
	}
}
