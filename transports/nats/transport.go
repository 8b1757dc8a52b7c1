// Package nats provides a NATS transport for protohttp.
// It carries HTTP exchanges over NATS request/reply so protobuf requests built
// with protohttp can reach services that only listen on a broker.
package nats

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// DefaultTimeout bounds an exchange when the request context has no deadline.
const DefaultTimeout = 30 * time.Second

// DefaultPrefix is the first token of every subject used by the transport.
const DefaultPrefix = "protohttp"

// ErrPayloadTooLarge is returned when an encoded exchange exceeds the
// connection's maximum payload.
var ErrPayloadTooLarge = errors.New("nats: payload exceeds max payload")

// Option configures a Transport or a served handler.
type Option func(*options)

type options struct {
	prefix  string
	timeout time.Duration
	logger  zerolog.Logger
}

func newOptions(opts []Option) options {
	o := options{
		prefix:  DefaultPrefix,
		timeout: DefaultTimeout,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithPrefix sets the first subject token. Both sides of an exchange must use
// the same prefix.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithTimeout sets the exchange timeout used when a request context has no
// deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Transport implements http.RoundTripper over NATS. The request host selects
// the subject, so http://user-service/items is sent to protohttp.user-service.
type Transport struct {
	NatsConnection *nats.Conn
	options        options
}

var _ http.RoundTripper = &Transport{}

// NewTransport creates a new NATS transport using the provided connection.
func NewTransport(natsConnection *nats.Conn, opts ...Option) *Transport {
	return &Transport{
		NatsConnection: natsConnection,
		options:        newOptions(opts),
	}
}

// Client returns an *http.Client that sends every request through t.
func (t *Transport) Client() *http.Client {
	return &http.Client{Transport: t}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	env, err := newRequestEnvelope(req)
	if err != nil {
		return nil, err
	}

	data, err := msgpack.Marshal(env)
	if err != nil {
		return nil, err
	}
	if maxPayload := t.NatsConnection.MaxPayload(); maxPayload > 0 && int64(len(data)) > maxPayload {
		return nil, ErrPayloadTooLarge
	}

	ctx := req.Context()
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.options.timeout)
		defer cancel()
	}

	subject := namespace(t.options.prefix, req.URL.Hostname())
	t.options.logger.Debug().
		Str("subject", subject).
		Str("method", req.Method).
		Str("url", env.URL).
		Int("size", len(data)).
		Msg("sending request")

	replyMsg, err := t.NatsConnection.RequestWithContext(ctx, subject, data)
	if err != nil {
		return nil, err
	}

	var replyEnv ResponseEnvelope
	if err := msgpack.Unmarshal(replyMsg.Data, &replyEnv); err != nil {
		return nil, err
	}
	if replyEnv.Error != "" {
		return nil, errors.New(replyEnv.Error)
	}

	t.options.logger.Debug().
		Str("subject", subject).
		Int("status", replyEnv.StatusCode).
		Msg("received response")

	return replyEnv.toResponse(req), nil
}
