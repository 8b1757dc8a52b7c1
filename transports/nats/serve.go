package nats

import (
	"context"
	"net/http"

	"github.com/nats-io/nats.go"
	"github.com/vmihailenco/msgpack/v5"
)

// Serve exposes handler to Transport clients addressing host. Instances
// serving the same host share the load through a queue group. Unsubscribe the
// returned subscription to stop serving.
func Serve(natsConnection *nats.Conn, host string, handler http.Handler, opts ...Option) (*nats.Subscription, error) {
	o := newOptions(opts)
	subject := namespace(o.prefix, host)

	return natsConnection.QueueSubscribe(subject, subject, func(natsMsg *nats.Msg) {
		replyBuf, err := encodeReply(serveMsg(o, handler, natsMsg.Data), natsConnection.MaxPayload())
		if err != nil {
			o.logger.Error().Err(err).Str("subject", subject).Msg("failed to encode response")
			return
		}

		if err := natsMsg.Respond(replyBuf); err != nil {
			o.logger.Error().Err(err).Str("subject", subject).Msg("failed to send response")
		}
	})
}

func serveMsg(o options, handler http.Handler, data []byte) *ResponseEnvelope {
	var env RequestEnvelope
	if err := msgpack.Unmarshal(data, &env); err != nil {
		return &ResponseEnvelope{Error: err.Error()}
	}

	ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
	defer cancel()

	req, err := env.toRequest(ctx)
	if err != nil {
		return &ResponseEnvelope{Error: err.Error()}
	}

	o.logger.Debug().Str("method", req.Method).Str("url", env.URL).Msg("serving request")

	w := newResponseWriter()
	handler.ServeHTTP(w, req)
	return w.envelope()
}

// encodeReply marshals reply, replacing it with an ErrPayloadTooLarge envelope
// when it would not fit in maxPayload.
func encodeReply(reply *ResponseEnvelope, maxPayload int64) ([]byte, error) {
	replyBuf, err := msgpack.Marshal(reply)
	if err != nil {
		return nil, err
	}
	if maxPayload > 0 && int64(len(replyBuf)) > maxPayload {
		return msgpack.Marshal(&ResponseEnvelope{Error: ErrPayloadTooLarge.Error()})
	}
	return replyBuf, nil
}
