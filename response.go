package protohttp

import (
	"context"
	"errors"
	"io"
	"math"
	"net/http"

	"google.golang.org/protobuf/proto"
)

// MaxDecodeSize is the largest response body the decoders will read. Zero or
// a negative value means no limit.
var MaxDecodeSize = int64(0)

var errNilResponse = errors.New("protohttp: nil response")

// ErrNoMessageType is returned by Decode when T is not a concrete message type.
var ErrNoMessageType = errors.New("protohttp: decode target has no message type")

// Decode reads the full body of resp and decodes it into a new T. T must be a
// concrete generated message pointer type such as *examplepb.Item; for
// dynamic messages use Into.
//
// The body is always closed. If ctx is done before the body has been read the
// body is closed, the read is abandoned and a transport *DecodeError wrapping
// ctx.Err() is returned without waiting for the read to finish.
func Decode[T proto.Message](ctx context.Context, resp *http.Response) (T, error) {
	var zero T
	if any(zero) == nil {
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		return zero, malformedError(ErrNoMessageType)
	}
	m := zero.ProtoReflect().Type().New().Interface().(T)
	if err := Into(ctx, resp, m); err != nil {
		return zero, err
	}
	return m, nil
}

// Into reads the full body of resp and merges it into m. Fields already set on
// m are kept unless the body overrides them.
func Into(ctx context.Context, resp *http.Response, m proto.Message) error {
	data, err := readBody(ctx, resp)
	if err != nil {
		return transportError(err)
	}
	if err := (proto.UnmarshalOptions{Merge: true}).Unmarshal(data, m); err != nil {
		return malformedError(err)
	}
	return nil
}

// IntoWith reads the full body of resp and decodes it into v using encoder.
func IntoWith(ctx context.Context, resp *http.Response, encoder Encoder, v any) error {
	data, err := readBody(ctx, resp)
	if err != nil {
		return transportError(err)
	}
	if err := encoder.Decode(data, v); err != nil {
		return malformedError(err)
	}
	return nil
}

type readResult struct {
	data []byte
	err  error
}

func readBody(ctx context.Context, resp *http.Response) ([]byte, error) {
	if resp == nil {
		return nil, errNilResponse
	}
	body := resp.Body
	if body == nil || body == http.NoBody {
		return nil, nil
	}

	limit := MaxDecodeSize
	done := make(chan readResult, 1)
	go func() {
		r := io.Reader(body)
		if limit > 0 && limit < math.MaxInt64 {
			r = io.LimitReader(body, limit+1)
		}
		data, err := io.ReadAll(r)
		done <- readResult{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		// For net/http bodies Close also unblocks the pending read.
		body.Close()
		return nil, ctx.Err()
	case r := <-done:
		body.Close()
		if r.err != nil {
			return nil, r.err
		}
		if limit > 0 && int64(len(r.data)) > limit {
			return nil, ErrBodyTooLarge
		}
		return r.data, nil
	}
}
