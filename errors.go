package protohttp

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport matches any DecodeError raised while reading the response body.
	ErrTransport = errors.New("protohttp: transport error")
	// ErrMalformed matches any DecodeError raised while parsing the response body.
	ErrMalformed = errors.New("protohttp: malformed body")
	// ErrBodyTooLarge is wrapped in a transport DecodeError when the body exceeds
	// MaxDecodeSize.
	ErrBodyTooLarge = errors.New("protohttp: body exceeds MaxDecodeSize")
)

// EncodeError is returned when a message could not be serialized for a request
// body. The request is left untouched when it is returned.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("protohttp: failed to encode body: %v", e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// DecodeErrorKind tells apart the two ways decoding a response can fail.
type DecodeErrorKind int

const (
	// DecodeErrorTransport means the body bytes could not be fully retrieved.
	DecodeErrorTransport DecodeErrorKind = iota
	// DecodeErrorMalformed means the bytes did not parse as the target message.
	DecodeErrorMalformed
)

func (k DecodeErrorKind) String() string {
	switch k {
	case DecodeErrorTransport:
		return "transport"
	case DecodeErrorMalformed:
		return "malformed"
	default:
		return fmt.Sprintf("DecodeErrorKind(%d)", int(k))
	}
}

// DecodeError is returned by the response decoders. Err is the underlying
// transport or parse error, unchanged.
type DecodeError struct {
	Kind DecodeErrorKind
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Kind == DecodeErrorTransport {
		return fmt.Sprintf("protohttp: failed to extract body bytes: %v", e.Err)
	}
	return fmt.Sprintf("protohttp: failed to decode body: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is reports ErrTransport or ErrMalformed according to the error's kind.
func (e *DecodeError) Is(target error) bool {
	switch target {
	case ErrTransport:
		return e.Kind == DecodeErrorTransport
	case ErrMalformed:
		return e.Kind == DecodeErrorMalformed
	}
	return false
}

func transportError(err error) *DecodeError {
	return &DecodeError{Kind: DecodeErrorTransport, Err: err}
}

func malformedError(err error) *DecodeError {
	return &DecodeError{Kind: DecodeErrorMalformed, Err: err}
}
