package protohttp

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeErrorIs(t *testing.T) {
	cause := errors.New("cause")

	tests := []struct {
		name      string
		err       error
		transport bool
		malformed bool
	}{
		{
			name:      "transport",
			err:       transportError(cause),
			transport: true,
		},
		{
			name:      "malformed",
			err:       malformedError(cause),
			malformed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if errors.Is(tt.err, ErrTransport) != tt.transport {
				t.Errorf("Expected errors.Is(ErrTransport) to be %v", tt.transport)
			}
			if errors.Is(tt.err, ErrMalformed) != tt.malformed {
				t.Errorf("Expected errors.Is(ErrMalformed) to be %v", tt.malformed)
			}
			if !errors.Is(tt.err, cause) {
				t.Error("Expected cause to be wrapped")
			}
			if !strings.Contains(tt.err.Error(), "cause") {
				t.Errorf("Expected message to include cause, got '%s'", tt.err.Error())
			}
		})
	}
}

func TestEncodeErrorUnwrap(t *testing.T) {
	cause := errors.New("cause")
	err := error(&EncodeError{Err: cause})

	if !errors.Is(err, cause) {
		t.Error("Expected cause to be wrapped")
	}

	if errors.Is(err, ErrTransport) || errors.Is(err, ErrMalformed) {
		t.Error("Expected EncodeError not to match decode sentinels")
	}
}

func TestDecodeErrorKindString(t *testing.T) {
	if DecodeErrorTransport.String() != "transport" {
		t.Errorf("Expected 'transport', got '%s'", DecodeErrorTransport.String())
	}
	if DecodeErrorMalformed.String() != "malformed" {
		t.Errorf("Expected 'malformed', got '%s'", DecodeErrorMalformed.String())
	}
	if DecodeErrorKind(9).String() != "DecodeErrorKind(9)" {
		t.Errorf("Unexpected string '%s'", DecodeErrorKind(9).String())
	}
}
