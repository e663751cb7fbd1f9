package ports

import (
	"context"
	"encoding/json"
	"errors"
)

// Transport failures shared by Messenger implementations. They mirror the
// diagnostics a browser reports through runtime.lastError.
var (
	ErrHostNotFound = errors.New("specified native messaging host not found")
	ErrForbidden    = errors.New("access to the specified native messaging host is forbidden")
	ErrHostExited   = errors.New("native host has exited")
	ErrHostStart    = errors.New("failed to start native messaging host")
	ErrHostProtocol = errors.New("error when communicating with the native messaging host")
)

// Messenger delivers a single message to a native host and waits for its
// single response.
//
// Implementations must issue exactly one request per call, never retry, and
// return either the host's raw JSON response or an error. The response is
// opaque to callers.
type Messenger interface {
	SendNativeMessage(ctx context.Context, application string, message any) (json.RawMessage, error)
}

// MessengerFunc adapts a function to the Messenger interface.
type MessengerFunc func(ctx context.Context, application string, message any) (json.RawMessage, error)

func (f MessengerFunc) SendNativeMessage(ctx context.Context, application string, message any) (json.RawMessage, error) {
	return f(ctx, application, message)
}
