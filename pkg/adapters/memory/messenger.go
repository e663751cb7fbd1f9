// Package memory provides an in-memory native messaging transport.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aretw0/opennormal/pkg/ports"
)

// Handler answers one message delivered to an in-memory host.
// The returned value is marshalled to JSON as the host response.
type Handler func(ctx context.Context, message json.RawMessage) (any, error)

// Call records a message delivered through the Messenger.
type Call struct {
	Application string
	Message     json.RawMessage
}

// Messenger implements ports.Messenger without leaving the process.
// Messages and responses go through JSON exactly like the stdio transport.
// Safe for concurrent use.
type Messenger struct {
	hosts map[string]Handler
	calls []Call
	mu    sync.RWMutex
}

var _ ports.Messenger = (*Messenger)(nil)

// NewMessenger creates a messenger with no hosts installed.
func NewMessenger() *Messenger {
	return &Messenger{
		hosts: make(map[string]Handler),
	}
}

// Install registers a host under the given application name.
func (m *Messenger) Install(application string, h Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hosts[application] = h
}

// Uninstall removes a host.
func (m *Messenger) Uninstall(application string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.hosts, application)
}

// SendNativeMessage delivers message to the named host.
func (m *Messenger) SendNativeMessage(ctx context.Context, application string, message any) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return nil, fmt.Errorf("failed to encode message: %w", err)
	}

	m.mu.Lock()
	h, ok := m.hosts[application]
	m.calls = append(m.calls, Call{Application: application, Message: payload})
	m.mu.Unlock()

	if !ok {
		return nil, ports.ErrHostNotFound
	}

	resp, err := h(ctx, payload)
	if err != nil {
		return nil, err
	}

	out, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response: %w", err)
	}
	return out, nil
}

// Calls returns a copy of every message delivered so far, in order.
func (m *Messenger) Calls() []Call {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// Echo answers each message with the message itself.
func Echo(_ context.Context, message json.RawMessage) (any, error) {
	return message, nil
}

// Respond answers each message with a fixed value.
func Respond(v any) Handler {
	return func(context.Context, json.RawMessage) (any, error) {
		return v, nil
	}
}

// Fail answers each message with err.
func Fail(err error) Handler {
	return func(context.Context, json.RawMessage) (any, error) {
		return nil, err
	}
}
