// Package relay delivers admitted URLs to the native host.
package relay

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/opennormal/pkg/admission"
	"github.com/aretw0/opennormal/pkg/domain"
	"github.com/aretw0/opennormal/pkg/ports"
)

// Relay issues one native messaging request per accepted URL.
// It holds no state between invocations and is safe for concurrent use.
type Relay struct {
	messenger ports.Messenger
	logger    *slog.Logger
	hooks     domain.LifecycleHooks
}

// Option configures a Relay.
type Option func(*Relay)

// WithLogger sets the logger used for relay diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Relay) {
		r.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(r *Relay) {
		r.hooks = hooks
	}
}

// New creates a Relay on top of the given transport.
func New(messenger ports.Messenger, opts ...Option) *Relay {
	r := &Relay{messenger: messenger}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r
}

// Send delivers u to domain.ChannelID and waits for the single outcome.
// Transport failures are returned inside the outcome as a *domain.ChannelError;
// nothing is retried and no timeout is added beyond ctx.
func (r *Relay) Send(ctx context.Context, u admission.AcceptedURL) domain.RelayOutcome {
	return r.send(ctx, domain.EventBase{Trigger: domain.TriggerDirect}, u)
}

// SendEvent is Send with the identity of the triggering event attached to
// hooks and logs.
func (r *Relay) SendEvent(ctx context.Context, base domain.EventBase, u admission.AcceptedURL) domain.RelayOutcome {
	return r.send(ctx, base, u)
}

// Go starts Send in the background. The returned channel yields exactly one
// outcome and is then closed.
func (r *Relay) Go(ctx context.Context, u admission.AcceptedURL) <-chan domain.RelayOutcome {
	done := make(chan domain.RelayOutcome, 1)
	go func() {
		defer close(done)
		done <- r.Send(ctx, u)
	}()
	return done
}

func (r *Relay) send(ctx context.Context, base domain.EventBase, u admission.AcceptedURL) domain.RelayOutcome {
	if u.IsZero() {
		return domain.RelayOutcome{Err: fmt.Errorf("relay: %w", domain.ErrNotAdmitted)}
	}

	req := domain.NewRelayRequest(u.String())
	logger := r.logger.With("application", req.Application)
	if base.EventID != "" {
		logger = logger.With("event_id", base.EventID)
	}

	event := &domain.RelayEvent{
		EventBase:   base,
		Application: req.Application,
		URL:         req.Message.URL,
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if r.hooks.OnRelay != nil {
		r.hooks.OnRelay(ctx, event)
	}

	start := time.Now()
	resp, err := r.messenger.SendNativeMessage(ctx, req.Application, req.Message)
	event.Duration = time.Since(start)

	var outcome domain.RelayOutcome
	if err != nil {
		outcome.Err = &domain.ChannelError{Application: req.Application, Err: err}
		logger.Error("Native messaging error", "err", err)
	} else {
		outcome.Response = resp
		logger.Info("open_normal response", "response", string(resp))
	}

	event.Response = outcome.Response
	event.Err = outcome.Err
	if r.hooks.OnRelayReturn != nil {
		r.hooks.OnRelayReturn(ctx, event)
	}

	return outcome
}
