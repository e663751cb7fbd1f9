package domain

import (
	"context"
	"time"
)

// TriggerKind identifies the user action that produced a candidate URL.
type TriggerKind string

const (
	TriggerLinkMenu TriggerKind = "link_menu"
	TriggerPageMenu TriggerKind = "page_menu"
	TriggerAction   TriggerKind = "action"
	// TriggerDirect is used when a caller hands a URL straight to the gate.
	TriggerDirect TriggerKind = "direct"
)

// EventBase contains common fields for all lifecycle events.
type EventBase struct {
	Timestamp time.Time   `json:"timestamp"`
	EventID   string      `json:"event_id"`
	Trigger   TriggerKind `json:"trigger"`
}

// AdmissionEvent is emitted once the gate has decided.
type AdmissionEvent struct {
	EventBase
	Candidate string          `json:"candidate"`
	Accepted  bool            `json:"accepted"`
	Reason    RejectionReason `json:"reason,omitempty"`
}

// RelayEvent is emitted before and after the native messaging call.
type RelayEvent struct {
	EventBase
	Application string        `json:"application"`
	URL         string        `json:"url"`
	Duration    time.Duration `json:"duration,omitempty"`
	Response    []byte        `json:"response,omitempty"`
	Err         error         `json:"-"`
}

// LifecycleHooks defines callbacks for observability.
// Any hook may be nil.
type LifecycleHooks struct {
	OnAdmission   func(context.Context, *AdmissionEvent)
	OnRelay       func(context.Context, *RelayEvent)
	OnRelayReturn func(context.Context, *RelayEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnAdmission:   chainAdmission(h.OnAdmission, other.OnAdmission),
		OnRelay:       chainRelay(h.OnRelay, other.OnRelay),
		OnRelayReturn: chainRelay(h.OnRelayReturn, other.OnRelayReturn),
	}
}

func chainAdmission(a, b func(context.Context, *AdmissionEvent)) func(context.Context, *AdmissionEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *AdmissionEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainRelay(a, b func(context.Context, *RelayEvent)) func(context.Context, *RelayEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *RelayEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
