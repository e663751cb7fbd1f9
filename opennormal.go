package opennormal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/opennormal/internal/logging"
	"github.com/aretw0/opennormal/pkg/adapters/nativemsg"
	"github.com/aretw0/opennormal/pkg/admission"
	"github.com/aretw0/opennormal/pkg/domain"
	"github.com/aretw0/opennormal/pkg/ports"
	"github.com/aretw0/opennormal/pkg/relay"
	"github.com/aretw0/opennormal/pkg/trigger"
	"github.com/google/uuid"
)

// Extension is the high-level entry point: it turns trigger events into
// admission decisions and native messaging requests.
// It holds no per-event state and is safe for concurrent use.
type Extension struct {
	messenger ports.Messenger
	relay     *relay.Relay
	hooks     domain.LifecycleHooks
	logger    *slog.Logger

	manifestDirs []string
	origin       string
	exitGrace    time.Duration
}

// Option defines a functional option for configuring the Extension.
type Option func(*Extension)

// WithMessenger injects the native messaging transport, bypassing the
// default process-based one.
func WithMessenger(m ports.Messenger) Option {
	return func(e *Extension) {
		e.messenger = m
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extension) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Extension) {
		e.hooks = hooks
	}
}

// WithManifestDirs overrides where host manifests are searched.
// Ignored when WithMessenger is used.
func WithManifestDirs(dirs ...string) Option {
	return func(e *Extension) {
		e.manifestDirs = dirs
	}
}

// WithOrigin sets the origin presented to native hosts.
// Ignored when WithMessenger is used.
func WithOrigin(origin string) Option {
	return func(e *Extension) {
		e.origin = origin
	}
}

// WithExitGrace bounds how long a host may keep running after it answered.
// Ignored when WithMessenger is used.
func WithExitGrace(d time.Duration) Option {
	return func(e *Extension) {
		e.exitGrace = d
	}
}

// New initializes an Extension.
// Without WithMessenger it talks to real hosts, which requires an origin.
func New(opts ...Option) (*Extension, error) {
	ext := &Extension{}
	for _, opt := range opts {
		opt(ext)
	}

	if ext.logger == nil {
		ext.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if ext.messenger == nil {
		if ext.origin == "" {
			return nil, fmt.Errorf("origin is required when no custom messenger is provided")
		}
		msgOpts := []nativemsg.Option{
			nativemsg.WithOrigin(ext.origin),
			nativemsg.WithLogger(ext.logger),
		}
		if len(ext.manifestDirs) > 0 {
			msgOpts = append(msgOpts, nativemsg.WithDirs(ext.manifestDirs...))
		}
		if ext.exitGrace > 0 {
			msgOpts = append(msgOpts, nativemsg.WithExitGrace(ext.exitGrace))
		}
		ext.messenger = nativemsg.NewMessenger(msgOpts...)
	}

	ext.relay = relay.New(ext.messenger,
		relay.WithLogger(ext.logger),
		relay.WithHooks(ext.hooks),
	)
	return ext, nil
}

// Result is the record of one processed event.
type Result struct {
	EventID string             `json:"event_id"`
	Trigger domain.TriggerKind `json:"trigger"`
	// Candidate is a sanitised rendering of the input, for diagnostics only.
	Candidate string                 `json:"candidate,omitempty"`
	State     domain.State           `json:"state"`
	Reason    domain.RejectionReason `json:"reason,omitempty"`
	// Dangerous is set when the candidate hit the javascript:/data:/vbscript:
	// deny-list, whichever check rejected it first.
	Dangerous bool            `json:"dangerous,omitempty"`
	Response  json.RawMessage `json:"response,omitempty"`
	Error     string          `json:"error,omitempty"`

	// Err is the rejection or channel failure, if any.
	Err error `json:"-"`
}

// Accepted reports whether the gate let the candidate through.
func (r Result) Accepted() bool {
	return r.State == domain.StateSucceeded || r.State == domain.StateFailed
}

// Menus returns the context menu entries to register at startup.
func (e *Extension) Menus() []trigger.MenuItem {
	return trigger.Menus()
}

// Handle processes one runtime event. ok is false when the event does not
// belong to this extension; nothing is admitted or relayed then.
func (e *Extension) Handle(ctx context.Context, ev trigger.Event) (Result, bool) {
	candidate, ok := trigger.Extract(ev)
	if !ok {
		e.logger.Debug("Ignoring event", "type", ev.Type)
		return Result{}, false
	}
	return e.process(ctx, ev.Kind(), candidate), true
}

// Open admits and relays a value supplied directly by the caller.
func (e *Extension) Open(ctx context.Context, candidate any) Result {
	return e.process(ctx, domain.TriggerDirect, candidate)
}

func (e *Extension) process(ctx context.Context, kind domain.TriggerKind, candidate any) Result {
	base := domain.EventBase{
		Timestamp: time.Now(),
		EventID:   uuid.NewString(),
		Trigger:   kind,
	}
	res := Result{
		EventID: base.EventID,
		Trigger: kind,
		State:   domain.StateIdle,
	}
	if candidate != nil {
		res.Candidate = logging.SafeValue(candidate)
	}
	logger := e.logger.With("event_id", base.EventID, "trigger", kind)

	res.advance(logger, domain.StateValidating)
	accepted, err := admission.Admit(candidate)

	event := &domain.AdmissionEvent{
		EventBase: base,
		Candidate: res.Candidate,
		Accepted:  err == nil,
	}
	if err != nil {
		res.Err = err
		res.Error = err.Error()
		res.Reason, _ = domain.ReasonOf(err)
		res.Dangerous = errors.Is(err, domain.ErrDangerousScheme)
		event.Reason = res.Reason
		res.advance(logger, domain.StateRejected)

		logger.Warn("URL rejected",
			"reason", res.Reason,
			"presence", trigger.Presence(candidate),
			"dangerous", res.Dangerous,
			"candidate", res.Candidate,
			"err", err,
		)
	} else {
		res.advance(logger, domain.StateAccepted)
	}
	if e.hooks.OnAdmission != nil {
		e.hooks.OnAdmission(ctx, event)
	}
	if err != nil {
		return res
	}

	res.advance(logger, domain.StateRelaying)
	outcome := e.relay.SendEvent(ctx, base, accepted)
	res.Response = outcome.Response
	if outcome.Succeeded() {
		res.advance(logger, domain.StateSucceeded)
		return res
	}

	res.Err = outcome.Err
	res.Error = outcome.Err.Error()
	res.advance(logger, domain.StateFailed)
	return res
}

func (r *Result) advance(logger *slog.Logger, next domain.State) {
	if !r.State.CanTransition(next) {
		logger.Error("Invalid state transition", "from", r.State, "to", next)
	}
	logger.Debug("State transition", "from", r.State, "to", next)
	r.State = next
}

// IsRejection reports whether err came from the admission gate.
func IsRejection(err error) bool {
	var rej *domain.Rejection
	return errors.As(err, &rej)
}
