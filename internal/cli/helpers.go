package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/opennormal"
	"github.com/aretw0/opennormal/internal/config"
	"github.com/aretw0/opennormal/internal/logging"
	"github.com/aretw0/opennormal/pkg/domain"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	once   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sc.sigCh:
			sc.mu.Lock()
			sc.sigVal = sig
			sc.mu.Unlock()
			sc.Cancel()
		case <-sc.Context.Done():
		}
		sc.once.Do(func() {
			signal.Stop(sc.sigCh)
		})
	}()

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// NewLogger configures the application logger from cfg.
// Logs always go to w (stderr in practice) so stdout stays machine-readable;
// debug forces the debug level.
func NewLogger(cfg config.Config, debug bool, w io.Writer) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	if debug {
		level = slog.LevelDebug
	}
	return logging.NewWithWriter(w, level, logging.Format(cfg.Log.Format)), nil
}

// NewExtension builds the Extension described by cfg.
func NewExtension(cfg config.Config, logger *slog.Logger, hooks domain.LifecycleHooks) (*opennormal.Extension, error) {
	if cfg.Origin == "" {
		return nil, fmt.Errorf("no origin configured: set origin in %s or %s_ORIGIN", config.DefaultFile, config.EnvPrefix)
	}
	return opennormal.New(
		opennormal.WithOrigin(cfg.Origin),
		opennormal.WithManifestDirs(cfg.ManifestDirs...),
		opennormal.WithExitGrace(cfg.ExitGrace),
		opennormal.WithLogger(logger),
		opennormal.WithLifecycleHooks(hooks.Merge(debugHooks(logger))),
	)
}

func debugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnAdmission: func(_ context.Context, e *domain.AdmissionEvent) {
			logger.Debug("Admission", "event_id", e.EventID, "accepted", e.Accepted, "reason", e.Reason)
		},
		OnRelay: func(_ context.Context, e *domain.RelayEvent) {
			logger.Debug("Relay Call", "event_id", e.EventID, "application", e.Application)
		},
		OnRelayReturn: func(_ context.Context, e *domain.RelayEvent) {
			if e.Err != nil {
				logger.Debug("Relay Return (Error)", "event_id", e.EventID, "duration", e.Duration, "err", e.Err)
			} else {
				logger.Debug("Relay Return (Success)", "event_id", e.EventID, "duration", e.Duration)
			}
		},
	}
}
