package nativemsg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	"github.com/aretw0/opennormal/pkg/ports"
)

// DefaultExitGrace is how long a host may keep running after its response
// before it is killed.
const DefaultExitGrace = 2 * time.Second

// Messenger implements ports.Messenger by starting native host processes.
type Messenger struct {
	locator   Locator
	origin    string
	exitGrace time.Duration
	logger    *slog.Logger
}

var _ ports.Messenger = (*Messenger)(nil)

// Option configures a Messenger.
type Option func(*Messenger)

// WithDirs sets the manifest search directories (default: DefaultDirs).
func WithDirs(dirs ...string) Option {
	return func(m *Messenger) {
		m.locator.Dirs = dirs
	}
}

// WithOrigin sets the caller origin checked against the manifest allow list
// and passed to the host as its first argument.
func WithOrigin(origin string) Option {
	return func(m *Messenger) {
		m.origin = origin
	}
}

// WithExitGrace bounds how long a host may linger after answering.
func WithExitGrace(d time.Duration) Option {
	return func(m *Messenger) {
		m.exitGrace = d
	}
}

// WithLogger sets the logger receiving host stderr and lifecycle details.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Messenger) {
		m.logger = logger
	}
}

// NewMessenger creates a stdio native messaging transport.
func NewMessenger(opts ...Option) *Messenger {
	m := &Messenger{
		locator:   Locator{Dirs: DefaultDirs()},
		exitGrace: DefaultExitGrace,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return m
}

// SendNativeMessage starts the named host, sends message and returns the
// first message the host writes back.
func (m *Messenger) SendNativeMessage(ctx context.Context, application string, message any) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	manifest, err := m.locator.Find(application)
	if err != nil {
		return nil, err
	}
	if !manifest.Allows(m.origin) {
		return nil, fmt.Errorf("%w: origin %q not allowed by %s", ports.ErrForbidden, m.origin, manifest.File)
	}

	logger := m.logger.With("host", manifest.Name)

	cmd := exec.CommandContext(ctx, manifest.Path, m.origin)
	cmd.Dir = filepath.Dir(manifest.Path)
	cmd.WaitDelay = m.exitGrace

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrHostStart, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrHostStart, err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ports.ErrHostStart, manifest.Path, err)
	}
	logger.Debug("Native host started", "pid", cmd.Process.Pid, "path", manifest.Path)

	defer m.reap(logger, cmd, stdin, &stderr)

	if err := WriteMessage(stdin, message); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, syscall.EPIPE) {
			return nil, ports.ErrHostExited
		}
		return nil, fmt.Errorf("%w: %w", ports.ErrHostProtocol, err)
	}

	resp, err := ReadMessage(stdout, MaxHostMessage)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, io.EOF) {
			return nil, ports.ErrHostExited
		}
		return nil, fmt.Errorf("%w: %w", ports.ErrHostProtocol, err)
	}
	return resp, nil
}

// reap closes the host's stdin and waits for it to exit, killing it once the
// grace period has passed.
func (m *Messenger) reap(logger *slog.Logger, cmd *exec.Cmd, stdin io.Closer, stderr *bytes.Buffer) {
	_ = stdin.Close()

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	var err error
	select {
	case err = <-done:
	case <-time.After(m.exitGrace):
		logger.Debug("Native host still running after response, killing")
		_ = cmd.Process.Kill()
		err = <-done
	}

	if stderr.Len() > 0 {
		logger.Debug("Native host stderr", "stderr", stderr.String())
	}
	if err != nil {
		logger.Debug("Native host exited", "err", err)
	}
}
