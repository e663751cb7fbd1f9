package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"

	"github.com/aretw0/opennormal"
	"github.com/aretw0/opennormal/pkg/trigger"
)

// EventHandler is the part of the Extension the listen loop drives.
type EventHandler interface {
	Handle(ctx context.Context, ev trigger.Event) (opennormal.Result, bool)
}

// ListenReply is one line written by Listen.
type ListenReply struct {
	*opennormal.Result
	Ignored bool   `json:"ignored,omitempty"`
	Invalid string `json:"invalid,omitempty"`
}

// Listen reads one JSON trigger event per line from r and writes one
// ListenReply per line to w. It stops at EOF or when ctx is cancelled.
// Malformed lines are reported on w and do not stop the loop.
func Listen(ctx context.Context, h EventHandler, r io.Reader, w io.Writer, logger *slog.Logger) error {
	reader := bufio.NewReader(r)
	enc := json.NewEncoder(w)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, readErr := reader.ReadBytes('\n')
		line = bytes.TrimSpace(line)

		if len(line) > 0 {
			if err := enc.Encode(handleLine(ctx, h, line, logger)); err != nil {
				return err
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return readErr
		}
	}
}

func handleLine(ctx context.Context, h EventHandler, line []byte, logger *slog.Logger) ListenReply {
	ev, err := trigger.DecodeJSON(line)
	if err != nil {
		logger.Warn("Listen: Invalid event", "err", err)
		return ListenReply{Invalid: err.Error()}
	}

	res, ok := h.Handle(ctx, ev)
	if !ok {
		return ListenReply{Ignored: true}
	}
	return ListenReply{Result: &res}
}
