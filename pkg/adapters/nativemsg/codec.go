package nativemsg

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

const (
	// MaxHostMessage is the largest message a host may send back (1 MiB).
	MaxHostMessage = 1 << 20
	// MaxExtensionMessage is the largest message sent to a host (64 MiB).
	MaxExtensionMessage = 64 << 20
)

var (
	ErrMessageTooLarge = errors.New("native message exceeds size limit")
	ErrInvalidMessage  = errors.New("native message is not valid JSON")
)

// WriteMessage encodes v as JSON and writes it with its length prefix.
func WriteMessage(w io.Writer, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}
	if len(payload) > MaxExtensionMessage {
		return fmt.Errorf("%w: size=%d limit=%d", ErrMessageTooLarge, len(payload), MaxExtensionMessage)
	}

	frame := make([]byte, 4+len(payload))
	binary.NativeEndian.PutUint32(frame, uint32(len(payload)))
	copy(frame[4:], payload)

	_, err = w.Write(frame)
	return err
}

// ReadMessage reads one length-prefixed JSON message of at most limit bytes.
// A clean end of stream before the first byte returns io.EOF.
func ReadMessage(r io.Reader, limit int) (json.RawMessage, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("truncated message header: %w", err)
		}
		return nil, err
	}

	size := binary.NativeEndian.Uint32(header[:])
	if uint64(size) > uint64(limit) {
		return nil, fmt.Errorf("%w: size=%d limit=%d", ErrMessageTooLarge, size, limit)
	}

	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("truncated message body: %w", err)
	}
	if !json.Valid(payload) {
		return nil, ErrInvalidMessage
	}
	return json.RawMessage(payload), nil
}
