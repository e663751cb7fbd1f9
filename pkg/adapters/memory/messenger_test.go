package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/opennormal/pkg/adapters/memory"
	"github.com/aretw0/opennormal/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryMessenger_Contract(t *testing.T) {
	m := memory.NewMessenger()
	m.Install("fi.ssrc.echo", memory.Echo)
	ports.RunMessengerContract(t, m, "fi.ssrc.echo")
}

func TestMemoryMessenger_RecordsCalls(t *testing.T) {
	m := memory.NewMessenger()
	m.Install("fi.ssrc.open_normal", memory.Respond(map[string]bool{"ok": true}))

	resp, err := m.SendNativeMessage(context.Background(), "fi.ssrc.open_normal", map[string]string{"URL": "https://example.com"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(resp))

	calls := m.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "fi.ssrc.open_normal", calls[0].Application)
	assert.JSONEq(t, `{"URL":"https://example.com"}`, string(calls[0].Message))
}

func TestMemoryMessenger_HostFailure(t *testing.T) {
	boom := errors.New("host crashed")
	m := memory.NewMessenger()
	m.Install("fi.ssrc.open_normal", memory.Fail(boom))

	_, err := m.SendNativeMessage(context.Background(), "fi.ssrc.open_normal", map[string]string{"URL": "x"})
	assert.ErrorIs(t, err, boom)

	m.Uninstall("fi.ssrc.open_normal")
	_, err = m.SendNativeMessage(context.Background(), "fi.ssrc.open_normal", map[string]string{"URL": "x"})
	assert.ErrorIs(t, err, ports.ErrHostNotFound)
}
