package ports

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunMessengerContract runs a suite of tests to verify that a Messenger
// implementation adheres to the interface contract.
//
// echoApp must name a host that answers every message with the message itself.
// No host may be registered under "fi.ssrc.not_installed".
func RunMessengerContract(t *testing.T, m Messenger, echoApp string) {
	ctx := context.Background()

	t.Run("Round Trip", func(t *testing.T) {
		resp, err := m.SendNativeMessage(ctx, echoApp, map[string]string{"URL": "https://example.com/page"})
		require.NoError(t, err)

		var got map[string]string
		require.NoError(t, json.Unmarshal(resp, &got))
		assert.Equal(t, "https://example.com/page", got["URL"])
	})

	t.Run("Independent Requests", func(t *testing.T) {
		for _, u := range []string{"https://a.example", "file:///tmp/b"} {
			resp, err := m.SendNativeMessage(ctx, echoApp, map[string]string{"URL": u})
			require.NoError(t, err)
			assert.JSONEq(t, `{"URL":"`+u+`"}`, string(resp))
		}
	})

	t.Run("Unknown Host", func(t *testing.T) {
		resp, err := m.SendNativeMessage(ctx, "fi.ssrc.not_installed", map[string]string{"URL": "https://example.com"})
		assert.ErrorIs(t, err, ErrHostNotFound)
		assert.Nil(t, resp)
	})

	t.Run("Cancelled Context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := m.SendNativeMessage(cctx, echoApp, map[string]string{"URL": "https://example.com"})
		assert.Error(t, err)
	})
}
