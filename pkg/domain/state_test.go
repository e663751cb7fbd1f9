package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_Transitions(t *testing.T) {
	assert.True(t, StateIdle.CanTransition(StateValidating))
	assert.True(t, StateValidating.CanTransition(StateRejected))
	assert.True(t, StateValidating.CanTransition(StateAccepted))
	assert.True(t, StateAccepted.CanTransition(StateRelaying))
	assert.True(t, StateRelaying.CanTransition(StateFailed))
	assert.True(t, StateRelaying.CanTransition(StateSucceeded))

	// No shortcuts and no re-entry.
	assert.False(t, StateIdle.CanTransition(StateRelaying))
	assert.False(t, StateRejected.CanTransition(StateRelaying))
	assert.False(t, StateFailed.CanTransition(StateRelaying))
	assert.False(t, StateSucceeded.CanTransition(StateIdle))
}

func TestState_Terminal(t *testing.T) {
	for _, s := range []State{StateRejected, StateSucceeded, StateFailed} {
		assert.True(t, s.Terminal(), s)
	}
	for _, s := range []State{StateIdle, StateValidating, StateAccepted, StateRelaying} {
		assert.False(t, s.Terminal(), s)
	}
}

func TestNewRelayRequest(t *testing.T) {
	req := NewRelayRequest("https://example.com/page")
	assert.Equal(t, "fi.ssrc.open_normal", req.Application)
	assert.Equal(t, "https://example.com/page", req.Message.URL)
}

func TestLifecycleHooks_Merge(t *testing.T) {
	var calls []string
	a := LifecycleHooks{
		OnAdmission: func(context.Context, *AdmissionEvent) { calls = append(calls, "a") },
	}
	b := LifecycleHooks{
		OnAdmission: func(context.Context, *AdmissionEvent) { calls = append(calls, "b") },
		OnRelay:     func(context.Context, *RelayEvent) { calls = append(calls, "b-relay") },
	}

	merged := a.Merge(b)
	merged.OnAdmission(context.Background(), &AdmissionEvent{})
	merged.OnRelay(context.Background(), &RelayEvent{})

	assert.Equal(t, []string{"a", "b", "b-relay"}, calls)
	assert.Nil(t, merged.OnRelayReturn)
}
