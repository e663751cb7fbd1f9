package opennormal_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/aretw0/opennormal"
	"github.com/aretw0/opennormal/pkg/adapters/memory"
	"github.com/aretw0/opennormal/pkg/domain"
	"github.com/aretw0/opennormal/pkg/ports"
	"github.com/aretw0/opennormal/pkg/trigger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExtension(t *testing.T, opts ...opennormal.Option) (*opennormal.Extension, *memory.Messenger) {
	t.Helper()
	host := memory.NewMessenger()
	host.Install(domain.ChannelID, memory.Respond(map[string]string{"status": "ok"}))
	ext, err := opennormal.New(append([]opennormal.Option{opennormal.WithMessenger(host)}, opts...)...)
	require.NoError(t, err)
	return ext, host
}

func TestExtension_LinkMenuRelaysURL(t *testing.T) {
	ext, host := newExtension(t)

	res, ok := ext.Handle(context.Background(), trigger.LinkMenuClick("https://example.org/docs", &trigger.Tab{ID: 3, URL: "https://other.test/"}))
	require.True(t, ok)

	assert.Equal(t, domain.StateSucceeded, res.State)
	assert.Equal(t, domain.TriggerLinkMenu, res.Trigger)
	assert.NotEmpty(t, res.EventID)
	assert.JSONEq(t, `{"status":"ok"}`, string(res.Response))
	assert.NoError(t, res.Err)
	assert.True(t, res.Accepted())

	calls := host.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "fi.ssrc.open_normal", calls[0].Application)
	assert.JSONEq(t, `{"URL":"https://example.org/docs"}`, string(calls[0].Message))
}

func TestExtension_PageAndActionUseTabURL(t *testing.T) {
	ext, host := newExtension(t)
	tab := &trigger.Tab{ID: 1, URL: "file:///home/user/report.html"}

	res, ok := ext.Handle(context.Background(), trigger.PageMenuClick(tab))
	require.True(t, ok)
	assert.Equal(t, domain.StateSucceeded, res.State)
	assert.Equal(t, domain.TriggerPageMenu, res.Trigger)

	res, ok = ext.Handle(context.Background(), trigger.ActionClick(tab))
	require.True(t, ok)
	assert.Equal(t, domain.StateSucceeded, res.State)
	assert.Equal(t, domain.TriggerAction, res.Trigger)

	calls := host.Calls()
	require.Len(t, calls, 2)
	for _, c := range calls {
		assert.JSONEq(t, `{"URL":"file:///home/user/report.html"}`, string(c.Message))
	}
}

func TestExtension_JavascriptLinkIsRejected(t *testing.T) {
	ext, host := newExtension(t)

	res, ok := ext.Handle(context.Background(), trigger.LinkMenuClick("javascript:alert(1)", nil))
	require.True(t, ok)

	assert.Equal(t, domain.StateRejected, res.State)
	assert.Equal(t, domain.ReasonSchemeNotAllowed, res.Reason)
	assert.ErrorIs(t, res.Err, domain.ErrSchemeNotAllowed)
	assert.ErrorIs(t, res.Err, domain.ErrDangerousScheme)
	assert.True(t, opennormal.IsRejection(res.Err))
	assert.True(t, res.Dangerous)
	assert.False(t, res.Accepted())
	assert.Empty(t, host.Calls())
}

func TestExtension_EmptyTabURLIsMissing(t *testing.T) {
	ext, host := newExtension(t)

	cases := map[string]trigger.Event{
		"empty url":   trigger.ActionClick(&trigger.Tab{ID: 1, URL: ""}),
		"no url":      trigger.PageMenuClick(&trigger.Tab{ID: 1}),
		"no tab":      trigger.ActionClick(nil),
		"no link":     trigger.LinkMenuClick(nil, nil),
		"numeric url": trigger.LinkMenuClick(42, nil),
	}
	for name, ev := range cases {
		t.Run(name, func(t *testing.T) {
			res, ok := ext.Handle(context.Background(), ev)
			require.True(t, ok)
			assert.Equal(t, domain.StateRejected, res.State)
			assert.Equal(t, domain.ReasonMissing, res.Reason)
			assert.ErrorIs(t, res.Err, domain.ErrMissing)
		})
	}
	assert.Empty(t, host.Calls())
}

func TestExtension_FTPIsNotAllowed(t *testing.T) {
	ext, host := newExtension(t)

	res := ext.Open(context.Background(), "ftp://example.org")
	assert.Equal(t, domain.StateRejected, res.State)
	assert.Equal(t, domain.ReasonSchemeNotAllowed, res.Reason)
	assert.Equal(t, domain.TriggerDirect, res.Trigger)
	assert.Equal(t, "ftp://example.org", res.Candidate)
	assert.Equal(t, "URL must use http, https, or file protocol", res.Error)
	assert.Empty(t, host.Calls())
}

func TestExtension_HostNotInstalled(t *testing.T) {
	ext, err := opennormal.New(
		opennormal.WithOrigin("chrome-extension://knldjmfmopnpolahpmmgbagdohdnhkik/"),
		opennormal.WithManifestDirs(t.TempDir()),
	)
	require.NoError(t, err)

	res := ext.Open(context.Background(), "https://example.org")
	assert.Equal(t, domain.StateFailed, res.State)
	assert.True(t, res.Accepted())
	assert.Empty(t, res.Reason)
	assert.ErrorIs(t, res.Err, domain.ErrChannel)
	assert.ErrorIs(t, res.Err, ports.ErrHostNotFound)

	var chErr *domain.ChannelError
	require.ErrorAs(t, res.Err, &chErr)
	assert.Equal(t, domain.ChannelID, chErr.Application)
}

func TestExtension_HostFailure(t *testing.T) {
	host := memory.NewMessenger()
	host.Install(domain.ChannelID, memory.Fail(errors.New("browser not found")))
	ext, err := opennormal.New(opennormal.WithMessenger(host))
	require.NoError(t, err)

	res := ext.Open(context.Background(), "http://example.org")
	assert.Equal(t, domain.StateFailed, res.State)
	assert.ErrorIs(t, res.Err, domain.ErrChannel)
	assert.Contains(t, res.Error, "browser not found")
	assert.Len(t, host.Calls(), 1, "a failed request is not retried")
}

func TestExtension_CancelledContext(t *testing.T) {
	ext, _ := newExtension(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := ext.Open(ctx, "https://example.org")
	assert.Equal(t, domain.StateFailed, res.State)
	assert.ErrorIs(t, res.Err, context.Canceled)
}

func TestExtension_IgnoresForeignEvents(t *testing.T) {
	ext, host := newExtension(t)

	foreign := trigger.Event{
		Type: trigger.TypeContextMenuClicked,
		Info: &trigger.ClickInfo{MenuItemID: "someoneElsesMenu", LinkURL: "https://example.org"},
	}
	_, ok := ext.Handle(context.Background(), foreign)
	assert.False(t, ok)

	_, ok = ext.Handle(context.Background(), trigger.Event{Type: "tabs.onUpdated"})
	assert.False(t, ok)

	assert.Empty(t, host.Calls())
}

func TestExtension_Hooks(t *testing.T) {
	var (
		mu    sync.Mutex
		order []string
	)
	record := func(s string) {
		mu.Lock()
		defer mu.Unlock()
		order = append(order, s)
	}
	hooks := domain.LifecycleHooks{
		OnAdmission: func(_ context.Context, e *domain.AdmissionEvent) {
			record(fmt.Sprintf("admission:%t:%s", e.Accepted, e.Reason))
		},
		OnRelay: func(_ context.Context, e *domain.RelayEvent) {
			record("relay:" + e.URL)
		},
		OnRelayReturn: func(_ context.Context, e *domain.RelayEvent) {
			record(fmt.Sprintf("return:%v", e.Err == nil))
		},
	}
	ext, _ := newExtension(t, opennormal.WithLifecycleHooks(hooks))

	ext.Open(context.Background(), "https://example.org")
	ext.Open(context.Background(), "data:text/html,hi")

	assert.Equal(t, []string{
		"admission:true:",
		"relay:https://example.org",
		"return:true",
		"admission:false:scheme_not_allowed",
	}, order)
}

func TestExtension_EventIDsAreUnique(t *testing.T) {
	ext, _ := newExtension(t)
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		res := ext.Open(context.Background(), "https://example.org")
		assert.False(t, seen[res.EventID])
		seen[res.EventID] = true
	}
}

func TestExtension_ConcurrentEvents(t *testing.T) {
	ext, host := newExtension(t)

	var wg sync.WaitGroup
	results := make([]opennormal.Result, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			url := "https://example.org/" + fmt.Sprint(i)
			if i%2 == 1 {
				url = "vbscript:msgbox"
			}
			results[i] = ext.Open(context.Background(), url)
		}(i)
	}
	wg.Wait()

	for i, res := range results {
		if i%2 == 1 {
			assert.Equal(t, domain.StateRejected, res.State)
		} else {
			assert.Equal(t, domain.StateSucceeded, res.State)
		}
	}
	assert.Len(t, host.Calls(), 16)
}

func TestResult_JSON(t *testing.T) {
	ext, _ := newExtension(t)

	res := ext.Open(context.Background(), "ftp://example.org")
	data, err := json.Marshal(res)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "rejected", got["state"])
	assert.Equal(t, "scheme_not_allowed", got["reason"])
	assert.Equal(t, "direct", got["trigger"])
	assert.NotContains(t, got, "response")
	assert.NotContains(t, got, "dangerous")

	res = ext.Open(context.Background(), "javascript:alert(1)")
	data, err = json.Marshal(res)
	require.NoError(t, err)
	got = nil
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "scheme_not_allowed", got["reason"])
	assert.Equal(t, true, got["dangerous"])
}

func TestExtension_UnicodeFoldedSchemeIsRejected(t *testing.T) {
	ext, host := newExtension(t)

	for _, candidate := range []string{"http\u017f://example.com", "HTTP\u017f://example.com"} {
		res := ext.Open(context.Background(), candidate)
		assert.Equal(t, domain.StateRejected, res.State, candidate)
		assert.Equal(t, domain.ReasonSchemeNotAllowed, res.Reason, candidate)
	}
	assert.Empty(t, host.Calls())
}

func TestNew_RequiresOriginForNativeHosts(t *testing.T) {
	_, err := opennormal.New()
	assert.ErrorContains(t, err, "origin")
}
