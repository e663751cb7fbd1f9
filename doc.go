/*
Package opennormal opens links in the user's normal browser on behalf of a
locked-down browser profile.

A context menu click or toolbar action yields a candidate URL. The candidate
passes an admission gate (http, https and file URLs only; javascript:, data:
and vbscript: are always refused) and, if accepted, is relayed as a single
native messaging request to the host registered as "fi.ssrc.open_normal".
The host does the actual opening; this package never touches a browser.

# Architecture

Each event runs a small state machine:

	idle -> validating -> { accepted -> relaying -> { succeeded | failed } } | rejected

The pieces are decoupled behind ports, in the same hexagonal style used for
every adapter in this module:

  - pkg/trigger turns browser-shaped events into candidates.
  - pkg/admission is the pure URL gate.
  - pkg/relay issues the native messaging request through a ports.Messenger.
  - pkg/adapters/nativemsg is the real transport: it finds the host manifest,
    starts the host and speaks the length-prefixed JSON protocol.

Rejections and transport failures are data, not panics: every event ends in a
Result with a terminal state.

# Usage

	ext, err := opennormal.New(
		opennormal.WithOrigin("chrome-extension://knldjmfmopnpolahpmmgbagdohdnhkik/"),
	)
	if err != nil {
		log.Fatal(err)
	}

	res := ext.Open(ctx, "https://example.org/")
	if res.Err != nil {
		log.Printf("not opened (%s): %v", res.State, res.Err)
	}
*/
package opennormal
