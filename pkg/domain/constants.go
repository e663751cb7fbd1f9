package domain

// ChannelID is the native messaging host that opens URLs in the normal browser.
// It is a compile-time constant and is never read from configuration.
const ChannelID = "fi.ssrc.open_normal"

// URLField is the name of the single field carried by a relay message.
const URLField = "URL"

// Context menu item identifiers registered with the host runtime.
const (
	MenuOpenLink = "openNormalLink"
	MenuOpenPage = "openNormalPage"
)
