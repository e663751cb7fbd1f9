package domain

import "encoding/json"

// OpenMessage is the payload delivered to the native host.
type OpenMessage struct {
	URL string `json:"URL"`
}

// RelayRequest pairs the channel identifier with the message to deliver.
type RelayRequest struct {
	Application string      `json:"application"`
	Message     OpenMessage `json:"message"`
}

// NewRelayRequest addresses url to ChannelID.
func NewRelayRequest(url string) RelayRequest {
	return RelayRequest{
		Application: ChannelID,
		Message:     OpenMessage{URL: url},
	}
}

// RelayOutcome is the single resolution of a relay request.
// Exactly one of Response and Err is meaningful; transport failures are
// reported as *ChannelError.
type RelayOutcome struct {
	Response json.RawMessage `json:"response,omitempty"`
	Err      error           `json:"-"`
}

// Succeeded reports whether the host answered.
func (o RelayOutcome) Succeeded() bool {
	return o.Err == nil
}
