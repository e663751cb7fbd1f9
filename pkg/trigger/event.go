package trigger

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/opennormal/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Runtime event types.
const (
	TypeContextMenuClicked = "contextMenus.onClicked"
	TypeActionClicked      = "action.onClicked"
)

// Event is one callback delivered by the host runtime.
//
// URL fields are kept as untyped values: a payload may omit them, set them to
// null or carry a non-string, and the admission gate must see exactly that.
type Event struct {
	Type string     `json:"type" mapstructure:"type"`
	Info *ClickInfo `json:"info,omitempty" mapstructure:"info"`
	Tab  *Tab       `json:"tab,omitempty" mapstructure:"tab"`
}

// ClickInfo describes a context menu click.
type ClickInfo struct {
	MenuItemID string `json:"menuItemId" mapstructure:"menuItemId"`
	LinkURL    any    `json:"linkUrl,omitempty" mapstructure:"linkUrl"`
	PageURL    any    `json:"pageUrl,omitempty" mapstructure:"pageUrl"`
}

// Tab describes the tab the event happened in.
type Tab struct {
	ID  int `json:"id" mapstructure:"id"`
	URL any `json:"url,omitempty" mapstructure:"url"`
}

// Kind classifies the event. Unknown events return "".
func (e Event) Kind() domain.TriggerKind {
	switch e.Type {
	case TypeActionClicked:
		return domain.TriggerAction
	case TypeContextMenuClicked:
		if e.Info == nil {
			return ""
		}
		switch e.Info.MenuItemID {
		case domain.MenuOpenLink:
			return domain.TriggerLinkMenu
		case domain.MenuOpenPage:
			return domain.TriggerPageMenu
		}
	}
	return ""
}

// Decode builds an Event from a decoded JSON object.
func Decode(raw map[string]any) (Event, error) {
	var ev Event
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &ev,
		TagName: "mapstructure",
	})
	if err != nil {
		return Event{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Event{}, fmt.Errorf("failed to decode trigger event: %w", err)
	}
	return ev, nil
}

// DecodeJSON builds an Event from its JSON encoding.
func DecodeJSON(data []byte) (Event, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Event{}, fmt.Errorf("failed to parse trigger event: %w", err)
	}
	return Decode(raw)
}

// LinkMenuClick builds the event for the link context menu.
func LinkMenuClick(linkURL any, tab *Tab) Event {
	return Event{
		Type: TypeContextMenuClicked,
		Info: &ClickInfo{MenuItemID: domain.MenuOpenLink, LinkURL: linkURL},
		Tab:  tab,
	}
}

// PageMenuClick builds the event for the page context menu.
func PageMenuClick(tab *Tab) Event {
	return Event{
		Type: TypeContextMenuClicked,
		Info: &ClickInfo{MenuItemID: domain.MenuOpenPage},
		Tab:  tab,
	}
}

// ActionClick builds the event for the toolbar icon.
func ActionClick(tab *Tab) Event {
	return Event{Type: TypeActionClicked, Tab: tab}
}
