package trigger

import "github.com/aretw0/opennormal/pkg/domain"

// Extract returns the candidate URL carried by ev.
//
// ok is false when the event is not one of ours (another extension's menu
// item, an unknown type); such events must not be forwarded. Otherwise the
// candidate is returned as found, possibly nil.
func Extract(ev Event) (candidate any, ok bool) {
	switch ev.Kind() {
	case domain.TriggerLinkMenu:
		return ev.Info.LinkURL, true
	case domain.TriggerPageMenu, domain.TriggerAction:
		if ev.Tab == nil {
			return nil, true
		}
		return ev.Tab.URL, true
	}
	return nil, false
}

// Presence describes a candidate for diagnostics: "absent", "empty",
// "non-string" or "present". The gate treats the first three alike.
func Presence(candidate any) string {
	switch v := candidate.(type) {
	case nil:
		return "absent"
	case string:
		if v == "" {
			return "empty"
		}
		return "present"
	case *string:
		if v == nil {
			return "absent"
		}
		if *v == "" {
			return "empty"
		}
		return "present"
	}
	return "non-string"
}
