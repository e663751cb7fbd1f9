package trigger

import "github.com/aretw0/opennormal/pkg/domain"

// MenuItem is a context menu registration requested from the host runtime.
type MenuItem struct {
	ID       string   `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Contexts []string `json:"contexts" yaml:"contexts"`
}

// Menus returns the context menu entries to register at startup.
func Menus() []MenuItem {
	return []MenuItem{
		{
			ID:       domain.MenuOpenLink,
			Title:    "Open link in normal browser",
			Contexts: []string{"link"},
		},
		{
			ID:       domain.MenuOpenPage,
			Title:    "Open page in normal browser",
			Contexts: []string{"page"},
		},
	}
}
