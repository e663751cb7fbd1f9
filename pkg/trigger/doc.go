/*
Package trigger maps host runtime events to candidate URLs.

Three user actions start a request: choosing "Open link in normal browser" on a
link, choosing "Open page in normal browser" on a page, and clicking the
toolbar icon. Each event yields exactly one candidate, taken verbatim from the
payload and handed on without validation.

Events arrive shaped like the browser callbacks they come from:

	{"type": "contextMenus.onClicked",
	 "info": {"menuItemId": "openNormalLink", "linkUrl": "https://example.com"},
	 "tab":  {"id": 7, "url": "https://origin.example"}}

	{"type": "action.onClicked", "tab": {"id": 7, "url": "https://origin.example"}}
*/
package trigger
