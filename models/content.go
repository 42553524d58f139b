package models

import (
	"fmt"
	"strings"
)

// ContentDocument is the editable JSON structure behind the public site:
// brand text, hero copy, the menu and footer details. It is replaced as a
// whole; there are no partial updates at the storage layer.
type ContentDocument map[string]any

var requiredSections = []string{"brand", "hero", "menu", "footer"}

// InvalidContentError describes why a replacement document was rejected.
type InvalidContentError struct {
	Reason string
}

func (e *InvalidContentError) Error() string {
	return "invalid content: " + e.Reason
}

// Validate checks the document against the shape the site templates expect:
// all required top-level sections present, and menu.items a non-empty list
// where every item has a non-empty name and price.
func (d ContentDocument) Validate() error {
	for _, section := range requiredSections {
		if _, ok := d[section]; !ok {
			return &InvalidContentError{Reason: fmt.Sprintf("missing required section %q", section)}
		}
	}

	menu, ok := d["menu"].(map[string]any)
	if !ok {
		return &InvalidContentError{Reason: "menu must be an object"}
	}
	items, ok := menu["items"].([]any)
	if !ok || len(items) == 0 {
		return &InvalidContentError{Reason: "menu.items must be a non-empty list"}
	}
	for i, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok {
			return &InvalidContentError{Reason: fmt.Sprintf("menu.items[%d] must be an object", i)}
		}
		if emptyField(item["name"]) {
			return &InvalidContentError{Reason: fmt.Sprintf("menu.items[%d] is missing a name", i)}
		}
		if emptyField(item["price"]) {
			return &InvalidContentError{Reason: fmt.Sprintf("menu.items[%d] is missing a price", i)}
		}
	}
	return nil
}

// Prices may be stored as strings ("48") or numbers; both count as present.
func emptyField(v any) bool {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val) == ""
	case float64:
		return false
	default:
		return true
	}
}
