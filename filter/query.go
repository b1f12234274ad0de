package filter

import (
	"net/url"
	"strings"
)

// QueryKey is the repeated URL parameter carrying the selection.
const QueryKey = "filters"

// EncodeQuery renders the selection as filters=<id>&filters=<id>, keeping
// selection order.
func EncodeQuery(selected []string) string {
	parts := make([]string, 0, len(selected))
	for _, id := range selected {
		parts = append(parts, QueryKey+"="+url.QueryEscape(id))
	}
	return strings.Join(parts, "&")
}

// DecodeQuery reads the selection back from a raw query string (with or
// without a leading "?"). Empty and repeated ids are dropped.
func DecodeQuery(raw string) []string {
	values, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		// ParseQuery keeps every pair it could read.
		if values == nil {
			return []string{}
		}
	}
	return FromValues(values)
}

// FromValues reads the selection from parsed query values.
func FromValues(values url.Values) []string {
	seen := make(map[string]struct{})
	selected := make([]string, 0)
	for _, id := range values[QueryKey] {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		selected = append(selected, id)
	}
	return selected
}
