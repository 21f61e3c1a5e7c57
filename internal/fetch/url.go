package fetch

import (
	"net/url"
	"strings"
)

// BuildSearchURL returns the listings search URL for term under baseURL,
// e.g. https://www.olx.in/items/q-car-cover?isSearchCall=true.
func BuildSearchURL(baseURL, term string) string {
	slug := strings.Join(strings.Fields(strings.ToLower(term)), "-")
	return strings.TrimRight(baseURL, "/") + "/items/q-" + url.PathEscape(slug) + "?isSearchCall=true"
}
