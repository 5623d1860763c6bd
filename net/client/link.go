package client

import (
	"net/http"
	"net/url"
	"strings"
)

// Link is one entry of an RFC 8288 Link header.
type Link struct {
	URL string
	Rel string
}

// ParseLinks parses all Link header values of h.
func ParseLinks(h http.Header) []Link {
	var links []Link
	for _, value := range h.Values("Link") {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if !strings.HasPrefix(part, "<") {
				continue
			}
			end := strings.Index(part, ">")
			if end < 0 {
				continue
			}
			link := Link{URL: part[1:end]}
			for _, param := range strings.Split(part[end+1:], ";") {
				k, v, ok := strings.Cut(strings.TrimSpace(param), "=")
				if !ok || !strings.EqualFold(strings.TrimSpace(k), "rel") {
					continue
				}
				link.Rel = strings.Trim(strings.TrimSpace(v), `"`)
			}
			links = append(links, link)
		}
	}
	return links
}

// NextMaxID returns the max_id of the rel="next" link, or "" when the
// response has no next page.
func NextMaxID(h http.Header) string {
	for _, link := range ParseLinks(h) {
		for _, rel := range strings.Fields(link.Rel) {
			if rel != "next" {
				continue
			}
			u, err := url.Parse(link.URL)
			if err != nil {
				return ""
			}
			return u.Query().Get("max_id")
		}
	}
	return ""
}
