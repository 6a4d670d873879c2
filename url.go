package newsscout

import (
	"net/url"
	"regexp"
	"strings"
)

var repeatedSlashes = regexp.MustCompile(`/{2,}`)

// NormalizeURL canonicalizes a URL for deduplication. It strips the
// fragment, collapses repeated slashes in the path and removes a single
// trailing slash from non-root paths. Scheme and host are lower-cased.
//
// Input that does not parse as an absolute URL is returned unchanged.
// NormalizeURL is idempotent.
func NormalizeURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return raw
	}

	u.Fragment = ""
	u.RawFragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	if u.Path != "" {
		p := repeatedSlashes.ReplaceAllString(u.Path, "/")
		if len(p) > 1 {
			p = strings.TrimSuffix(p, "/")
		}
		u.Path = p
		u.RawPath = ""
	}

	return u.String()
}

// ResolveURL resolves href against base and returns the absolute URL.
// Returns an empty string when href is empty, cannot be parsed, or does not
// resolve to an http(s) URL (javascript:, mailto:, tel:, data: and friends).
func ResolveURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}

	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}

	if !ref.IsAbs() {
		b, err := url.Parse(base)
		if err != nil || b.Scheme == "" || b.Host == "" {
			return ""
		}
		ref = b.ResolveReference(ref)
	}

	if ref.Scheme != "http" && ref.Scheme != "https" {
		return ""
	}
	if ref.Host == "" {
		return ""
	}
	return ref.String()
}

// SameSite reports whether two URLs point at the same site. Hosts are
// compared case-insensitively, ignoring a leading "www.".
func SameSite(a, b string) bool {
	ha, hb := siteHost(a), siteHost(b)
	return ha != "" && ha == hb
}

func siteHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
}

// SiteRoot returns the scheme and host of a URL ("https://example.com").
// Returns an empty string if the URL is not absolute.
func SiteRoot(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
