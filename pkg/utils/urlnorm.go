package utils

import (
	"net/url"
	"strings"
)

// trackingParams are query keys that never change which posting a URL points
// at, only where the click came from.
var trackingParams = map[string]bool{
	"gclid":    true,
	"fbclid":   true,
	"mc_cid":   true,
	"mc_eid":   true,
	"ref":      true,
	"referrer": true,
	"source":   true,
}

// NormalizeURL canonicalizes a posting URL so equivalent links compare equal
// for duplicate detection: drops the fragment, removes utm_* and known
// tracking parameters, and strips a single trailing slash (root path exempt).
// Input that does not parse as a URL is returned trimmed rather than
// discarded. Idempotent.
func NormalizeURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return s
	}

	u.Fragment = ""

	q := u.Query()
	for key := range q {
		lower := strings.ToLower(key)
		if strings.HasPrefix(lower, "utm_") || trackingParams[lower] {
			q.Del(key)
		}
	}
	u.RawQuery = q.Encode()

	if len(u.Path) > 1 && strings.HasSuffix(u.Path, "/") {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}

	return u.String()
}

// ExtractDomain returns the lowercased hostname of a URL, used for
// per-domain rate limiting. Unparseable input yields "unknown".
func ExtractDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "unknown"
	}
	return strings.ToLower(u.Hostname())
}
