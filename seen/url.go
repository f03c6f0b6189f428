package seen

import (
	"net/url"
	"strings"
)

// NormalizeURL canonicalizes a video URL before hashing so the same video
// reached through different share links matches: lowercase scheme/host,
// fragment removed, tracking query params dropped, trailing slash trimmed.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return strings.ToLower(raw)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	q := u.Query()
	for k := range q {
		lk := strings.ToLower(k)
		if strings.HasPrefix(lk, "utm_") || lk == "fbclid" || lk == "gclid" || lk == "_r" || lk == "_t" {
			q.Del(k)
		}
	}
	u.RawQuery = q.Encode()

	out := u.String()
	return strings.TrimRight(out, "/")
}
