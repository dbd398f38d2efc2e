package app

import (
	"net/url"
	"strings"
)

// originAllowed checks a request origin against the configured
// allowed_origins patterns. Patterns match the host part only, so
// "example.com" admits both http and https origins; "*.example.com"
// admits any subdomain and "localhost:*" any port.
func originAllowed(patterns []string, origin string) bool {
	host := originHost(origin)
	for _, pattern := range patterns {
		if matchHostPattern(pattern, host) {
			return true
		}
	}
	return false
}

// originHost strips the scheme from an origin, leaving "host[:port]".
// Origins that do not parse as URLs are matched as-is.
func originHost(origin string) string {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return origin
	}
	return u.Host
}

func matchHostPattern(pattern, host string) bool {
	if pattern == host {
		return true
	}
	if strings.HasPrefix(pattern, "*.") {
		return strings.HasSuffix(host, pattern[1:])
	}
	if strings.HasSuffix(pattern, ":*") {
		return strings.HasPrefix(host, pattern[:len(pattern)-1])
	}
	return false
}
