package util

import (
	"net/url"
	"strings"
)

// IsRedirectSafe reports whether target may be used as a post-login or
// post-language-switch redirect. Local paths are allowed; absolute URLs
// only when they are http(s) and point at the host of baseURL.
func IsRedirectSafe(target, baseURL string) bool {
	if target == "" {
		return true
	}
	if strings.ContainsAny(target, "\r\n\\") {
		return false
	}
	if strings.HasPrefix(target, "/") {
		return !strings.HasPrefix(target, "//")
	}

	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return false
	}
	return u.Host != "" && u.Host == base.Host
}

// SafeRedirect returns target when it is safe and non-empty, otherwise
// fallback.
func SafeRedirect(target, baseURL, fallback string) string {
	if target == "" || !IsRedirectSafe(target, baseURL) {
		return fallback
	}
	return target
}
