package auth

import (
	"net/url"
)

// CookieSettings contains cookie security settings derived from base URL.
type CookieSettings struct {
	// Secure indicates whether the cookie should only be sent over HTTPS.
	Secure bool
	// Domain is the cookie domain scope. Empty means host-only.
	Domain string
}

// DeriveCookieSettings determines cookie security settings from the console base URL.
//   - http://localhost:3000 → Secure: false, host-only
//   - https://console.hirepay.example → Secure: true, host-only
//
// The console is a single host, so the cookie is host-only unless configCookieDomain is set.
func DeriveCookieSettings(baseURL string, configCookieDomain string) CookieSettings {
	if configCookieDomain != "" {
		return CookieSettings{
			Secure: isHTTPS(baseURL),
			Domain: configCookieDomain,
		}
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil || baseURL == "" {
		return CookieSettings{Secure: true}
	}

	hostname := parsedURL.Hostname()
	if hostname == "localhost" || hostname == "127.0.0.1" {
		return CookieSettings{Secure: parsedURL.Scheme == "https"}
	}

	return CookieSettings{Secure: parsedURL.Scheme != "http"}
}

// isHTTPS determines if the given base URL uses HTTPS protocol.
// Returns true for empty/invalid URLs.
func isHTTPS(baseURL string) bool {
	if baseURL == "" {
		return true
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return true
	}

	return parsedURL.Scheme != "http"
}
