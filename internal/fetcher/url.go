package fetcher

import (
	"net/url"
	"strings"
)

// NormalizeURL turns user input into a well-formed absolute URL. Input
// without a scheme gets https:// prepended, so "example.com/cat.jpg"
// proceeds as "https://example.com/cat.jpg". Empty input or input with no
// host after normalization fails with an invalid-URL error.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", NewInvalidURL(raw, nil)
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", NewInvalidURL(raw, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", &Error{Kind: KindInvalidURL, URL: raw, Detail: "only http and https are supported"}
	}

	if u.Host == "" {
		return "", &Error{Kind: KindInvalidURL, URL: raw, Detail: "missing host"}
	}

	return u.String(), nil
}
