// Package validate holds the per-field contact validators and the record
// validator that applies them to an adjudicated record.
package validate

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
)

var placeholders = map[string]bool{
	"blank":     true,
	"n/a":       true,
	"not found": true,
	"":          true,
}

// IsPlaceholder reports whether v is one of the tokens providers use for
// "no value" (BLANK, N/A, Not Found or empty), ignoring case and padding.
func IsPlaceholder(v string) bool {
	return placeholders[strings.ToLower(strings.TrimSpace(v))]
}

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail reports whether v is a syntactically valid email address.
func ValidateEmail(v string) bool {
	if IsPlaceholder(v) {
		return false
	}
	return emailRe.MatchString(strings.TrimSpace(v))
}

// ValidatePhone accepts a 10-digit number, or a 12-digit number carrying
// the 91 country code. Non-digits are ignored.
func ValidatePhone(v string) bool {
	if IsPlaceholder(v) {
		return false
	}
	digits := Digits(v)
	switch len(digits) {
	case 10:
		return true
	case 12:
		return strings.HasPrefix(digits, "91")
	}
	return false
}

// Digits strips everything but ASCII digits from s.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeURL adds an https scheme when none is present.
func NormalizeURL(v string) string {
	v = strings.TrimSpace(v)
	lower := strings.ToLower(v)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		v = "https://" + v
	}
	return v
}

// URLChecker verifies that a website answers with a non-error status.
type URLChecker struct {
	http      *http.Client
	userAgent string
}

// NewURLChecker creates a URLChecker with the given per-request timeout.
func NewURLChecker(timeout time.Duration, userAgent string) *URLChecker {
	if userAgent == "" {
		userAgent = "Mozilla/5.0"
	}
	return &URLChecker{
		http:      &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// WithHTTPClient swaps the underlying http.Client.
func (c *URLChecker) WithHTTPClient(hc *http.Client) *URLChecker {
	c.http = hc
	return c
}

// ValidateURL returns true only when v parses to a URL with a host and a
// live GET answers below 400. Any failure is a rejection.
func (c *URLChecker) ValidateURL(ctx context.Context, v string) bool {
	if IsPlaceholder(v) {
		return false
	}
	raw := NormalizeURL(v)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		zap.L().Debug("validate: url unreachable", zap.String("url", raw), zap.Error(err))
		return false
	}
	defer resp.Body.Close() //nolint:errcheck

	return resp.StatusCode < http.StatusBadRequest
}
