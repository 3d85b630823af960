package validation

import (
	"net/url"
	"regexp"
	"strings"
)

// ProductKeyPattern defines the valid product key format: lowercase
// alphanumeric, hyphens, underscores.
var ProductKeyPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// ModePattern defines a report mode usable as a blob key prefix.
var ModePattern = regexp.MustCompile(`^[a-z0-9_-]{1,64}$`)

// ValidateProductKey checks if a product key matches the allowed pattern.
func ValidateProductKey(key string) bool {
	if key == "" || len(key) > 100 {
		return false
	}
	return ProductKeyPattern.MatchString(key)
}

// ValidateMode checks that a report mode cannot escape its key prefix.
func ValidateMode(mode string) bool {
	return ModePattern.MatchString(mode)
}

// NormalizeEmail trims and lowercases an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
// This prevents javascript:, data:, vbscript:, and other dangerous URL schemes.
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}
