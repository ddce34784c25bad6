// Package dburl normalizes and inspects postgres connection strings in both
// URL (postgres://...) and keyword (host=... dbname=...) form.
package dburl

import (
	"net/url"
	"strings"
)

const preparedBinaryParam = "disable_prepared_binary_result"

// Normalize adds disable_prepared_binary_result=yes for poolers that cannot
// handle binary results of prepared statements. An explicit value is kept.
func Normalize(raw string, disablePreparedBinary bool) string {
	raw = strings.TrimSpace(raw)
	if !disablePreparedBinary {
		return raw
	}

	parsed, ok := parseURL(raw)
	if !ok {
		if strings.Contains(raw, preparedBinaryParam+"=") {
			return raw
		}
		return raw + " " + preparedBinaryParam + "=yes"
	}

	query := parsed.Query()
	if query.Get(preparedBinaryParam) != "" {
		return raw
	}
	query.Set(preparedBinaryParam, "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// DatabaseName returns the database name, or "" when none is present.
func DatabaseName(raw string) string {
	raw = strings.TrimSpace(raw)
	if parsed, ok := parseURL(raw); ok {
		return strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
	}
	return keyword(raw, "dbname")
}

// Redact hides the password so the string can be logged.
func Redact(raw string) string {
	raw = strings.TrimSpace(raw)
	if parsed, ok := parseURL(raw); ok {
		return parsed.Redacted()
	}

	fields := strings.Fields(raw)
	for i, field := range fields {
		if strings.HasPrefix(field, "password=") {
			fields[i] = "password=xxxxx"
		}
	}
	return strings.Join(fields, " ")
}

func parseURL(raw string) (*url.URL, bool) {
	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, false
	}
	return parsed, true
}

func keyword(raw, key string) string {
	for _, field := range strings.Fields(raw) {
		name, value, ok := strings.Cut(field, "=")
		if ok && name == key {
			return strings.Trim(value, `"'`)
		}
	}
	return ""
}
