// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/jtacoma/uritemplates"
)

// errBadScheme is returned internally when a URL's scheme has
// characters RFC 3986 does not allow.
var errBadScheme = errors.New("invalid URL scheme")

// EscapeSegment percent-encodes a single path segment.  Besides the
// characters url.PathEscape handles, this also escapes ":", so a
// qualified name like "topp:roads" is never read as a scheme or port.
func EscapeSegment(segment string) string {
	return strings.Replace(url.PathEscape(segment), ":", "%3A", -1)
}

// EncodeURL re-encodes the authority and path of a URL string so that
// object names with spaces or reserved characters cannot corrupt the
// request line.  The path is first decoded, so an already-encoded
// URL comes back unchanged.  The query and fragment are left alone.
//
// If the URL cannot be taken apart, for instance because it holds a
// malformed %-escape, the original string is returned as is.
func EncodeURL(raw string) string {
	encoded, err := reencodeURL(raw)
	if err != nil {
		return raw
	}
	return encoded
}

func reencodeURL(raw string) (string, error) {
	rest := raw
	var suffix string
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		suffix = rest[i:]
		rest = rest[:i]
	}

	var prefix string
	if i := strings.Index(rest, "://"); i >= 0 {
		scheme := rest[:i]
		if !validScheme(scheme) {
			return "", errBadScheme
		}
		rest = rest[i+3:]
		authority := rest
		if j := strings.Index(rest, "/"); j >= 0 {
			authority = rest[:j]
			rest = rest[j:]
		} else {
			rest = ""
		}
		escaped, err := escapeAuthority(authority)
		if err != nil {
			return "", err
		}
		prefix = scheme + "://" + escaped
	}

	segments := strings.Split(rest, "/")
	for i, segment := range segments {
		plain, err := url.PathUnescape(segment)
		if err != nil {
			return "", err
		}
		segments[i] = EscapeSegment(plain)
	}
	return prefix + strings.Join(segments, "/") + suffix, nil
}

func validScheme(scheme string) bool {
	if scheme == "" {
		return false
	}
	for i, c := range scheme {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
			continue
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
			continue
		default:
			return false
		}
	}
	return true
}

// escapeAuthority escapes characters that may not appear in the
// authority part of a URL (RFC 3986 section 3.2), leaving existing
// valid %-escapes alone.
func escapeAuthority(authority string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(authority); i++ {
		c := authority[i]
		switch {
		case c == '%':
			if i+2 >= len(authority) || !isHex(authority[i+1]) || !isHex(authority[i+2]) {
				return "", fmt.Errorf("invalid escape in authority %q", authority)
			}
			b.WriteByte(c)
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9',
			strings.IndexByte("-._~!$&'()*+,;=:@[]", c) >= 0:
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String(), nil
}

func isHex(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

// JoinPath appends escaped path segments to a base URL.  Each segment
// is one object name or fixed path element; "/" inside a segment is
// escaped, not treated as a separator.
func JoinPath(base string, segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = EscapeSegment(s)
	}
	return strings.TrimRight(base, "/") + "/" + strings.Join(escaped, "/")
}

// Expand fills in a URI template.  String values, and each element
// of []string values, are escaped as path segments by the template
// engine.
func Expand(template string, vars map[string]interface{}) (string, error) {
	tmpl, err := uritemplates.Parse(template)
	if err != nil {
		return "", err
	}
	return tmpl.Expand(vars)
}

// WithQuery adds a query parameter to a URL string.
func WithQuery(rawURL, key, value string) string {
	fragment := ""
	if i := strings.Index(rawURL, "#"); i >= 0 {
		fragment = rawURL[i:]
		rawURL = rawURL[:i]
	}
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + url.QueryEscape(key) + "=" + url.QueryEscape(value) + fragment
}

// QuietOnNotFound marks a probe request so the server does not log a
// 404 as an error.
func QuietOnNotFound(rawURL string) string {
	return WithQuery(rawURL, QuietOnNotFoundParam, "true")
}

// Recurse marks a DELETE as also removing everything below the
// target.
func Recurse(rawURL string) string {
	return WithQuery(rawURL, RecurseParam, "true")
}

// Purge marks a DELETE as also removing files on the server; mode is
// typically "true", "all", "metadata" or "none".
func Purge(rawURL, mode string) string {
	return WithQuery(rawURL, PurgeParam, mode)
}

// WithSuffix appends a format suffix such as ".xml" to the path part
// of a URL string, before any query.
func WithSuffix(rawURL, suffix string) string {
	if i := strings.IndexAny(rawURL, "?#"); i >= 0 {
		return rawURL[:i] + suffix + rawURL[i:]
	}
	return rawURL + suffix
}
