package rdf

import (
	"net/url"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ajitpratap0/csvgraph/pkg/errors"
)

// IsValidURI checks that s is a syntactically valid URI reference. Relative
// references are accepted. Characters outside RFC 3986 are rejected except
// non-ASCII letters and symbols, which IRIs allow.
func IsValidURI(s string) error {
	if s == "" {
		return errors.New(errors.ErrorTypeValidation, "empty URI")
	}
	fragments := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			return invalidURI(s, "invalid UTF-8", i)
		case r == '%':
			if i+2 >= len(s) || !isHex(s[i+1]) || !isHex(s[i+2]) {
				return invalidURI(s, "malformed escape", i)
			}
		case r == '#':
			fragments++
			if fragments > 1 {
				return invalidURI(s, "more than one fragment", i)
			}
		case r < utf8.RuneSelf:
			if !isURIByte(byte(r)) {
				return invalidURI(s, "illegal character", i)
			}
		default:
			if unicode.IsSpace(r) || unicode.IsControl(r) {
				return invalidURI(s, "illegal character", i)
			}
		}
		i += size
	}
	if _, err := url.Parse(s); err != nil {
		return errors.Wrap(err, errors.ErrorTypeValidation, "invalid URI").WithDetail("uri", s)
	}
	return nil
}

func invalidURI(s, reason string, index int) error {
	return errors.New(errors.ErrorTypeValidation, reason+" in URI").
		WithDetail("uri", s).
		WithDetail("index", index)
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// isURIByte reports whether c is an unreserved or reserved RFC 3986 character.
// '%' and '#' are handled by the caller.
func isURIByte(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-._~:/?[]@!$&'()*+,;=", c) >= 0
}

// IsAbsoluteURI reports whether s parses as a URI with a scheme. Single
// letter schemes are treated as Windows drive letters, not URIs.
func IsAbsoluteURI(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return len(u.Scheme) > 1
}

// ResolveIRI turns a source identifier into an absolute IRI. Absolute URIs
// are returned unchanged; anything else is taken as a filesystem path and
// resolved against the working directory into a file: IRI. If the working
// directory cannot be determined the input is returned as is.
func ResolveIRI(s string) string {
	if IsAbsoluteURI(s) {
		return s
	}
	abs, err := filepath.Abs(s)
	if err != nil {
		return s
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	if !strings.HasPrefix(u.Path, "/") {
		u.Path = "/" + u.Path
	}
	return u.String()
}
