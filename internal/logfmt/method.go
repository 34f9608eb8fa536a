package logfmt

import "strings"

// methods is the recognized set of HTTP methods, canonical uppercase form.
var methods = []string{
	"OPTIONS", "GET", "HEAD", "POST", "PUT", "DELETE", "TRACE", "CONNECT", "PATCH",
}

// extractMethod matches token against the method table case-insensitively,
// comparing the first len(method) bytes of token, so a token that starts
// with a method name (e.g. a whole "GET /x HTTP/1.1" request line)
// matches. It returns the canonical uppercase method name and whether a
// match was found.
func extractMethod(token string) (string, bool) {
	for _, m := range methods {
		if len(token) >= len(m) && strings.EqualFold(token[:len(m)], m) {
			return m, true
		}
	}
	return "", false
}

// validProtocol reports whether token is exactly "HTTP/1.0" or "HTTP/1.1".
func validProtocol(token string) bool {
	return token == "HTTP/1.0" || token == "HTTP/1.1"
}

// parseReq splits a combined "METHOD URI PROTOCOL" request-line token into
// its URI, with optional method/protocol capture. If no recognized method
// prefixes the token, the whole token is treated as the URI. If a method
// is recognized but no protocol suffix is found, the URI is reported as
// "-" (an intentional asymmetry between %U and %r on decode/empty-URI
// handling, documented in DESIGN.md).
func parseReq(token string, appendMethod, appendProtocol, doubleDecode bool) (uri, method, protocol string) {
	meth, ok := extractMethod(token)
	if !ok {
		return DecodeURL(token, doubleDecode), "", ""
	}

	rest := token[len(meth):]
	idx10 := strings.Index(rest, " HTTP/1.0")
	idx11 := strings.Index(rest, " HTTP/1.1")
	idx := -1
	switch {
	case idx10 >= 0 && (idx11 < 0 || idx10 < idx11):
		idx = idx10
	case idx11 >= 0:
		idx = idx11
	}
	if idx < 0 {
		return "-", "", ""
	}

	uriPart := rest[:idx]
	protoPart := strings.TrimPrefix(rest[idx:], " ")

	if appendMethod {
		method = strings.ToUpper(meth)
	}
	if appendProtocol {
		protocol = strings.ToUpper(protoPart)
	}

	decoded := DecodeURL(uriPart, doubleDecode)
	if decoded != "" {
		return decoded, method, protocol
	}
	return uriPart, method, protocol
}
