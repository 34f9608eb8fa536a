package classify

import (
	"strings"

	"github.com/rbscholtus/gweblog/internal/logfmt"
)

// googleHosts gates keyphrase extraction to referers that actually came
// from a Google host; a non-Google site whose query string happens to
// contain an anchor substring must not be misclassified.
var googleHosts = []string{
	"www.google.",
	"webcache.googleusercontent.com",
	"translate.googleusercontent.com",
}

// searchAnchors are evaluated in priority order against the RAW
// (not-yet-decoded) referer string. The first anchor whose segment is
// non-empty wins; an anchor that matches with an empty segment is passed
// over for the next one. The keyphrase is the query term found after the
// anchor, URL-decoded and with '+' treated as a space.
var searchAnchors = []string{
	"/+&",
	"/+",
	"q=cache:",
	"&q=",
	"?q=",
	"%26q%3D",
	"%3Fq%3D",
}

// encodedAnchors terminate their keyphrase segment at a percent-encoded
// "&" (%26) rather than a literal one, since the anchor itself matched
// inside an already percent-encoded query string.
var encodedAnchors = map[string]bool{
	"%26q%3D": true,
	"%3Fq%3D": true,
}

// GoogleKeyphrase extracts a search keyphrase from a raw Google referer
// URL, trying each anchor in priority order. It returns false when the
// referer isn't from a recognized Google host, or no anchor is present
// with a non-empty segment after it.
func GoogleKeyphrase(rawReferer string) (string, bool) {
	if rawReferer == "" || !isGoogleReferer(rawReferer) {
		return "", false
	}
	for _, anchor := range searchAnchors {
		idx := strings.Index(rawReferer, anchor)
		if idx < 0 {
			continue
		}
		start := idx + len(anchor)
		rest := rawReferer[start:]

		terminator := "&"
		if encodedAnchors[anchor] {
			terminator = "%26"
		}
		if end := strings.Index(rest, terminator); end >= 0 {
			rest = rest[:end]
		}

		rest = logfmt.DecodeURL(rest, false)
		rest = strings.ReplaceAll(rest, "+", " ")
		rest = strings.TrimSpace(rest)
		if rest == "" {
			continue
		}
		return rest, true
	}
	return "", false
}

func isGoogleReferer(rawReferer string) bool {
	for _, host := range googleHosts {
		if strings.Contains(rawReferer, host) {
			return true
		}
	}
	return false
}
