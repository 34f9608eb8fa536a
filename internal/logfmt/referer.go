package logfmt

import (
	"strings"

	"github.com/rbscholtus/gweblog/internal/logitem"
)

// SiteOf extracts the host component of a referer URL: locate "//", take
// the bytes after it up to the next "/" or end of string, truncated to
// RefSiteLen-1 bytes. A referer with no "//" yields no site.
func SiteOf(referer string) (string, bool) {
	idx := strings.Index(referer, "//")
	if idx < 0 {
		return "", false
	}
	begin := idx + 2
	if begin >= len(referer) {
		return "", false
	}
	rest := referer[begin:]
	if end := strings.IndexByte(rest, '/'); end >= 0 {
		rest = rest[:end]
	}
	if rest == "" {
		return "", false
	}
	if len(rest) >= logitem.RefSiteLen {
		rest = rest[:logitem.RefSiteLen-1]
	}
	return rest, true
}
