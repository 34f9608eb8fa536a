// Package classify implements the record classifier: 404/444 detection,
// static-content detection, query-string stripping, req_key derivation,
// and the exclusion checks (IP range, crawler, referer site).
package classify

import (
	"strings"

	"github.com/rbscholtus/gweblog/internal/config"
	"github.com/rbscholtus/gweblog/internal/ipfilter"
	"github.com/rbscholtus/gweblog/internal/logitem"
	"github.com/rbscholtus/gweblog/internal/oracle"
)

// Decision carries everything the aggregation dispatcher needs after
// classification, beyond what is already set on the Item itself.
type Decision struct {
	ReqKey  string
	Is404   bool
	IsStatic bool

	ExcludeIP       bool
	ExcludeCrawler  bool
	ExcludeReferer  bool
}

// Excluders bundles the IP-range, referer, and crawler-oracle exclusion
// collaborators the classifier consults.
type Excluders struct {
	IPRanges      *ipfilter.Ranges
	RefererIgnore *ipfilter.GlobSet
	Oracle        oracle.Oracle
}

// Classify derives the request key and static/404 classification for
// item, and evaluates the three exclusion checks in the component
// design: IP range, crawler, and referer-site ignore lists. The caller
// is responsible for skipping aggregation on any Exclude* flag.
func Classify(item *logitem.Item, cfg *config.Core, ex Excluders) Decision {
	var dec Decision

	dec.Is404 = isNotFound(item.Status, cfg.Code444As404)

	req := item.Req
	if !dec.Is404 {
		req = stripQueryString(req, cfg.IgnoreQstr)
	}

	dec.ReqKey = buildReqKey(req, item.Method, item.Protocol, cfg.AppendMethod, cfg.AppendProtocol)
	dec.IsStatic = verifyStaticContent(req, cfg.StaticFiles, cfg.StaticFileMaxLen)

	if ex.IPRanges != nil {
		dec.ExcludeIP = ex.IPRanges.Contains(item.Host)
	}
	if ex.Oracle != nil && cfg.IgnoreCrawlers {
		dec.ExcludeCrawler = ex.Oracle.IsCrawler(item.Agent)
	}
	if ex.RefererIgnore != nil {
		dec.ExcludeReferer = ex.RefererIgnore.Match(item.Site)
	}

	return dec
}

// isNotFound implements the is404 predicate: status is exactly "404", or
// "444" when code444AsNotFound is set.
func isNotFound(status string, code444AsNotFound bool) bool {
	if status == "404" {
		return true
	}
	return code444AsNotFound && status == "444"
}

// stripQueryString truncates req at the first '?' when ignoreQstr is set
// and the '?' is not at offset 0.
func stripQueryString(req string, ignoreQstr bool) string {
	if !ignoreQstr {
		return req
	}
	if idx := strings.IndexByte(req, '?'); idx > 0 {
		return req[:idx]
	}
	return req
}

// buildReqKey prepends the uppercased method and/or protocol to req when
// configured, then collapses embedded whitespace runs to single spaces.
func buildReqKey(req, method, protocol string, appendMethod, appendProtocol bool) string {
	key := req
	if key == "" {
		return key
	}
	if appendProtocol && protocol != "" {
		key = strings.ToUpper(protocol) + " " + key
	}
	if appendMethod && method != "" {
		key = strings.ToUpper(method) + " " + key
	}
	if appendMethod || appendProtocol {
		key = deblank(key)
	}
	return key
}

// deblank collapses runs of ASCII whitespace into single spaces and trims
// the ends; used on visitor keys and request keys alike.
func deblank(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

// verifyStaticContent reports whether req looks like a static file: its
// length meets the configured minimum and its suffix matches one of the
// configured extensions byte-for-byte.
func verifyStaticContent(req string, exts []string, maxLen int) bool {
	if maxLen < 1 {
		maxLen = 1
	}
	if len(req) < maxLen {
		return false
	}
	for _, ext := range exts {
		if ext == "" {
			continue
		}
		if strings.HasSuffix(req, ext) {
			return true
		}
	}
	return false
}
