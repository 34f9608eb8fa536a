// Package oracle implements the classifier-oracle collaborator, treated
// as external: mapping a user-agent string to a crawler verdict, a
// browser name/family, and an OS name/family.
//
// No dedicated user-agent sniffer library is wired in, so this is a
// small ordered signature table evaluated with the standard library's
// regexp — documented and justified in DESIGN.md rather than grounded
// on a third-party parser.
package oracle

import "regexp"

// Oracle is the interface the record classifier and the aggregation
// dispatcher consult; callers may substitute their own implementation
// (e.g. backed by a signature database loaded from disk).
type Oracle interface {
	IsCrawler(agent string) bool
	VerifyBrowser(agent string) (name, family string, ok bool)
	VerifyOS(agent string) (name, family string, ok bool)
}

type signature struct {
	pattern *regexp.Regexp
	name    string
	family  string
}

type table struct {
	crawlers []*regexp.Regexp
	browsers []signature
	systems  []signature
}

// Default returns the built-in signature-table oracle.
func Default() Oracle {
	return &defaultTable
}

var defaultTable = table{
	crawlers: compileAll(
		`(?i)googlebot`, `(?i)bingbot`, `(?i)yandexbot`, `(?i)duckduckbot`,
		`(?i)baiduspider`, `(?i)slurp`, `(?i)facebookexternalhit`,
		`(?i)ahrefsbot`, `(?i)semrushbot`, `(?i)mj12bot`, `(?i)crawler`,
		`(?i)spider`, `(?i)bot\b`,
	),
	browsers: []signature{
		{regexp.MustCompile(`(?i)edg(e|a|ios)?/`), "Edge", "Browser"},
		{regexp.MustCompile(`(?i)opr/|opera`), "Opera", "Browser"},
		{regexp.MustCompile(`(?i)chrome/`), "Chrome", "Browser"},
		{regexp.MustCompile(`(?i)crios/`), "Chrome", "Browser"},
		{regexp.MustCompile(`(?i)fxios/|firefox/`), "Firefox", "Browser"},
		{regexp.MustCompile(`(?i)safari/`), "Safari", "Browser"},
		{regexp.MustCompile(`(?i)msie |trident/`), "MSIE", "Browser"},
		{regexp.MustCompile(`(?i)curl/`), "curl", "Other"},
		{regexp.MustCompile(`(?i)wget/`), "Wget", "Other"},
	},
	systems: []signature{
		{regexp.MustCompile(`(?i)windows nt`), "Windows", "Windows"},
		{regexp.MustCompile(`(?i)mac os x|macintosh`), "macOS", "macOS"},
		{regexp.MustCompile(`(?i)android`), "Android", "Android"},
		{regexp.MustCompile(`(?i)iphone|ipad|ipod`), "iOS", "iOS"},
		{regexp.MustCompile(`(?i)linux`), "Linux", "Unix"},
	},
}

func compileAll(patterns ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		res = append(res, regexp.MustCompile(p))
	}
	return res
}

func (t *table) IsCrawler(agent string) bool {
	if agent == "" || agent == "-" {
		return false
	}
	for _, re := range t.crawlers {
		if re.MatchString(agent) {
			return true
		}
	}
	return false
}

func (t *table) VerifyBrowser(agent string) (string, string, bool) {
	for _, s := range t.browsers {
		if s.pattern.MatchString(agent) {
			return s.name, s.family, true
		}
	}
	return "", "", false
}

func (t *table) VerifyOS(agent string) (string, string, bool) {
	for _, s := range t.systems {
		if s.pattern.MatchString(agent) {
			return s.name, s.family, true
		}
	}
	return "", "", false
}
