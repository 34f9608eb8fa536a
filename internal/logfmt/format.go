package logfmt

import (
	"strconv"
	"strings"

	"github.com/rbscholtus/gweblog/internal/logitem"
)

// Options carries the subset of core configuration the field parsers
// consult while decomposing a line.
type Options struct {
	DoubleDecode    bool
	AppendMethod    bool
	AppendProtocol  bool
}

// Result reports flags discovered while parsing a line: runtime facts
// about what the format actually contained, not configuration the
// caller set ahead of time.
type Result struct {
	Bandwidth  bool
	ServeUsecs bool
}

// ParseFormat walks lfmt byte by byte against line, invoking the matching
// field parser for each %-specifier and advancing a line cursor. Literal
// bytes in lfmt are expected to match the input but are not verified — a
// known looseness inherited from the format this parser is modeled on.
// Returns true if the line must be rejected.
func ParseFormat(item *logitem.Item, lfmt, dfmt, line string, opts Options) (reject bool, res Result) {
	if line == "" {
		return true, res
	}

	pos := 0
	special := false

	for fi := 0; fi < len(lfmt); fi++ {
		c := lfmt[fi]
		if c == '%' {
			special = true
			continue
		}
		if special {
			if isSpace(c) {
				return true, res
			}
			if pos >= len(line) {
				return false, res
			}
			var delim byte
			if fi+1 < len(lfmt) {
				delim = lfmt[fi+1]
			}
			rej := parseSpecifier(item, lfmt, dfmt, line, &pos, c, delim, opts, &res)
			if rej {
				return true, res
			}
			special = false
			continue
		}
		if pos < len(line) {
			pos++
		}
	}

	return false, res
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// parseSpecifier implements one field parser from the specifier set of
// the component design: date, host, method, URI, protocol, request-line,
// status, response size, referer, agent, serve-seconds, serve-microseconds,
// and the default pass-through branch for anything else.
func parseSpecifier(item *logitem.Item, lfmt, dfmt, line string, pos *int, spec, delim byte, opts Options, res *Result) bool {
	switch spec {
	case 'd':
		if item.Date != "" {
			return true
		}
		count := CountDateSpaces(dfmt) + 1
		tkn, newPos := NextToken(line, *pos, delim, count)
		*pos = newPos
		if tkn == "" {
			return true
		}
		tm, ok := parseDate(tkn, dfmt)
		if !ok {
			return true
		}
		item.Date = tkn
		item.DateKey = tm.DateKey()
		return false

	case 'h':
		if item.Host != "" {
			return true
		}
		tkn, newPos := NextToken(line, *pos, delim, 1)
		*pos = newPos
		if tkn == "" {
			return true
		}
		typ, ok := validateIP(tkn)
		if !ok {
			return true
		}
		item.Host = tkn
		item.TypeIP = typ
		return false

	case 'm':
		if item.Method != "" {
			return true
		}
		tkn, newPos := NextToken(line, *pos, delim, 1)
		*pos = newPos
		if tkn == "" {
			return true
		}
		m, ok := extractMethod(tkn)
		if !ok {
			return true
		}
		item.Method = m
		return false

	case 'U':
		if item.Req != "" {
			return true
		}
		tkn, newPos := NextToken(line, *pos, delim, 1)
		*pos = newPos
		if tkn == "" {
			return true
		}
		decoded := DecodeURL(tkn, opts.DoubleDecode)
		if decoded == "" {
			return true
		}
		item.Req = decoded
		return false

	case 'H':
		if item.Protocol != "" {
			return true
		}
		tkn, newPos := NextToken(line, *pos, delim, 1)
		*pos = newPos
		if tkn == "" {
			return true
		}
		if !validProtocol(tkn) {
			return true
		}
		item.Protocol = strings.ToUpper(tkn)
		return false

	case 'r':
		if item.Req != "" {
			return true
		}
		tkn, newPos := NextToken(line, *pos, delim, 1)
		*pos = newPos
		if tkn == "" {
			return true
		}
		uri, method, protocol := parseReq(tkn, opts.AppendMethod, opts.AppendProtocol, opts.DoubleDecode)
		item.Req = uri
		if method != "" {
			item.Method = method
		}
		if protocol != "" {
			item.Protocol = protocol
		}
		return false

	case 's':
		if item.Status != "" {
			return true
		}
		tkn, newPos := NextToken(line, *pos, delim, 1)
		*pos = newPos
		if tkn == "" {
			return true
		}
		n, err := strconv.Atoi(tkn)
		if err != nil || n < 100 || n > 999 {
			return true
		}
		item.Status = tkn
		return false

	case 'b':
		if item.RespSize != 0 {
			return true
		}
		tkn, newPos := NextToken(line, *pos, delim, 1)
		*pos = newPos
		if tkn == "" {
			return true
		}
		n, err := strconv.ParseUint(tkn, 10, 64)
		if err != nil {
			n = 0
		}
		item.RespSize = n
		res.Bandwidth = true
		return false

	case 'R':
		if item.Ref != "" {
			return true
		}
		tkn, newPos := NextToken(line, *pos, delim, 1)
		*pos = newPos
		if tkn == "" {
			tkn = "-"
		}
		if tkn != "-" {
			if site, ok := SiteOf(tkn); ok {
				item.Site = site
			}
		}
		item.Ref = tkn
		return false

	case 'u':
		if item.Agent != "" {
			return true
		}
		tkn, newPos := NextToken(line, *pos, delim, 1)
		*pos = newPos
		if tkn == "" {
			item.Agent = "-"
			return false
		}
		decoded := strings.ReplaceAll(DecodeURL(tkn, opts.DoubleDecode), "+", " ")
		if decoded == "" {
			decoded = "-"
		}
		item.Agent = decoded
		return false

	case 'T':
		if item.ServeTime != 0 {
			return true
		}
		if strings.Contains(lfmt, "%D") {
			return false
		}
		tkn, newPos := NextToken(line, *pos, delim, 1)
		*pos = newPos
		if tkn == "" {
			return true
		}
		var secs float64
		if strings.Contains(tkn, ".") {
			if v, err := strconv.ParseFloat(tkn, 64); err == nil {
				secs = v
			}
		} else {
			if v, err := strconv.ParseUint(tkn, 10, 64); err == nil {
				secs = float64(v)
			}
		}
		item.ServeTime = uint64(secs * 1_000_000)
		res.ServeUsecs = true
		return false

	case 'D':
		if item.ServeTime != 0 {
			return true
		}
		tkn, newPos := NextToken(line, *pos, delim, 1)
		*pos = newPos
		if tkn == "" {
			return true
		}
		n, err := strconv.ParseUint(tkn, 10, 64)
		if err != nil {
			n = 0
		}
		item.ServeTime = n
		res.ServeUsecs = true
		return false

	default:
		*pos = SkipTo(line, *pos, delim)
		return false
	}
}
