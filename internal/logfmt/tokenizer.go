// Package logfmt implements the format-directed line parser: the field
// tokenizer, URL decoder, per-specifier field parsers, and the line
// parser that walks a printf-like log format string.
package logfmt

import "strings"

// NextToken consumes bytes from line[pos:] up to the count-th unescaped
// occurrence of delim, or to end of line, whichever comes first. delim==0
// means "no delimiter configured", and the token always runs to the end
// of the line.
//
// A backslash escapes the byte that follows it: the escaped byte never
// counts toward a delim occurrence, but the backslash itself is retained
// in the returned token (callers trim as needed, per the tokenizer's
// looseness around escape handling).
//
// The returned cursor position sits exactly at the matched delimiter
// (left for the line parser's literal-byte walk to consume), or at
// len(line) when no match was found.
func NextToken(line string, pos int, delim byte, count int) (token string, newPos int) {
	if count < 1 {
		count = 1
	}
	idx := 0
	i := pos
	for i < len(line) {
		c := line[i]
		if c == '\\' && i+1 < len(line) {
			i += 2
			continue
		}
		if delim != 0 && c == delim {
			idx++
			if idx == count {
				return strings.TrimSpace(line[pos:i]), i
			}
		}
		i++
	}
	return strings.TrimSpace(line[pos:i]), i
}

// SkipTo advances pos to the next occurrence of delim in line, leaving pos
// unchanged if delim does not appear. This implements the pass-through
// default specifier branch of the line parser: "skip field up to delimiter
// X" without capturing the skipped bytes anywhere.
func SkipTo(line string, pos int, delim byte) int {
	if delim == 0 {
		return pos
	}
	if idx := strings.IndexByte(line[pos:], delim); idx >= 0 {
		return pos + idx
	}
	return pos
}
