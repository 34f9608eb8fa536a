package logfmt

import (
	"fmt"
	"strconv"
	"strings"
)

var shortMonths = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

var longMonths = map[string]int{
	"january": 1, "february": 2, "march": 3, "april": 4, "may": 5, "june": 6,
	"july": 7, "august": 8, "september": 9, "october": 10, "november": 11, "december": 12,
}

// brokenDownTime is the subset of a strptime-parsed broken-down time the
// core needs to render a date_key bucket.
type brokenDownTime struct {
	year, month, day int
}

// CountDateSpaces returns the number of literal space bytes in a date
// format string, used by the tokenizer's count parameter so that a date
// token containing embedded spaces (e.g. "%b %e %H:%M:%S") is captured as
// a single token.
func CountDateSpaces(dfmt string) int {
	return strings.Count(dfmt, " ")
}

// parseDate parses tkn against dfmt, a strptime-style broken-down-time
// format. The format must consume the entire token; any leftover bytes
// reject the parse, matching strptime's "end != '\0'" check in the
// original C source.
func parseDate(tkn, dfmt string) (brokenDownTime, bool) {
	var tm brokenDownTime
	tm.month, tm.day = 1, 1

	ti, fi := 0, 0
	for fi < len(dfmt) {
		fc := dfmt[fi]
		if fc != '%' {
			if ti >= len(tkn) || tkn[ti] != fc {
				return tm, false
			}
			ti++
			fi++
			continue
		}
		if fi+1 >= len(dfmt) {
			return tm, false
		}
		spec := dfmt[fi+1]
		fi += 2

		switch spec {
		case 'Y':
			n, adv, ok := readDigits(tkn, ti, 4)
			if !ok {
				return tm, false
			}
			tm.year, ti = n, ti+adv
		case 'y':
			n, adv, ok := readDigits(tkn, ti, 2)
			if !ok {
				return tm, false
			}
			if n < 69 {
				n += 2000
			} else {
				n += 1900
			}
			tm.year, ti = n, ti+adv
		case 'm':
			n, adv, ok := readDigits(tkn, ti, 2)
			if !ok || n < 1 || n > 12 {
				return tm, false
			}
			tm.month, ti = n, ti+adv
		case 'd', 'e':
			start := ti
			for start < len(tkn) && tkn[start] == ' ' {
				start++
			}
			n, adv, ok := readDigits(tkn, start, 2)
			if !ok || n < 1 || n > 31 {
				return tm, false
			}
			tm.day, ti = n, start+adv
		case 'b', 'h', 'B':
			name, adv, ok := readAlpha(tkn, ti)
			if !ok {
				return tm, false
			}
			low := strings.ToLower(name)
			month, known := shortMonths[low[:min(3, len(low))]]
			if spec == 'B' {
				if m, ok2 := longMonths[low]; ok2 {
					month, known = m, true
				}
			}
			if !known {
				return tm, false
			}
			tm.month, ti = month, ti+adv
		case 'H', 'M', 'S':
			_, adv, ok := readDigits(tkn, ti, 2)
			if !ok {
				return tm, false
			}
			ti += adv
		case 'z':
			adv, ok := readTZOffset(tkn, ti)
			if !ok {
				return tm, false
			}
			ti += adv
		case 'T':
			// %H:%M:%S
			for _, sub := range []byte{'H', ':', 'M', ':', 'S'} {
				if sub == ':' {
					if ti >= len(tkn) || tkn[ti] != ':' {
						return tm, false
					}
					ti++
					continue
				}
				_, adv, ok := readDigits(tkn, ti, 2)
				if !ok {
					return tm, false
				}
				ti += adv
			}
		case '%':
			if ti >= len(tkn) || tkn[ti] != '%' {
				return tm, false
			}
			ti++
		default:
			return tm, false
		}
	}

	if ti != len(tkn) {
		return tm, false
	}
	return tm, true
}

func readDigits(s string, pos, max int) (value, consumed int, ok bool) {
	start := pos
	for pos < len(s) && pos-start < max && s[pos] >= '0' && s[pos] <= '9' {
		pos++
	}
	if pos == start {
		return 0, 0, false
	}
	n, err := strconv.Atoi(s[start:pos])
	if err != nil {
		return 0, 0, false
	}
	return n, pos - start, true
}

func readAlpha(s string, pos int) (string, int, bool) {
	start := pos
	for pos < len(s) && ((s[pos] >= 'a' && s[pos] <= 'z') || (s[pos] >= 'A' && s[pos] <= 'Z')) {
		pos++
	}
	if pos == start {
		return "", 0, false
	}
	return s[start:pos], pos - start, true
}

func readTZOffset(s string, pos int) (int, bool) {
	start := pos
	if pos < len(s) && (s[pos] == '+' || s[pos] == '-') {
		pos++
	}
	_, adv, ok := readDigits(s, pos, 4)
	if !ok {
		return 0, false
	}
	pos += adv
	return pos - start, true
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// DateKey renders a successfully parsed broken-down time as YYYYMMDD,
// always exactly 8 ASCII digits.
func (tm brokenDownTime) DateKey() string {
	return fmt.Sprintf("%04d%02d%02d", tm.year, tm.month, tm.day)
}
