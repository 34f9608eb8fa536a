package logfmt

import "testing"

func TestNextTokenStopsAtNthDelimiter(t *testing.T) {
	line := `10/Apr/2014:12:00:00 +0000]`
	tkn, pos := NextToken(line, 0, ':', 1)
	if tkn != "10/Apr/2014" {
		t.Fatalf("token = %q, want %q", tkn, "10/Apr/2014")
	}
	if line[pos] != ':' {
		t.Fatalf("cursor left at %q, want ':'", string(line[pos]))
	}
}

func TestNextTokenCountParameter(t *testing.T) {
	// a date format with one embedded space needs count=2 to capture the
	// whole token without splitting on the space.
	line := `10 Apr 2014:rest`
	tkn, pos := NextToken(line, 0, ' ', 2)
	if tkn != "10 Apr" {
		t.Fatalf("token = %q, want %q", tkn, "10 Apr")
	}
	if line[pos] != ' ' {
		t.Fatalf("cursor at %q, want ' '", string(line[pos]))
	}
}

func TestNextTokenEscapedDelimiterNotCounted(t *testing.T) {
	line := `foo\:bar:baz`
	tkn, pos := NextToken(line, 0, ':', 1)
	if tkn != `foo\:bar` {
		t.Fatalf("token = %q, want %q", tkn, `foo\:bar`)
	}
	if line[pos] != ':' {
		t.Fatalf("cursor at wrong position: %q", string(line[pos]))
	}
}

func TestNextTokenNoDelimiterRunsToEnd(t *testing.T) {
	line := "just a plain token"
	tkn, pos := NextToken(line, 0, ':', 1)
	if tkn != line {
		t.Fatalf("token = %q, want entire line", tkn)
	}
	if pos != len(line) {
		t.Fatalf("pos = %d, want %d", pos, len(line))
	}
}

func TestNextTokenZeroDelimiterRunsToEnd(t *testing.T) {
	line := "abc:def"
	tkn, pos := NextToken(line, 0, 0, 1)
	if tkn != line || pos != len(line) {
		t.Fatalf("NextToken with delim=0 should consume to end, got %q at %d", tkn, pos)
	}
}

func TestSkipToAdvancesToDelimiter(t *testing.T) {
	line := "12:00:00 +0000]"
	pos := SkipTo(line, 0, ']')
	if line[pos] != ']' {
		t.Fatalf("SkipTo landed on %q, want ']'", string(line[pos]))
	}
}

func TestSkipToLeavesPosUnchangedOnNoMatch(t *testing.T) {
	line := "no bracket here"
	pos := SkipTo(line, 3, ']')
	if pos != 3 {
		t.Fatalf("SkipTo = %d, want unchanged 3", pos)
	}
}

func TestSkipToZeroDelimiterIsNoop(t *testing.T) {
	if pos := SkipTo("anything", 5, 0); pos != 5 {
		t.Fatalf("SkipTo with delim=0 = %d, want 5", pos)
	}
}
