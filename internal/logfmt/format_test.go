package logfmt

import (
	"testing"

	"github.com/rbscholtus/gweblog/internal/logitem"
)

const (
	testLogFormat  = `%h %^[%d:%^] "%r" %s %b "%R" "%u"`
	testDateFormat = `%d/%b/%Y`
)

func parse(t *testing.T, line string) (*logitem.Item, bool) {
	t.Helper()
	item := &logitem.Item{}
	reject, _ := ParseFormat(item, testLogFormat, testDateFormat, line, Options{})
	return item, reject
}

func TestParseFormatScenario1Accepted(t *testing.T) {
	line := `127.0.0.1 - [10/Apr/2014:12:00:00 +0000] "GET /index.html HTTP/1.1" 200 1024 "-" "Mozilla/5.0"`
	item, reject := parse(t, line)
	if reject || !item.Valid() {
		t.Fatalf("expected acceptance, got reject=%v item=%+v", reject, item)
	}
	if item.Host != "127.0.0.1" {
		t.Errorf("Host = %q", item.Host)
	}
	if item.DateKey != "20140410" {
		t.Errorf("DateKey = %q", item.DateKey)
	}
	if item.Req != "/index.html" {
		t.Errorf("Req = %q", item.Req)
	}
	if item.Status != "200" {
		t.Errorf("Status = %q", item.Status)
	}
	if item.RespSize != 1024 {
		t.Errorf("RespSize = %d", item.RespSize)
	}
	if item.Ref != "-" {
		t.Errorf("Ref = %q", item.Ref)
	}
	if item.Agent != "Mozilla/5.0" {
		t.Errorf("Agent = %q", item.Agent)
	}
}

func TestParseFormatScenario2NotFoundStatus(t *testing.T) {
	line := `127.0.0.1 - [10/Apr/2014:12:00:00 +0000] "GET /index.html HTTP/1.1" 404 1024 "-" "Mozilla/5.0"`
	item, reject := parse(t, line)
	if reject || !item.Valid() {
		t.Fatalf("expected acceptance, got reject=%v", reject)
	}
	if item.Status != "404" {
		t.Errorf("Status = %q, want 404", item.Status)
	}
}

func TestParseFormatScenario5MalformedRequestLine(t *testing.T) {
	line := `127.0.0.1 - [10/Apr/2014:12:00:00 +0000] "GET HTTP/1.1" 200 1024 "-" "Mozilla/5.0"`
	item, reject := parse(t, line)
	if !reject && item.Valid() {
		t.Fatalf("expected the missing-URI request line to invalidate the record")
	}
}

func TestParseFormatScenario6RepeatedSpecifierRejects(t *testing.T) {
	item := &logitem.Item{}
	reject, _ := ParseFormat(item, "%h %h", testDateFormat, "1.2.3.4 5.6.7.8", Options{})
	if !reject {
		t.Fatal("expected a second %h occurrence to reject despite both tokens being valid IPs")
	}
}

func TestParseFormatEmptyLineRejects(t *testing.T) {
	item := &logitem.Item{}
	reject, _ := ParseFormat(item, testLogFormat, testDateFormat, "", Options{})
	if !reject {
		t.Fatal("expected empty line to reject")
	}
}

func TestParseFormatAppendMethodAndProtocol(t *testing.T) {
	line := `127.0.0.1 - [10/Apr/2014:12:00:00 +0000] "GET /index.html HTTP/1.1" 200 1024 "-" "Mozilla/5.0"`
	item := &logitem.Item{}
	opts := Options{AppendMethod: true, AppendProtocol: true}
	reject, _ := ParseFormat(item, testLogFormat, testDateFormat, line, opts)
	if reject {
		t.Fatal("unexpected rejection")
	}
	if item.Method != "GET" {
		t.Errorf("Method = %q", item.Method)
	}
	if item.Protocol != "HTTP/1.1" {
		t.Errorf("Protocol = %q", item.Protocol)
	}
}

func TestParseFormatServeTimeSpecifierD(t *testing.T) {
	item := &logitem.Item{}
	reject, res := ParseFormat(item, `%h %D`, testDateFormat, "127.0.0.1 1500", Options{})
	if reject {
		t.Fatal("unexpected rejection")
	}
	if !res.ServeUsecs {
		t.Fatal("expected ServeUsecs flag set")
	}
	if item.ServeTime != 1500 {
		t.Errorf("ServeTime = %d, want 1500", item.ServeTime)
	}
}

func TestParseFormatServeTimeSpecifierT(t *testing.T) {
	item := &logitem.Item{}
	reject, res := ParseFormat(item, `%h %T`, testDateFormat, "127.0.0.1 1.5", Options{})
	if reject {
		t.Fatal("unexpected rejection")
	}
	if !res.ServeUsecs {
		t.Fatal("expected ServeUsecs flag set")
	}
	if item.ServeTime != 1_500_000 {
		t.Errorf("ServeTime = %d, want 1500000", item.ServeTime)
	}
}

func TestParseFormatBadResponseSizeCoercesToZero(t *testing.T) {
	item := &logitem.Item{}
	reject, res := ParseFormat(item, `%h %b`, testDateFormat, "127.0.0.1 -", Options{})
	if reject {
		t.Fatal("unexpected rejection: numeric fields coerce, they do not reject")
	}
	if item.RespSize != 0 {
		t.Errorf("RespSize = %d, want 0", item.RespSize)
	}
	if !res.Bandwidth {
		t.Fatal("expected Bandwidth flag set")
	}
}

func TestParseFormatDoubleDecodeAppliesToRequestURI(t *testing.T) {
	line := `127.0.0.1 - [10/Apr/2014:12:00:00 +0000] "GET /a%2520b HTTP/1.1" 200 1024 "-" "Mozilla/5.0"`

	item := &logitem.Item{}
	reject, _ := ParseFormat(item, testLogFormat, testDateFormat, line, Options{})
	if reject {
		t.Fatal("unexpected rejection")
	}
	if item.Req != "/a%20b" {
		t.Errorf("Req = %q, want /a%%20b when double_decode is off", item.Req)
	}

	item = &logitem.Item{}
	reject, _ = ParseFormat(item, testLogFormat, testDateFormat, line, Options{DoubleDecode: true})
	if reject {
		t.Fatal("unexpected rejection")
	}
	if item.Req != "/a b" {
		t.Errorf("Req = %q, want /a b when double_decode is on", item.Req)
	}
}
