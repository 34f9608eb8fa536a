package logfmt

import "testing"

func TestExtractMethod(t *testing.T) {
	cases := []struct {
		in     string
		want   string
		wantOk bool
	}{
		{"GET /x HTTP/1.1", "GET", true},
		{"get /x HTTP/1.1", "GET", true},
		{"POST /x HTTP/1.1", "POST", true},
		{"WEIRDVERB /x", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := extractMethod(tc.in)
		if ok != tc.wantOk || (ok && got != tc.want) {
			t.Errorf("extractMethod(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.wantOk)
		}
	}
}

func TestValidProtocol(t *testing.T) {
	if !validProtocol("HTTP/1.1") || !validProtocol("HTTP/1.0") {
		t.Fatal("expected HTTP/1.0 and HTTP/1.1 to be valid")
	}
	if validProtocol("HTTP/2") || validProtocol("") {
		t.Fatal("expected non-1.0/1.1 protocols to be invalid")
	}
}

func TestParseReqWellFormed(t *testing.T) {
	uri, method, protocol := parseReq("GET /index.html HTTP/1.1", true, true, false)
	if uri != "/index.html" {
		t.Errorf("uri = %q, want /index.html", uri)
	}
	if method != "GET" {
		t.Errorf("method = %q, want GET", method)
	}
	if protocol != "HTTP/1.1" {
		t.Errorf("protocol = %q, want HTTP/1.1", protocol)
	}
}

func TestParseReqNoMethodTreatsWholeTokenAsURI(t *testing.T) {
	uri, method, protocol := parseReq("/just/a/path", false, false, false)
	if uri != "/just/a/path" || method != "" || protocol != "" {
		t.Errorf("got (%q, %q, %q)", uri, method, protocol)
	}
}

func TestParseReqMethodWithoutProtocolRejectsURI(t *testing.T) {
	uri, _, _ := parseReq("GET HTTP/1.1", false, false, false)
	if uri != "-" {
		t.Errorf("uri = %q, want -, no URI present between method and protocol", uri)
	}

	uri2, _, _ := parseReq("GET", false, false, false)
	if uri2 != "-" {
		t.Errorf("uri = %q, want - when no protocol suffix is found at all", uri2)
	}
}

func TestParseReqFallsBackToUndecodedURIOnEmptyDecode(t *testing.T) {
	// a URI that decodes to empty falls back to the raw (undecoded) token,
	// unlike the dedicated %U field parser which rejects outright.
	uri, _, _ := parseReq("GET %0A HTTP/1.1", false, false, false)
	if uri == "" {
		t.Fatalf("expected a non-empty fallback URI, got empty string")
	}
}

func TestParseReqDoubleDecodeThreadsThroughURI(t *testing.T) {
	// %2520 single-decodes to %20 and only becomes a space under a second pass.
	single, _, _ := parseReq("GET /a%2520b HTTP/1.1", false, false, false)
	if single != "/a%20b" {
		t.Errorf("single-decode uri = %q, want /a%%20b", single)
	}

	double, _, _ := parseReq("GET /a%2520b HTTP/1.1", false, false, true)
	if double != "/a b" {
		t.Errorf("double-decode uri = %q, want /a b", double)
	}
}
