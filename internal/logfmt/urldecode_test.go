package logfmt

import "testing"

func TestDecodeURLBasic(t *testing.T) {
	cases := map[string]string{
		"/index.html":        "/index.html",
		"/a%20b":             "/a b",
		"/a%2Fb":             "/a/b",
		"/bad%escape":        "/bad%escape",
		"":                   "",
		"/trailing%2":        "/trailing%2",
		"/100%25sure":        "/100%sure",
	}
	for in, want := range cases {
		if got := DecodeURL(in, false); got != want {
			t.Errorf("DecodeURL(%q, false) = %q, want %q", in, got, want)
		}
	}
}

func TestDecodeURLDoubleDecode(t *testing.T) {
	// %2520 decodes once to %20, decodes again to a space.
	got := DecodeURL("/a%2520b", true)
	want := "/a b"
	if got != want {
		t.Fatalf("DecodeURL double-decode = %q, want %q", got, want)
	}
}

func TestDecodeURLNonExpansionInvariant(t *testing.T) {
	inputs := []string{"/a%20b%20c", "plain text", "%25%25%25", "", "/no/escapes/here"}
	for _, in := range inputs {
		out := DecodeURL(in, true)
		if len(out) > len(in) {
			t.Errorf("DecodeURL(%q) = %q (len %d) exceeds input len %d", in, out, len(out), len(in))
		}
	}
}

func TestDecodeURLStripsNewlinesAndTrims(t *testing.T) {
	got := DecodeURL(" /x%0Ay ", false)
	if got != "/xy" {
		// %0A decodes to a newline, which is removed entirely; the
		// leading and trailing spaces are then trimmed.
		t.Fatalf("DecodeURL newline handling unexpected: %q, want %q", got, "/xy")
	}
}
