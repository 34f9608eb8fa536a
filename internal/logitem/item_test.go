package logitem

import "testing"

func TestItemValid(t *testing.T) {
	cases := []struct {
		name string
		item Item
		want bool
	}{
		{"all required fields set", Item{Host: "127.0.0.1", Date: "10/Apr/2014", Req: "/index.html"}, true},
		{"missing host", Item{Date: "10/Apr/2014", Req: "/index.html"}, false},
		{"missing date", Item{Host: "127.0.0.1", Req: "/index.html"}, false},
		{"missing req", Item{Host: "127.0.0.1", Date: "10/Apr/2014"}, false},
		{"zero value", Item{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.item.Valid(); got != tc.want {
				t.Errorf("Valid() = %v, want %v", got, tc.want)
			}
		})
	}
}
