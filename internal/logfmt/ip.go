package logfmt

import (
	"net"

	"github.com/rbscholtus/gweblog/internal/logitem"
)

// validateIP reports whether s is a syntactically valid IPv4 or IPv6
// address, and which family it belongs to.
func validateIP(s string) (logitem.IPType, bool) {
	ip := net.ParseIP(s)
	if ip == nil {
		return logitem.IPUnknown, false
	}
	if ip.To4() != nil {
		return logitem.IPv4, true
	}
	return logitem.IPv6, true
}
