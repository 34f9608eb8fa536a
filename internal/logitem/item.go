// Package logitem defines the per-line record produced by the log format
// parser and consumed by the record classifier and aggregation dispatcher.
package logitem

// IPType distinguishes the address family validated for Host.
type IPType string

const (
	IPUnknown IPType = ""
	IPv4      IPType = "v4"
	IPv6      IPType = "v6"
)

// RefSiteLen bounds the length of Site, matching a fixed REF_SITE_LEN
// buffer.
const RefSiteLen = 256

// Item is one parsed log line. Every field is semantically optional;
// absence is represented by the Go zero value rather than a sentinel
// allocation, per the data-model invariant that "-" is a display choice
// and not a data-model one.
type Item struct {
	Host     string
	TypeIP   IPType
	Date     string
	DateKey  string
	Method   string
	Protocol string
	Req      string
	ReqKey   string
	Status   string
	RespSize uint64
	ServeTime uint64
	Ref      string
	Site     string
	Agent    string
}

// Valid reports whether the item carries the three fields a LogItem must
// have to be considered parsed successfully.
func (it *Item) Valid() bool {
	return it.Host != "" && it.Date != "" && it.Req != ""
}
