package counters

import (
	"strings"

	"github.com/rbscholtus/gweblog/internal/geo"
	"github.com/rbscholtus/gweblog/internal/logfmt"
	"github.com/rbscholtus/gweblog/internal/logitem"
	"github.com/rbscholtus/gweblog/internal/oracle"
)

// GeneralStats has fields for the per-run running counters: process,
// invalid, exclude_ip, exclude_crawler, exclude_referer, and the total
// response size observed. Dispatch only updates RespSize; nothing in this
// package fills the other fields, which stay zero (the driver keeps its
// own copies of those counts).
type GeneralStats struct {
	Process        uint64
	Invalid        uint64
	ExcludeIP      uint64
	ExcludeCrawler uint64
	ExcludeReferer uint64
	RespSize       uint64
}

// Aggregator is the complete bank of named counter tables the
// aggregation dispatcher maintains for one run.
type Aggregator struct {
	UniqueVisitors  *UniqueSet
	UniqueVisByDate *HitTable
	Browsers        *NamedHitTable
	OS              *NamedHitTable
	Hosts           *HitTable
	StatusCode      *HitTable
	Referrers       *HitTable
	ReferringSites  *HitTable
	Keyphrases      *HitTable
	Requests        *NamedHitTable
	RequestsStatic  *NamedHitTable
	NotFoundReqs    *NamedHitTable
	Countries       *NamedHitTable
	HostAgents      *HostAgentTable
	DateBW          *ByteTable
	FileBW          *ByteTable
	HostBW          *ByteTable
	FileServeUsecs  *ByteTable
	HostServeUsecs  *ByteTable
	General         GeneralStats

	oracle oracle.Oracle
	geo    geo.Lookup
}

// New builds an empty aggregator. geoLookup may be nil when GeoIP is
// not configured; oracleImpl may be nil to fall back to oracle.Default.
func New(oracleImpl oracle.Oracle, geoLookup geo.Lookup) *Aggregator {
	if oracleImpl == nil {
		oracleImpl = oracle.Default()
	}
	return &Aggregator{
		UniqueVisitors:  newUniqueSet(),
		UniqueVisByDate: newHitTable(),
		Browsers:        newNamedHitTable(),
		OS:              newNamedHitTable(),
		Hosts:           newHitTable(),
		StatusCode:      newHitTable(),
		Referrers:       newHitTable(),
		ReferringSites:  newHitTable(),
		Keyphrases:      newHitTable(),
		Requests:        newNamedHitTable(),
		RequestsStatic:  newNamedHitTable(),
		NotFoundReqs:    newNamedHitTable(),
		Countries:       newNamedHitTable(),
		HostAgents:      newHostAgentTable(),
		DateBW:          newByteTable(),
		FileBW:          newByteTable(),
		HostBW:          newByteTable(),
		FileServeUsecs:  newByteTable(),
		HostServeUsecs:  newByteTable(),
		oracle:          oracleImpl,
		geo:             geoLookup,
	}
}

// RecordResult is what Dispatch reports about the update it made, for
// callers that want to log or test against it without re-deriving the
// classification.
type RecordResult struct {
	NewUnique bool
}

// Dispatch implements the uniqueness predicate and per-record table
// updates for one classified, non-excluded item. keyphrase and site
// come from the classifier's referer/keyphrase extraction; reqKey and
// isStatic/is404 come from record classification.
func (a *Aggregator) Dispatch(item *logitem.Item, reqKey string, is404, isStatic bool, site, keyphrase string, clientErrToUniqueCount bool) RecordResult {
	var res RecordResult

	if item.Status != "" {
		a.StatusCode.Incr(item.Status)
	}

	switch {
	case is404:
		a.NotFoundReqs.Record(reqKey, item.Method, item.Protocol, item.Req)
	case isStatic:
		a.RequestsStatic.Record(reqKey, item.Method, item.Protocol, item.Req)
	default:
		a.Requests.Record(reqKey, item.Method, item.Protocol, item.Req)
	}

	if item.Ref != "" && item.Ref != "-" {
		a.Referrers.Incr(logfmt.DecodeURL(item.Ref, false))
	}
	if site != "" {
		a.ReferringSites.Incr(site)
	}
	if keyphrase != "" {
		a.Keyphrases.Incr(keyphrase)
	}
	if item.Host != "" {
		a.Hosts.Incr(item.Host)
	}
	if item.DateKey != "" {
		a.DateBW.Add(item.DateKey, item.RespSize)
	}
	if reqKey != "" {
		a.FileBW.Add(reqKey, item.RespSize)
		a.FileServeUsecs.Add(reqKey, item.ServeTime)
	}
	if item.Host != "" {
		a.HostBW.Add(item.Host, item.RespSize)
		a.HostServeUsecs.Add(item.Host, item.ServeTime)
		a.HostAgents.Append(item.Host, item.Agent)
	}

	a.General.RespSize += item.RespSize

	if a.countsTowardUnique(item.Status, clientErrToUniqueCount) {
		key := uniqueKey(item.Host, item.DateKey, item.Agent)
		if a.UniqueVisitors.InsertOnce(key) {
			res.NewUnique = true
			a.onNewUnique(item)
		}
	}

	return res
}

// countsTowardUnique implements the uniqueness gate: a 4xx status
// excludes the record from uniqueness consideration unless
// client_err_to_unique_count overrides it.
func (a *Aggregator) countsTowardUnique(status string, clientErrToUniqueCount bool) bool {
	if clientErrToUniqueCount {
		return true
	}
	return !strings.HasPrefix(status, "4")
}

func uniqueKey(host, dateKey, agent string) string {
	return host + "|" + dateKey + "|" + deblank(agent)
}

func deblank(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

// onNewUnique implements the new-unique dispatch: date tally, browser
// and OS lookup via the classifier oracle, and (when configured) GeoIP
// country/continent/city lookup.
func (a *Aggregator) onNewUnique(item *logitem.Item) {
	if item.DateKey != "" {
		a.UniqueVisByDate.Incr(item.DateKey)
	}
	if name, family, ok := a.oracle.VerifyBrowser(item.Agent); ok {
		a.Browsers.Record(name, family)
	}
	if name, family, ok := a.oracle.VerifyOS(item.Agent); ok {
		a.OS.Record(name, family)
	}
	if a.geo != nil {
		if loc, ok := a.geo.Lookup(item.Host); ok {
			a.Countries.Record(loc.Country, loc.Continent, loc.City)
		}
	}
}
