// Package counters implements the aggregation dispatcher: the bank of
// named counter tables, backed by alphadose/haxmap the way cidrx's
// sliding window package backs its per-IP statistics table. Concurrent
// access is reserved to the parsing thread alone: a parallel driver
// must shard counters or serialize dispatches itself, so these tables
// favor haxmap's lock-free reads/writes over correctness under
// concurrent read-modify-write, matching the single-writer contract.
package counters

import "github.com/alphadose/haxmap"

const tableSize = 1 << 16

// HitTable is a simple hit-count table: string key to a running total.
type HitTable struct {
	m *haxmap.Map[string, uint64]
}

func newHitTable() *HitTable {
	return &HitTable{m: haxmap.New[string, uint64](tableSize)}
}

// Incr increments key's count by 1 and returns the new value.
func (t *HitTable) Incr(key string) uint64 {
	return t.Add(key, 1)
}

// Add increments key's count by delta and returns the new value.
func (t *HitTable) Add(key string, delta uint64) uint64 {
	cur, _ := t.m.Get(key)
	next := cur + delta
	t.m.Set(key, next)
	return next
}

// Get reports key's current count.
func (t *HitTable) Get(key string) uint64 {
	v, _ := t.m.Get(key)
	return v
}

// Len reports the number of distinct keys observed.
func (t *HitTable) Len() uintptr {
	return t.m.Len()
}

// ForEach visits every key/value pair. Order is unspecified.
func (t *HitTable) ForEach(fn func(key string, hits uint64)) {
	t.m.ForEach(func(k string, v uint64) bool {
		fn(k, v)
		return true
	})
}

// ByteTable accumulates a byte or microsecond total per key (date_bw,
// file_bw, host_bw, file_serve_usecs, host_serve_usecs).
type ByteTable struct {
	m *haxmap.Map[string, uint64]
}

func newByteTable() *ByteTable {
	return &ByteTable{m: haxmap.New[string, uint64](tableSize)}
}

// Add accumulates n under key and returns the new total.
func (t *ByteTable) Add(key string, n uint64) uint64 {
	cur, _ := t.m.Get(key)
	next := cur + n
	t.m.Set(key, next)
	return next
}

// Get reports key's current total.
func (t *ByteTable) Get(key string) uint64 {
	v, _ := t.m.Get(key)
	return v
}

func (t *ByteTable) ForEach(fn func(key string, total uint64)) {
	t.m.ForEach(func(k string, v uint64) bool {
		fn(k, v)
		return true
	})
}

// UniqueSet answers the insert_unique predicate: InsertOnce reports
// whether key was not previously present, inserting it as a side
// effect. This backs unique_visitors and host_agents' uniqueness check.
type UniqueSet struct {
	m *haxmap.Map[string, struct{}]
}

func newUniqueSet() *UniqueSet {
	return &UniqueSet{m: haxmap.New[string, struct{}](tableSize)}
}

// InsertOnce returns true iff key was absent before this call.
func (s *UniqueSet) InsertOnce(key string) bool {
	if _, exists := s.m.Get(key); exists {
		return false
	}
	s.m.Set(key, struct{}{})
	return true
}

// Len reports the number of distinct keys inserted so far.
func (s *UniqueSet) Len() uintptr {
	return s.m.Len()
}

// NamedEntry is one row of a NamedHitTable: a hit count plus up to
// three metadata strings recorded the first time the key is seen
// (browser/OS family, or a request's method/protocol/original URI).
type NamedEntry struct {
	Hits  uint64
	Meta  string
	Meta2 string
	Meta3 string
}

// NamedHitTable pairs a hit count with associated metadata, used for
// browsers/os (name keyed, family/type as meta) and for the request
// tables (method/protocol/original URI as meta).
type NamedHitTable struct {
	m *haxmap.Map[string, *NamedEntry]
}

func newNamedHitTable() *NamedHitTable {
	return &NamedHitTable{m: haxmap.New[string, *NamedEntry](tableSize)}
}

// Record increments key's hit count, storing meta fields the first time
// the key is seen (later calls only update the hit count).
func (t *NamedHitTable) Record(key string, meta ...string) uint64 {
	entry, exists := t.m.Get(key)
	if !exists {
		entry = &NamedEntry{}
		if len(meta) > 0 {
			entry.Meta = meta[0]
		}
		if len(meta) > 1 {
			entry.Meta2 = meta[1]
		}
		if len(meta) > 2 {
			entry.Meta3 = meta[2]
		}
	}
	entry.Hits++
	t.m.Set(key, entry)
	return entry.Hits
}

// Entry exposes a snapshot of a named table's row, with its key.
type Entry struct {
	Key   string
	Hits  uint64
	Meta  string
	Meta2 string
	Meta3 string
}

func (t *NamedHitTable) ForEach(fn func(Entry)) {
	t.m.ForEach(func(k string, v *NamedEntry) bool {
		fn(Entry{Key: k, Hits: v.Hits, Meta: v.Meta, Meta2: v.Meta2, Meta3: v.Meta3})
		return true
	})
}

func (t *NamedHitTable) Len() uintptr {
	return t.m.Len()
}

// HostAgentTable tracks, per host, the set of distinct user agents seen.
type HostAgentTable struct {
	m *haxmap.Map[string, *UniqueSet]
}

func newHostAgentTable() *HostAgentTable {
	return &HostAgentTable{m: haxmap.New[string, *UniqueSet](tableSize)}
}

// Append records agent as seen for host; returns true if it was new for
// that host.
func (t *HostAgentTable) Append(host, agent string) bool {
	set, exists := t.m.Get(host)
	if !exists {
		set = newUniqueSet()
		t.m.Set(host, set)
	}
	return set.InsertOnce(agent)
}

// Count reports the number of distinct agents recorded for host.
func (t *HostAgentTable) Count(host string) uintptr {
	set, ok := t.m.Get(host)
	if !ok {
		return 0
	}
	return set.Len()
}
