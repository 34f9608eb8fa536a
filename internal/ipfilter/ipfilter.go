// Package ipfilter implements the ip_in_range collaborator (CIDR-based
// host exclusion) and glob-based site/pattern exclusion lists, using the
// gobwas/glob matcher the gravwell dependency set already carries for
// pattern-list style configuration.
package ipfilter

import (
	"fmt"
	"net"

	"github.com/gobwas/glob"
)

// Ranges answers ip_in_range against a configured set of CIDR blocks.
type Ranges struct {
	nets []*net.IPNet
}

// NewRanges parses cidrs, skipping none silently: a malformed entry is a
// configuration error the caller should have surfaced before the run.
func NewRanges(cidrs []string) (*Ranges, error) {
	r := &Ranges{nets: make([]*net.IPNet, 0, len(cidrs))}
	for _, c := range cidrs {
		_, ipnet, err := net.ParseCIDR(c)
		if err != nil {
			return nil, fmt.Errorf("ipfilter: invalid CIDR %q: %w", c, err)
		}
		r.nets = append(r.nets, ipnet)
	}
	return r, nil
}

// Contains reports whether host falls inside any configured range. An
// unparseable host never matches.
func (r *Ranges) Contains(host string) bool {
	if r == nil || len(r.nets) == 0 {
		return false
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	for _, n := range r.nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// GlobSet matches a value against an ignore list of glob patterns, used
// for the ignore_referer site list (and reusable for other pattern-list
// style configuration, e.g. crawler user-agent allowlists).
type GlobSet struct {
	globs []glob.Glob
}

// NewGlobSet compiles patterns ahead of time.
func NewGlobSet(patterns []string) (*GlobSet, error) {
	gs := &GlobSet{globs: make([]glob.Glob, 0, len(patterns))}
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("ipfilter: invalid pattern %q: %w", p, err)
		}
		gs.globs = append(gs.globs, g)
	}
	return gs, nil
}

// Match reports whether value matches any compiled pattern.
func (gs *GlobSet) Match(value string) bool {
	if gs == nil || value == "" {
		return false
	}
	for _, g := range gs.globs {
		if g.Match(value) {
			return true
		}
	}
	return false
}
