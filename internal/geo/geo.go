// Package geo implements a concurrent lookup cache over
// oschwald/geoip2-golang resolving country, continent, and city, with
// city lookups gated on a separate database matching the
// geoip_database configuration option.
package geo

import (
	"log/slog"
	"net"
	"sync"

	"github.com/oschwald/geoip2-golang"
)

// Location is the triple the aggregation dispatcher records into the
// countries table on a new-unique event.
type Location struct {
	Country   string
	Continent string
	City      string
}

// Lookup is the collaborator the aggregator consults; nil when GeoIP is
// not configured for a run.
type Lookup interface {
	Lookup(host string) (Location, bool)
}

// Service resolves a host to a Location using one or two MaxMind
// databases: countryDB is required, cityDB is optional and only
// consulted when non-nil, mirroring the component design's statement
// that city lookups require a separate configured database.
type Service struct {
	countryDB *geoip2.Reader
	cityDB    *geoip2.Reader

	numWorkers int

	mu    sync.RWMutex
	cache map[string]Location
}

// Open opens countryDBPath (required) and cityDBPath (optional, pass
// "" to disable city lookups).
func Open(countryDBPath, cityDBPath string, numWorkers int) (*Service, error) {
	countryDB, err := geoip2.Open(countryDBPath)
	if err != nil {
		return nil, err
	}

	var cityDB *geoip2.Reader
	if cityDBPath != "" {
		cityDB, err = geoip2.Open(cityDBPath)
		if err != nil {
			countryDB.Close()
			return nil, err
		}
	}

	if numWorkers < 1 {
		numWorkers = 1
	}

	return &Service{
		countryDB:  countryDB,
		cityDB:     cityDB,
		numWorkers: numWorkers,
		cache:      make(map[string]Location),
	}, nil
}

// Close closes the underlying database readers.
func (s *Service) Close() error {
	if s.cityDB != nil {
		s.cityDB.Close()
	}
	return s.countryDB.Close()
}

func resolveIP(host string) (net.IP, error) {
	if ip := net.ParseIP(host); ip != nil {
		return ip, nil
	}
	ips, err := net.LookupIP(host)
	if err != nil || len(ips) == 0 {
		return nil, err
	}
	return ips[0], nil
}

func (s *Service) resolveLocation(host string) (Location, error) {
	ip, err := resolveIP(host)
	if err != nil {
		return Location{}, err
	}

	var loc Location
	country, err := s.countryDB.Country(ip)
	if err != nil {
		return Location{}, err
	}
	loc.Country = country.Country.Names["en"]
	loc.Continent = country.Continent.Names["en"]

	if s.cityDB != nil {
		city, err := s.cityDB.City(ip)
		if err == nil {
			loc.City = city.City.Names["en"]
		}
	}

	return loc, nil
}

// Lookup resolves host to a Location, consulting the cache first and
// filling it on a miss. This is the synchronous path the aggregation
// dispatcher calls inline on each new-unique event.
func (s *Service) Lookup(host string) (Location, bool) {
	s.mu.RLock()
	loc, ok := s.cache[host]
	s.mu.RUnlock()
	if ok {
		return loc, true
	}

	loc, err := s.resolveLocation(host)
	if err != nil {
		slog.Warn("geo lookup failed", "host", host, "error", err)
		return Location{}, false
	}

	s.mu.Lock()
	s.cache[host] = loc
	s.mu.Unlock()
	return loc, true
}

type batchResult struct {
	host string
	loc  Location
	ok   bool
}

// Prefetch resolves hosts in parallel ahead of time, the way the
// teacher's ParallelLookup warms its country cache before a report
// pass. Later Lookup calls for any prefetched host hit the cache.
func (s *Service) Prefetch(hosts []string) {
	workChan := make(chan string)
	resultChan := make(chan batchResult, len(hosts))

	var wg sync.WaitGroup
	for range s.numWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for host := range workChan {
				loc, err := s.resolveLocation(host)
				if err != nil {
					slog.Warn("geo prefetch failed", "host", host, "error", err)
					resultChan <- batchResult{host: host, ok: false}
					continue
				}
				resultChan <- batchResult{host: host, loc: loc, ok: true}
			}
		}()
	}

	go func() {
		for _, h := range hosts {
			workChan <- h
		}
		close(workChan)
	}()

	var wg2 sync.WaitGroup
	wg2.Add(1)
	go func() {
		defer wg2.Done()
		for r := range resultChan {
			if !r.ok {
				continue
			}
			s.mu.Lock()
			s.cache[r.host] = r.loc
			s.mu.Unlock()
		}
	}()

	wg.Wait()
	close(resultChan)
	wg2.Wait()
}
