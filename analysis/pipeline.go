// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package analysis

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/siemens/hardig/types"

	"github.com/oschwald/geoip2-golang"
)

// analyze runs the pipeline for a single domain: resolve, probe the first
// address, and locate all addresses. Only failing to resolve stops the
// pipeline early; probe failures are recorded, yet the addresses still get
// located. Failing to locate is never recorded.
func (e *Engine) analyze(ctx context.Context, domain string) types.Record {
	rec := types.NewRecord(domain)

	var addrs []net.IP
	err := safely(func() (err error) {
		addrs, err = e.resolver.Resolve(ctx, domain)
		if err == nil && len(addrs) == 0 {
			err = fmt.Errorf("%q resolves into no addresses", domain)
		}
		return
	})
	if err != nil {
		rec.Err = err.Error()
		return rec
	}
	rec.Addresses = addrs

	var latency time.Duration
	if err := safely(func() (err error) {
		latency, err = e.prober.Probe(ctx, addrs[0])
		return
	}); err != nil {
		rec.Err = err.Error()
	} else {
		rec.Latency = latency
	}

	var geo string
	if err := safely(func() (err error) {
		geo, err = e.locate(addrs)
		return
	}); err == nil {
		rec.Geo = geo
	}
	return rec
}

// locate returns the "Country / City" locations of the specified addresses,
// one line per address. It fails as a whole if any of the addresses cannot be
// looked up.
func (e *Engine) locate(addrs []net.IP) (string, error) {
	lines := make([]string, 0, len(addrs))
	located := false
	for _, addr := range addrs {
		city, err := e.locator.City(addr)
		if err != nil {
			return "", err
		}
		line := Location(city)
		if line != "" {
			located = true
		}
		lines = append(lines, line)
	}
	if !located {
		return "", nil
	}
	return strings.Join(lines, "\n"), nil
}

// Location returns the English country and city names of a geo IP record in
// "Country / City" format. City-states don't repeat themselves, so
// "Singapore / Singapore" becomes just "Singapore". Names without an English
// version are empty.
func Location(city *geoip2.City) string {
	if city == nil {
		return ""
	}
	names := make([]string, 0, 2)
	if len(city.Country.Names) > 0 {
		names = append(names, city.Country.Names["en"])
	}
	if len(city.City.Names) > 0 {
		names = append(names, city.City.Names["en"])
	}
	// remove adjacent duplicates in place.
	uniq := names[:0]
	for idx, name := range names {
		if idx > 0 && name == names[idx-1] {
			continue
		}
		uniq = append(uniq, name)
	}
	return strings.Join(uniq, " / ")
}

// safely calls fn, turning a panic into an error so that a misbehaving
// capability cannot take down the whole worker pool.
func safely(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
