// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package analysis

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/siemens/hardig/ping"

	"github.com/oschwald/geoip2-golang"
)

// fakeResolver resolves names from a static table; names not in the table
// do not exist. Resolving "panic.example" panics.
type fakeResolver struct {
	addrs    map[string][]string
	delay    func(name string) time.Duration
	inflight atomic.Int32
	peak     atomic.Int32
}

func (r *fakeResolver) Resolve(ctx context.Context, name string) ([]net.IP, error) {
	n := r.inflight.Add(1)
	defer r.inflight.Add(-1)
	for {
		peak := r.peak.Load()
		if n <= peak || r.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	if r.delay != nil {
		select {
		case <-time.After(r.delay(name)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if name == "panic.example" {
		panic("resolver went bananas")
	}
	addrs, ok := r.addrs[name]
	if !ok {
		return nil, fmt.Errorf("no such host %q", name)
	}
	ips := make([]net.IP, 0, len(addrs))
	for _, addr := range addrs {
		ips = append(ips, net.ParseIP(addr))
	}
	return ips, nil
}

// fakeProber answers probes of the addresses in its table with the listed
// round-trip times; all other addresses time out. It remembers which
// addresses were probed.
type fakeProber struct {
	rtts   map[string]time.Duration
	mu     sync.Mutex
	probed []string
}

func (p *fakeProber) Probe(ctx context.Context, addr net.IP) (time.Duration, error) {
	p.mu.Lock()
	p.probed = append(p.probed, addr.String())
	p.mu.Unlock()
	rtt, ok := p.rtts[addr.String()]
	if !ok {
		return 0, fmt.Errorf("%w: no echo reply from %s within 2s", ping.ErrTimeout, addr)
	}
	return rtt, nil
}

func (p *fakeProber) Probed() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.probed...)
}

// fakeLocator locates the addresses in its table; all other addresses fail.
type fakeLocator map[string]*geoip2.City

func (l fakeLocator) City(ip net.IP) (*geoip2.City, error) {
	city, ok := l[ip.String()]
	if !ok {
		return nil, errors.New("address not found")
	}
	return city, nil
}

func city(country, town string) *geoip2.City {
	c := &geoip2.City{}
	if country != "" {
		c.Country.Names = map[string]string{"en": country, "de": country + "-de"}
	}
	if town != "" {
		c.City.Names = map[string]string{"en": town}
	}
	return c
}
