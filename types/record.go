// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types

import (
	"net"
	"time"
)

// Record is the analysis result of a single domain: the addresses it resolved
// into, the round-trip latency to the first of these addresses, as well as
// the geographic location of the addresses.
//
// Records are produced by an analysis run and are read-only afterwards.
type Record struct {
	Domain    string        // canonical host name
	Addresses []net.IP      // in the order returned by the resolver
	Latency   time.Duration // zero unless the first address was successfully probed
	Geo       string        // "Country / City" per address, newline separated
	Err       string        // first fatal failure (resolution or probe), if any
}

// NewRecord returns a new Record for the specified domain with all other
// fields at their defaults.
func NewRecord(domain string) Record {
	return Record{
		Domain:    domain,
		Addresses: []net.IP{},
	}
}

// Failed returns true if either the resolution of the domain or the probing
// of its first address failed. A failed Record might still carry addresses
// and geo information.
func (r *Record) Failed() bool { return r.Err != "" }

// Resolved returns true if the domain resolved into at least one address.
func (r *Record) Resolved() bool { return len(r.Addresses) > 0 }

// FirstAddress returns the address that gets probed, or nil.
func (r *Record) FirstAddress() net.IP {
	if len(r.Addresses) == 0 {
		return nil
	}
	return r.Addresses[0]
}
