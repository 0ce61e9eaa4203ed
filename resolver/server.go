// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package resolver

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strconv"
)

// DefaultPort is the DNS port used when a nameserver is given without port.
const DefaultPort = 53

// ErrBadServer signals a malformed nameserver address.
var ErrBadServer = errors.New("invalid DNS server")

// ParseServer parses a nameserver address in "ip" or "ip:port" format. IPv6
// addresses with port need to be put in square brackets, as usual. Host names
// are not accepted, as we would need a resolver in order to resolve the
// resolver...
func ParseServer(s string) (netip.AddrPort, error) {
	if addr, err := netip.ParseAddr(s); err == nil {
		return netip.AddrPortFrom(addr.Unmap(), DefaultPort), nil
	}
	host, port, err := net.SplitHostPort(s)
	if err != nil {
		return netip.AddrPort{}, fmt.Errorf("%w %q: %s", ErrBadServer, s, err.Error())
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return netip.AddrPort{}, fmt.Errorf("%w %q: not an IP address", ErrBadServer, s)
	}
	portnum, err := strconv.ParseUint(port, 10, 16)
	if err != nil || portnum == 0 {
		return netip.AddrPort{}, fmt.Errorf("%w %q: invalid port", ErrBadServer, s)
	}
	return netip.AddrPortFrom(addr.Unmap(), uint16(portnum)), nil
}
