/*
Package resolver implements hardig's DNS name-to-address resolution: a
[Resolver] sends A and AAAA queries either to the nameservers from the system
configuration or to a single explicitly specified nameserver.

A Resolver doesn't keep any per-query state, so it can be used concurrently
by any number of analysis workers without further locking.

Usage

	r, err := resolver.New("9.9.9.9:53")
	if err != nil {
	    // malformed nameserver address
	}
	addrs, err := r.Resolve(ctx, "example.org")

Pass an empty string instead of a nameserver address to use the system's
nameservers as configured in /etc/resolv.conf.

# Acknowledgements

Under its hood, [Resolver] leverages [miekg/dns] for talking DNS.

[miekg/dns]: https://github.com/miekg/dns
*/
package resolver
