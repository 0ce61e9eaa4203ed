/*
Package ping implements a single-shot ICMP(v4/v6)-based latency probe.

A [Prober] sends exactly one echo request to an IP address and reports the
round-trip time of the echo reply. There is no retrying and no averaging over
multiple pings: probes are best-effort measurements. A missing reply within
the timeout is reported as an error wrapping [ErrTimeout].

	p := ping.New(ping.WithTimeout(time.Second))
	rtt, err := p.Probe(ctx, net.ParseIP("192.0.2.1"))

Sending ICMP echo requests via raw sockets requires the CAP_NET_RAW
capability. Use [AsUnprivileged] to send UDP-based "pings" instead, where
permitted by the net.ipv4.ping_group_range sysctl.

# Acknowledgements

Under its hood, [Prober] leverages [go-ping/ping].

[go-ping/ping]: https://github.com/go-ping/ping
*/
package ping
