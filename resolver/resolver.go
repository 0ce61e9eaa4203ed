// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package resolver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"
	"github.com/thediveo/lxkns/ops"
	"github.com/thediveo/lxkns/ops/relations"
	"github.com/thediveo/lxkns/species"
)

// ErrNoAnswers signals that a name resolved neither into IPv4 nor IPv6
// addresses.
var ErrNoAnswers = errors.New("no answers")

// DefaultTimeout is the default timeout for a single DNS query/response
// exchange.
const DefaultTimeout = 5 * time.Second

const defaultResolvConf = "/etc/resolv.conf"

// Resolver resolves DNS names into their IPv4 and IPv6 addresses, either
// using the nameservers from the system configuration or an explicitly
// specified nameserver. A Resolver is safe for concurrent use: it doesn't keep
// any per-query state.
type Resolver struct {
	servers  []string              // "host:port" of nameservers, tried in order.
	names    func(string) []string // returns the list of FQDN candidates to query.
	udp      *dns.Client
	tcp      *dns.Client        // for retrying truncated UDP answers.
	timeout  time.Duration      // per exchange.
	confpath string             // resolver configuration file in system mode.
	netns    relations.Relation // network namespace to query from, or nil.
}

// Option can be passed to New when creating new Resolver objects.
type Option func(*Resolver)

// New returns a new [Resolver]. If server is empty, the Resolver uses the
// nameservers, search list and ndots setting from the system's resolver
// configuration. Otherwise, server must be an IP address with an optional
// port, such as "9.9.9.9", "9.9.9.9:53", "::1", or "[::1]:5353"; the port
// defaults to 53. All queries are then sent via UDP to this DNS server only.
//
// New fails if server is malformed or the system configuration cannot be
// read.
func New(server string, options ...Option) (*Resolver, error) {
	r := &Resolver{
		timeout:  DefaultTimeout,
		confpath: defaultResolvConf,
	}
	for _, opt := range options {
		opt(r)
	}
	if server != "" {
		addrport, err := ParseServer(server)
		if err != nil {
			return nil, err
		}
		r.servers = []string{addrport.String()}
		r.names = func(name string) []string { return []string{dns.Fqdn(name)} }
	} else {
		conf, err := dns.ClientConfigFromFile(r.confpath)
		if err != nil {
			return nil, fmt.Errorf("cannot read resolver configuration: %w", err)
		}
		if len(conf.Servers) == 0 {
			return nil, fmt.Errorf("no nameservers configured in %s", r.confpath)
		}
		for _, srv := range conf.Servers {
			r.servers = append(r.servers, net.JoinHostPort(srv, conf.Port))
		}
		r.names = conf.NameList
	}
	r.udp = &dns.Client{Net: "udp", Timeout: r.timeout}
	r.tcp = &dns.Client{Net: "tcp", Timeout: r.timeout}
	return r, nil
}

// WithTimeout sets the timeout for each individual DNS query/response
// exchange.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Resolver) {
		r.timeout = timeout
	}
}

// WithConfigFile uses the specified resolv.conf-formatted file instead of
// /etc/resolv.conf when not using an explicit nameserver.
func WithConfigFile(path string) Option {
	return func(r *Resolver) {
		r.confpath = path
	}
}

// InNetworkNamespace optionally sends all DNS queries from inside the network
// namespace referenced by the specified filesystem path, such as
// "/proc/666/ns/net". An empty path means the caller's network namespace.
func InNetworkNamespace(netnsref string) Option {
	return func(r *Resolver) {
		if netnsref == "" {
			return
		}
		r.netns = ops.NewTypedNamespacePath(netnsref, species.CLONE_NEWNET)
	}
}

// Servers returns the list of nameservers in "host:port" format this Resolver
// talks to.
func (r *Resolver) Servers() []string {
	return append([]string(nil), r.servers...)
}

// Resolve the specified name into its IP addresses, using A and AAAA queries.
// The IPv4 addresses come first, followed by the IPv6 addresses, each in the
// order received from the nameserver.
//
// When using the system configuration the search list gets applied to names
// with fewer dots than configured by ndots. The first candidate name that
// resolves wins.
func (r *Resolver) Resolve(ctx context.Context, name string) ([]net.IP, error) {
	if strings.TrimSuffix(name, ".") == "" {
		return nil, errors.New("cannot resolve empty name")
	}
	err := fmt.Errorf("query for %q yields %w", name, ErrNoAnswers)
	for _, fqdn := range r.names(name) {
		var addrs []net.IP
		addrs, err = r.resolveName(ctx, fqdn)
		if err == nil {
			return addrs, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, err
}

// resolveName queries A and AAAA records of a single FQDN. Not getting any
// answers for both queries counts as an error, while getting answers for only
// one of them is fine. A non-existing domain immediately ends the resolution.
func (r *Resolver) resolveName(ctx context.Context, fqdn string) ([]net.IP, error) {
	var addrs []net.IP
	var lasterr error
	for _, qtype := range []uint16{dns.TypeA, dns.TypeAAAA} {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		msg := new(dns.Msg)
		msg.SetQuestion(fqdn, qtype)
		resp, err := r.exchange(ctx, msg)
		if err != nil {
			lasterr = fmt.Errorf("query for %q failed: %w", fqdn, err)
			continue
		}
		switch resp.Rcode {
		case dns.RcodeSuccess:
		case dns.RcodeNameError:
			return nil, fmt.Errorf("no such host %q", strings.TrimSuffix(fqdn, "."))
		default:
			lasterr = fmt.Errorf("query for %q failed: %s", fqdn, dns.RcodeToString[resp.Rcode])
			continue
		}
		for _, rr := range resp.Answer {
			switch rr := rr.(type) {
			case *dns.A:
				addrs = append(addrs, rr.A)
			case *dns.AAAA:
				addrs = append(addrs, rr.AAAA)
			}
		}
	}
	if len(addrs) > 0 {
		return addrs, nil
	}
	if lasterr != nil {
		return nil, lasterr
	}
	return nil, fmt.Errorf("query for %q yields %w", fqdn, ErrNoAnswers)
}

// exchange sends the query to the nameservers in turn until one of them
// answers. Truncated UDP answers are retried via TCP with the same
// nameserver.
func (r *Resolver) exchange(ctx context.Context, msg *dns.Msg) (*dns.Msg, error) {
	var err error
	for _, server := range r.servers {
		var resp *dns.Msg
		resp, err = r.exchangeWith(ctx, r.udp, msg, server)
		if err != nil {
			continue
		}
		if resp.Truncated {
			resp, err = r.exchangeWith(ctx, r.tcp, msg, server)
			if err != nil {
				continue
			}
		}
		return resp, nil
	}
	return nil, err
}

// exchangeWith carries out a single query/response exchange with the
// specified server, switching into the configured network namespace first, if
// necessary.
func (r *Resolver) exchangeWith(ctx context.Context, clnt *dns.Client, msg *dns.Msg, server string) (*dns.Msg, error) {
	// The context deadline takes precedence over the client's timeout, so we
	// need to limit each exchange ourselves.
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	exchange := func() interface{} {
		resp, _, err := clnt.ExchangeContext(ctx, msg, server)
		if err != nil {
			return err
		}
		return resp
	}
	var res interface{}
	if r.netns != nil {
		// ops.Execute differentiates between namespace switching errors and
		// the result of the function called while switched.
		var err error
		res, err = ops.Execute(exchange, r.netns)
		if err != nil {
			return nil, err
		}
	} else {
		res = exchange()
	}
	if err, ok := res.(error); ok {
		return nil, err
	}
	return res.(*dns.Msg), nil
}
