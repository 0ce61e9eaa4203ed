// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package ping

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/go-ping/ping"
	"github.com/thediveo/lxkns/ops"
	"github.com/thediveo/lxkns/ops/relations"
	"github.com/thediveo/lxkns/species"
)

// ErrTimeout signals that no echo reply was received within the probe
// timeout.
var ErrTimeout = errors.New("probe timed out")

// DefaultTimeout is the default time to wait for the echo reply.
const DefaultTimeout = 2 * time.Second

// Prober measures the round-trip time to an IP address by sending a single
// ICMP echo request and waiting for the corresponding reply. Probers are
// safe for concurrent use.
type Prober struct {
	timeout      time.Duration      // how long to wait for the echo reply.
	size         int                // payload size of the echo request.
	unprivileged bool               // if true, uses UDP-based pings instead of privileged ICMPs.
	netns        relations.Relation // network namespace to ping from, or nil.
}

// Option can be passed to New when creating new Prober objects.
type Option func(*Prober)

// New returns a new [Prober]. It defaults to a 2s timeout and privileged
// (raw socket) ICMP pings. The prober can be configured during creation
// using several options:
//   - [WithTimeout]
//   - [AsUnprivileged]
//   - [InNetworkNamespace]
func New(options ...Option) *Prober {
	p := &Prober{
		timeout: DefaultTimeout,
		size:    56,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// WithTimeout sets the time to wait for the echo reply.
func WithTimeout(timeout time.Duration) Option {
	return func(p *Prober) {
		p.timeout = timeout
	}
}

// AsUnprivileged tells the Prober to carry out unprivileged pings using UDP
// instead of ICMP packets.
func AsUnprivileged() Option {
	return func(p *Prober) {
		p.unprivileged = true
	}
}

// InNetworkNamespace optionally runs a [Prober] inside the network namespace
// referenced by the specified filesystem path. An empty path means the
// caller's network namespace.
func InNetworkNamespace(netnsref string) Option {
	return func(p *Prober) {
		if netnsref == "" {
			return
		}
		p.netns = ops.NewTypedNamespacePath(netnsref, species.CLONE_NEWNET)
	}
}

// Probe sends exactly one echo request to the specified address and returns
// the round-trip time of the reply. There are no retries: when the reply
// doesn't arrive within the timeout Probe returns an error wrapping
// [ErrTimeout].
//
// The probe is aborted when the specified context gets cancelled or reaches
// its deadline, returning the context's error.
func (p *Prober) Probe(ctx context.Context, addr net.IP) (time.Duration, error) {
	if addr == nil {
		return 0, errors.New("no address to probe")
	}
	probe := func() interface{} {
		// A quick and non-blocking check to see if the context has been
		// cancelled before we start our work...
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		pinger, err := ping.NewPinger(addr.String())
		if err != nil {
			return err
		}
		pinger.SetPrivileged(!p.unprivileged)
		pinger.Count = 1
		pinger.Size = p.size
		pinger.Timeout = p.timeout
		// Monitor the context while the ping is running; the done channel
		// terminates the monitoring as soon as the ping is over.
		done := make(chan struct{})
		defer close(done)
		go func() {
			select {
			case <-ctx.Done():
				pinger.Stop()
			case <-done:
			}
		}()
		if err := pinger.Run(); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		stats := pinger.Statistics()
		if stats.PacketsRecv == 0 || len(stats.Rtts) == 0 {
			return fmt.Errorf("%w: no echo reply from %s within %s", ErrTimeout, addr, p.timeout)
		}
		return stats.Rtts[0]
	}
	// Run the ping in the requested network namespace, if necessary.
	var res interface{}
	if p.netns != nil {
		var err error
		res, err = ops.Execute(probe, p.netns)
		if err != nil {
			return 0, err
		}
	} else {
		res = probe()
	}
	switch res := res.(type) {
	case time.Duration:
		return res, nil
	case error:
		return 0, res
	}
	return 0, fmt.Errorf("probing %s: unexpected result %v", addr, res)
}
