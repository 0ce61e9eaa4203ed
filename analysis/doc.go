/*
Package analysis implements hardig's analysis engine: for each domain in a
list it resolves the domain's IP addresses, measures the round-trip latency
to the first address, and looks up the geographic location of all addresses.

Domains are analysed in parallel by a goroutine-limited worker pool, but
independently of each other. The [Engine.Analyze] result lists the domains'
[types.Record] in the same order as the domains passed in, regardless of the
order in which the workers finish.

# Failure Isolation

Failures never cross domain boundaries. Within a domain's pipeline:

  - failing to resolve the domain is fatal for this domain: the Record then
    carries only the error.
  - failing to probe the first address is recorded as the Record's error,
    but the addresses are still kept and located.
  - failing to locate addresses is silently ignored, leaving only the geo
    information empty.

The engine itself only fails when being created without capabilities.

# Capabilities

The engine doesn't resolve, probe or locate anything itself, but instead
relies on a [Resolver], [Prober], and [Locator], such as from the
[github.com/siemens/hardig/resolver], [github.com/siemens/hardig/ping], and
[github.com/siemens/hardig/geoip] packages. These capabilities are shared by
all workers, so they need to be safe for concurrent use.

# Acknowledgements

Under its hood, [Engine] leverages [gammazero/workerpool] as the limiting
goroutine pool.

[gammazero/workerpool]: https://github.com/gammazero/workerpool
*/
package analysis
