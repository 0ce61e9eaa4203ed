/*
Package types defines hardig's information model, which is pretty simple:
there's a single [Record] per analysed domain.

A Record starts out in its default state as returned by [NewRecord]: no
addresses, zero latency, no geo information and no error. Each Record is then
passed through exactly one analysis pipeline run, after which it is never
changed again. The following states are possible afterwards:

  - resolution failed: no addresses, zero latency, empty geo, Err set.
  - probe failed: addresses, zero latency, (optionally) geo, Err set.
  - success: addresses, non-zero latency, (optionally) geo, no Err.

Geo information is a best-effort enrichment only: failing to look up the
location of addresses never turns a Record into a failed one.
*/
package types
