// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package har

import (
	"net"
	"net/url"
	"sort"
	"strings"

	"golang.org/x/net/publicsuffix"
)

type lister struct {
	registrable bool
}

// Option can be passed to Domains and DomainsFromFile.
type Option func(*lister)

// AsRegistrableDomains folds host names into their registrable domains, that
// is, the effective TLD plus one more label ("www.example.co.uk" becomes
// "example.co.uk"). Host names without a registrable domain, such as IP
// address literals or bare public suffixes, are kept as they are.
func AsRegistrableDomains() Option {
	return func(l *lister) {
		l.registrable = true
	}
}

// Domains returns the sorted list of unique host names of the requests
// recorded in the specified HAR. Requests with URLs that cannot be parsed or
// that lack a host are skipped.
func Domains(h *HAR, options ...Option) []string {
	l := &lister{}
	for _, opt := range options {
		opt(l)
	}
	seen := map[string]struct{}{}
	for _, rawurl := range h.URLs() {
		host := hostname(rawurl)
		if host == "" {
			continue
		}
		if l.registrable && net.ParseIP(host) == nil {
			if domain, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
				host = domain
			}
		}
		seen[host] = struct{}{}
	}
	domains := make([]string, 0, len(seen))
	for domain := range seen {
		domains = append(domains, domain)
	}
	sort.Strings(domains)
	return domains
}

// DomainsFromFile loads the HAR file at the specified path and returns the
// sorted list of unique host names, see [Domains].
func DomainsFromFile(path string, options ...Option) ([]string, error) {
	h, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Domains(h, options...), nil
}

// hostname returns the lower-case host name of the specified URL without any
// port and IPv6 brackets, or "" if the URL doesn't have a host.
func hostname(rawurl string) string {
	u, err := url.Parse(rawurl)
	if err != nil {
		return ""
	}
	return strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
}
