// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/siemens/hardig/analysis"
	"github.com/siemens/hardig/geoip"
	"github.com/siemens/hardig/har"
	"github.com/siemens/hardig/mobynet"
	"github.com/siemens/hardig/ping"
	"github.com/siemens/hardig/report"
	"github.com/siemens/hardig/resolver"
	"github.com/siemens/hardig/types"

	"github.com/muesli/termenv"
	log "github.com/sirupsen/logrus"
)

// AnalyzeAndReport reads the unique domains from the configured HAR file and
// then resolves, probes, and geo-locates them. Finally, it renders the
// analysis records to w, either as a table or JSON.
func AnalyzeAndReport(ctx context.Context, cfg config, w io.Writer) error {
	var haropts []har.Option
	if cfg.Registrable {
		haropts = append(haropts, har.AsRegistrableDomains())
	}
	domains, err := har.DomainsFromFile(cfg.HAR, haropts...)
	if err != nil {
		return fmt.Errorf("cannot read domains from HAR file: %w", err)
	}
	log.Debugf("found %d unique domains in %s", len(domains), cfg.HAR)

	netnsref := cfg.Netns
	if cfg.Container != "" {
		netnsref, err = containerNetns(ctx, cfg.Container)
		if err != nil {
			return err
		}
		log.Debugf("container '%s' uses network namespace %s", cfg.Container, netnsref)
	}

	dnsResolver, err := resolver.New(cfg.DNS, resolver.InNetworkNamespace(netnsref))
	if err != nil {
		return fmt.Errorf("cannot create DNS resolver: %w", err)
	}
	log.Debugf("using DNS servers %v", dnsResolver.Servers())

	geodb, err := geoip.Load(ctx, cfg.GeoIPDB, cfg.GeoIPURL)
	if err != nil {
		return fmt.Errorf("cannot load geo location database: %w", err)
	}
	defer geodb.Close()

	probeopts := []ping.Option{
		ping.WithTimeout(cfg.ProbeTimeout),
		ping.InNetworkNamespace(netnsref),
	}
	if cfg.Unprivileged {
		probeopts = append(probeopts, ping.AsUnprivileged())
	}
	prober := ping.New(probeopts...)

	engineopts := []analysis.Option{analysis.WithWorkers(int(cfg.Workers))}
	var prog *progress
	if cfg.Progress {
		prog = newProgress(os.Stderr, len(domains))
		engineopts = append(engineopts, analysis.WithNews(prog.Update))
	}
	engine, err := analysis.New(dnsResolver, prober, geodb, engineopts...)
	if err != nil {
		return fmt.Errorf("cannot create analysis engine: %w", err)
	}
	records := engine.Analyze(ctx, domains)
	if prog != nil {
		prog.Stop()
	}
	log.Debugf("analysed %d domains, %d failed", len(records), failures(records))

	return render(w, cfg.Format, records)
}

// containerNetns returns the network namespace path of the named container.
func containerNetns(ctx context.Context, name string) (string, error) {
	cln, err := mobynet.NewClient()
	if err != nil {
		return "", err
	}
	defer cln.Close()
	return mobynet.NetnsOf(ctx, cln, name)
}

// render the records in the specified format.
func render(w io.Writer, format string, records []types.Record) error {
	switch format {
	case "json":
		return report.JSON(w, records)
	default:
		return report.Table(w, records, report.WithColors(termenv.EnvColorProfile()))
	}
}

func failures(records []types.Record) (n int) {
	for _, rec := range records {
		if rec.Failed() {
			n++
		}
	}
	return
}
