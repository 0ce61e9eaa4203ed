// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"os"
	"time"

	"github.com/siemens/hardig/geoip"
	"github.com/siemens/hardig/ping"

	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCmd() (rootCmd *cobra.Command) {
	vip := newViper()
	rootCmd = &cobra.Command{
		Use:           "hardig",
		Short:         "hardig digs the domains found in HAR files for their addresses, latencies, and locations",
		Version:       "0.9",
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if vip.GetBool("verbose") {
				log.SetLevel(log.DebugLevel)
				log.Debugf("debug logging enabled")
			}
		},
	}
	rootCmd.PersistentFlags().Bool(
		"verbose", false, "enable verbose (debug) logging")
	_ = vip.BindPFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(newAnalysisCmd(vip))
	return
}

func newAnalysisCmd(vip *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "analysis [flags]",
		Aliases: []string{"a"},
		Short:   "analyses a HAR file to get its domains with addresses, latency, and geo location",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(vip)
			if err != nil {
				return err
			}
			return AnalyzeAndReport(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}
	dbpath, err := geoip.DefaultPath()
	if err != nil {
		dbpath = ""
	}
	flags := cmd.Flags()
	flags.StringP("har", "f", "./har.har", "HAR file")
	flags.StringP("dns", "d", "", "DNS server ip[:port], defaults to the system's resolver configuration")
	flags.String("format", "table", "output format: table or json")
	flags.Uint("workers", 0, "number of parallel analysis workers; 0 for one per CPU")
	flags.Duration("probe-timeout", ping.DefaultTimeout, "time to wait for a latency probe reply")
	flags.Bool("unprivileged", false, "use unprivileged UDP pings instead of ICMP")
	flags.Bool("registrable", false, "fold host names into registrable domains")
	flags.String("geoip-db", dbpath, "path of the GeoLite2 city database")
	flags.String("geoip-url", geoip.DefaultURL, "download URL of the GeoLite2 city database if missing")
	flags.String("netns", "", "network namespace path to dig and probe from")
	flags.String("container", "", "name of Docker container to dig and probe from")
	flags.Bool("progress", isTerminal(os.Stderr), "show analysis progress")
	_ = vip.BindPFlags(flags)
	return cmd
}

// isTerminal returns true if the specified file is a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// spinnerInterval is the speed of the progress spinner.
var spinnerInterval = 100 * time.Millisecond
