// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/thediveo/success"
)

// runHardig runs the hardig command with the specified CLI args, returning
// the error from the command execution.
func runHardig(args ...string) error {
	cmd := newRootCmd()
	cmd.SetOut(GinkgoWriter)
	cmd.SetErr(GinkgoWriter)
	cmd.SetArgs(args)
	return cmd.Execute()
}

var _ = Describe("hardig command", func() {

	var missingHAR string

	BeforeEach(func() {
		missingHAR = filepath.Join(GinkgoT().TempDir(), "missing.har")
	})

	DescribeTable("rejecting invalid flags",
		func(errmsg string, args ...string) {
			Expect(runHardig(append([]string{"analysis", "-f", missingHAR, "--geoip-db", "/nowhere"}, args...)...)).
				To(MatchError(ContainSubstring(errmsg)))
		},
		Entry("unknown format", "--format", "--format", "xml"),
		Entry("too many workers", "--workers", "--workers", "257"),
		Entry("too short probe timeout", "--probe-timeout", "--probe-timeout", "5ms"),
		Entry("netns and container", "mutually exclusive", "--netns", "/proc/self/ns/net", "--container", "foo"),
		Entry("empty HAR path", "--har", "--har", ""),
		Entry("positional args", "unknown command", "foo.har"),
	)

	It("rejects invalid configuration from the environment", func() {
		Expect(os.Setenv("HARDIG_FORMAT", "xml")).To(Succeed())
		DeferCleanup(os.Unsetenv, "HARDIG_FORMAT")
		Expect(runHardig("a", "-f", missingHAR, "--geoip-db", "/nowhere")).
			To(MatchError(ContainSubstring("--format")))
	})

	It("reports a missing HAR file before doing any network work", func() {
		Expect(runHardig("analysis", "-f", missingHAR, "--geoip-db", "/nowhere", "--progress=false")).
			To(MatchError(ContainSubstring("cannot read domains from HAR file")))
	})

	It("merges flags and environment variables into the configuration", func() {
		Expect(os.Setenv("HARDIG_PROBE_TIMEOUT", "250ms")).To(Succeed())
		DeferCleanup(os.Unsetenv, "HARDIG_PROBE_TIMEOUT")
		Expect(os.Setenv("HARDIG_REGISTRABLE", "true")).To(Succeed())
		DeferCleanup(os.Unsetenv, "HARDIG_REGISTRABLE")

		vip := newViper()
		cmd := newAnalysisCmd(vip)
		Expect(cmd.Flags().Parse([]string{
			"--workers=4", "-f", "capture.har", "--format", "json", "-d", "127.0.0.1:5353",
			"--geoip-db", "/nowhere", "--progress=false",
		})).To(Succeed())
		cfg := Successful(loadConfig(vip))
		Expect(cfg.Workers).To(Equal(uint(4)))
		Expect(cfg.HAR).To(Equal("capture.har"))
		Expect(cfg.Format).To(Equal("json"))
		Expect(cfg.DNS).To(Equal("127.0.0.1:5353"))
		Expect(cfg.ProbeTimeout).To(Equal(250 * time.Millisecond))
		Expect(cfg.Registrable).To(BeTrue())
		Expect(cfg.Unprivileged).To(BeFalse())
		Expect(cfg.Progress).To(BeFalse())
	})

	It("exits with a non-zero code on failure", func() {
		oldArgs := os.Args
		oldExit := osExit
		DeferCleanup(func() {
			os.Args = oldArgs
			osExit = oldExit
		})
		exitCode := -1
		osExit = func(code int) { exitCode = code }
		os.Args = []string{"hardig", "analysis", "--format", "xml"}
		main()
		Expect(exitCode).To(Equal(1))
	})

})
