// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package har_test

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/siemens/hardig/har"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/thediveo/success"
)

const capture = `{
  "log": {
    "version": "1.2",
    "creator": {"name": "WebInspector", "version": "537.36"},
    "entries": [
      {"request": {"method": "GET", "url": "https://www.example.org/index.html"}},
      {"request": {"method": "GET", "url": "https://static.example.org/app.js"}},
      {"request": {"method": "GET", "url": "https://WWW.Example.org:8443/api"}},
      {"request": {"method": "POST", "url": "https://api.example.co.uk/v1"}},
      {"request": {"method": "GET", "url": "http://[2001:db8::1]:8080/"}},
      {"request": {"method": "GET", "url": "http://192.0.2.1/"}},
      {"request": {"method": "GET", "url": "data:image/png;base64,AAAA"}},
      {"request": {"method": "GET", "url": "::not a url::"}},
      {"request": {"method": "GET", "url": "https://www.example.org/again"}}
    ]
  }
}`

var _ = Describe("HAR domain lister", func() {

	It("reads request URLs in order", func() {
		h := Successful(har.Read(strings.NewReader(capture)))
		Expect(h.Log.Version).To(Equal("1.2"))
		Expect(h.Log.Creator.Name).To(Equal("WebInspector"))
		urls := h.URLs()
		Expect(urls).To(HaveLen(9))
		Expect(urls[0]).To(Equal("https://www.example.org/index.html"))
	})

	It("lists unique sorted host names", func() {
		h := Successful(har.Read(strings.NewReader(capture)))
		Expect(har.Domains(h)).To(Equal([]string{
			"192.0.2.1",
			"2001:db8::1",
			"api.example.co.uk",
			"static.example.org",
			"www.example.org",
		}))
	})

	It("folds host names into registrable domains", func() {
		h := Successful(har.Read(strings.NewReader(capture)))
		Expect(har.Domains(h, har.AsRegistrableDomains())).To(Equal([]string{
			"192.0.2.1",
			"2001:db8::1",
			"example.co.uk",
			"example.org",
		}))
	})

	It("returns an empty list for an empty capture", func() {
		h := Successful(har.Read(strings.NewReader(`{"log":{"version":"1.3","entries":[]}}`)))
		Expect(har.Domains(h)).To(BeEmpty())
	})

	DescribeTable("accepts known versions",
		func(version string) {
			Expect(har.Read(strings.NewReader(`{"log":{"version":"` + version + `"}}`))).NotTo(BeNil())
		},
		Entry(nil, ""),
		Entry(nil, "1.1"),
		Entry(nil, "1.2"),
		Entry(nil, "1.3"),
	)

	It("rejects unknown versions", func() {
		_, err := har.Read(strings.NewReader(`{"log":{"version":"42.0"}}`))
		Expect(err).To(MatchError(har.ErrUnsupportedVersion))
	})

	It("rejects garbage", func() {
		_, err := har.Read(strings.NewReader(`<html/>`))
		Expect(err).To(HaveOccurred())
	})

	It("loads domains from a file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "capture.har")
		Expect(os.WriteFile(path, []byte(capture), 0644)).To(Succeed())
		Expect(har.DomainsFromFile(path)).To(HaveLen(5))

		_, err := har.DomainsFromFile(filepath.Join(GinkgoT().TempDir(), "missing.har"))
		Expect(err).To(MatchError(ContainSubstring("cannot open HAR file")))
	})

})
