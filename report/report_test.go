// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package report

import (
	"bytes"
	"encoding/json"
	"net"
	"strings"
	"time"

	"github.com/siemens/hardig/types"

	"github.com/muesli/termenv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func records() []types.Record {
	good := types.NewRecord("good.example")
	good.Addresses = []net.IP{net.ParseIP("192.0.2.1"), net.ParseIP("2001:db8::1")}
	good.Latency = 12*time.Millisecond + 345*time.Microsecond
	good.Geo = "Germany / Munich\nGermany"

	bad := types.NewRecord("bad.invalid")
	bad.Err = `no such host "bad.invalid"`

	return []types.Record{good, bad}
}

var _ = Describe("reports", func() {

	It("renders a table", func() {
		var buff bytes.Buffer
		Expect(Table(&buff, records())).To(Succeed())
		Expect(buff.String()).To(Equal(strings.Join([]string{
			" domain       | addrs       | latency | geo              | err",
			"--------------+-------------+---------+------------------+----------------------------",
			" good.example | 192.0.2.1   | 12ms    | Germany / Munich |",
			"              | 2001:db8::1 |         | Germany          |",
			` bad.invalid  |             | 0ms     |                  | no such host "bad.invalid"`,
			"",
		}, "\n")))
	})

	It("renders an empty table", func() {
		var buff bytes.Buffer
		Expect(Table(&buff, nil)).To(Succeed())
		Expect(buff.String()).To(Equal(
			" domain | addrs | latency | geo | err\n--------+-------+---------+-----+-----\n"))
	})

	It("measures wide characters", func() {
		rec := types.NewRecord("例え.テスト")
		rec.Geo = "日本 / 東京"
		var buff bytes.Buffer
		Expect(Table(&buff, []types.Record{rec})).To(Succeed())
		lines := strings.Split(buff.String(), "\n")
		Expect(lines[1]).To(HavePrefix("-------------+"))
		Expect(lines[2]).To(HavePrefix(" 例え.テスト | "))
	})

	It("colors latencies and errors", func() {
		var buff bytes.Buffer
		Expect(Table(&buff, records(), WithColors(termenv.ANSI))).To(Succeed())
		out := buff.String()
		Expect(out).To(ContainSubstring(latencyStyle.Styled(" 12ms    ")))
		Expect(out).To(ContainSubstring(errStyle.Styled(` no such host "bad.invalid" `)))
		Expect(out).NotTo(ContainSubstring(latencyStyle.Styled(" 0ms     ")))

		buff.Reset()
		Expect(Table(&buff, records(), WithColors(termenv.Ascii))).To(Succeed())
		Expect(buff.String()).NotTo(ContainSubstring("\x1b["))
	})

	It("renders JSON", func() {
		var buff bytes.Buffer
		Expect(JSON(&buff, records())).To(Succeed())
		var jrecs []map[string]any
		Expect(json.Unmarshal(buff.Bytes(), &jrecs)).To(Succeed())
		Expect(jrecs).To(HaveLen(2))
		Expect(jrecs[0]).To(And(
			HaveKeyWithValue("domain", "good.example"),
			HaveKeyWithValue("addresses", ConsistOf("192.0.2.1", "2001:db8::1")),
			HaveKeyWithValue("latency_ms", BeNumerically("~", 12.345, 0.001)),
			HaveKeyWithValue("geo", ConsistOf("Germany / Munich", "Germany")),
			Not(HaveKey("error")),
		))
		Expect(jrecs[1]).To(And(
			HaveKeyWithValue("addresses", BeEmpty()),
			HaveKeyWithValue("geo", BeEmpty()),
			HaveKeyWithValue("error", ContainSubstring("no such host")),
		))
	})

})
