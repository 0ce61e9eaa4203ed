// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package report

import (
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/siemens/hardig/types"
)

// jsonRecord is the JSON representation of a record.
type jsonRecord struct {
	Domain    string   `json:"domain"`
	Addresses []string `json:"addresses"`
	LatencyMs float64  `json:"latency_ms"`
	Geo       []string `json:"geo"` // one location per address, if located.
	Error     string   `json:"error,omitempty"`
}

// JSON renders the specified records as an indented JSON array.
func JSON(w io.Writer, records []types.Record) error {
	jrecs := make([]jsonRecord, 0, len(records))
	for _, rec := range records {
		jrec := jsonRecord{
			Domain:    rec.Domain,
			Addresses: addrLines(rec.Addresses),
			LatencyMs: float64(rec.Latency) / float64(time.Millisecond),
			Geo:       []string{},
			Error:     rec.Err,
		}
		if rec.Geo != "" {
			jrec.Geo = strings.Split(rec.Geo, "\n")
		}
		jrecs = append(jrecs, jrec)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jrecs)
}
