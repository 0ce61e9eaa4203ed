// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/siemens/hardig/types"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
)

// Column headers of the table.
var headers = []string{"domain", "addrs", "latency", "geo", "err"}

const (
	latencyColumn = 2
	errColumn     = 4
)

var (
	latencyStyle = termenv.Style{}.Foreground(termenv.ANSIGreen)
	errStyle     = termenv.Style{}.Foreground(termenv.ANSIRed)
)

type table struct {
	colors bool
}

// Option can be passed to Table.
type Option func(*table)

// WithColors colors the latency of successfully probed domains as well as
// errors, unless the specified profile is termenv.Ascii.
func WithColors(profile termenv.Profile) Option {
	return func(t *table) {
		t.colors = profile != termenv.Ascii
	}
}

// Table renders the specified records as a table in the style of psql. Cells
// with multiple lines, such as multiple addresses, are continued on the
// following table lines.
func Table(w io.Writer, records []types.Record, options ...Option) error {
	t := &table{}
	for _, opt := range options {
		opt(t)
	}
	rows := make([][][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, cells(rec))
	}
	widths := make([]int, len(headers))
	for col, header := range headers {
		widths[col] = runewidth.StringWidth(header)
	}
	for _, row := range rows {
		for col, cell := range row {
			for _, line := range cell {
				if l := runewidth.StringWidth(line); l > widths[col] {
					widths[col] = l
				}
			}
		}
	}

	var b strings.Builder
	for col, header := range headers {
		t.writeCell(&b, col, header, widths[col], nil)
	}
	b.WriteString("\n")
	for col, width := range widths {
		if col > 0 {
			b.WriteString("+")
		}
		b.WriteString(strings.Repeat("-", width+2))
	}
	b.WriteString("\n")
	for idx, row := range rows {
		height := 1
		for _, cell := range row {
			if len(cell) > height {
				height = len(cell)
			}
		}
		for line := 0; line < height; line++ {
			for col, cell := range row {
				text := ""
				if line < len(cell) {
					text = cell[line]
				}
				t.writeCell(&b, col, text, widths[col], &records[idx])
			}
			b.WriteString("\n")
		}
	}
	_, err := io.WriteString(w, trimLines(b.String()))
	return err
}

// writeCell writes a single padded (and optionally styled) cell, including
// the column separator. Header cells are passed without a record.
func (t *table) writeCell(b *strings.Builder, col int, text string, width int, rec *types.Record) {
	if col > 0 {
		b.WriteString("|")
	}
	text = " " + runewidth.FillRight(text, width) + " "
	if t.colors && rec != nil {
		switch {
		case col == latencyColumn && rec.Latency > 0:
			text = latencyStyle.Styled(text)
		case col == errColumn && rec.Failed():
			text = errStyle.Styled(text)
		}
	}
	b.WriteString(text)
}

// cells returns the (multi-line) cell contents of a record's table row.
func cells(rec types.Record) [][]string {
	return [][]string{
		{rec.Domain},
		addrLines(rec.Addresses),
		{Latency(rec)},
		strings.Split(rec.Geo, "\n"),
		strings.Split(rec.Err, "\n"),
	}
}

func addrLines(addrs []net.IP) []string {
	lines := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		lines = append(lines, addr.String())
	}
	return lines
}

// Latency returns the latency of a record in whole milliseconds, such as
// "12ms".
func Latency(rec types.Record) string {
	return fmt.Sprintf("%dms", rec.Latency.Milliseconds())
}

// trimLines removes trailing blanks from all lines, as the last column gets
// padded too.
func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for idx, line := range lines {
		lines[idx] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}
