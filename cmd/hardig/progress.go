// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/siemens/hardig/types"

	"github.com/gosuri/uilive"
)

// progress renders a live single-line summary of how many domains have been
// analysed so far. Update is safe to call from multiple goroutines.
type progress struct {
	mu      sync.Mutex
	total   int
	done    int
	failed  int
	last    string
	spinner *spinner

	term    *uilive.Writer
	stop    chan struct{}
	stopped chan struct{}
}

// newProgress returns a new progress display rendering to w until Stop gets
// called.
func newProgress(w io.Writer, total int) *progress {
	term := uilive.New()
	term.Out = w
	p := &progress{
		total:   total,
		spinner: newSpinner(),
		term:    term,
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go p.run(spinnerInterval)
	return p
}

// Update the progress with a newly finished analysis record.
func (p *progress) Update(rec types.Record) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	if rec.Failed() {
		p.failed++
	}
	p.last = rec.Domain
}

// Stop rendering after a final update and wait for the renderer to finish.
func (p *progress) Stop() {
	close(p.stop)
	<-p.stopped
}

func (p *progress) run(interval time.Duration) {
	// Dunno what uilive's background updating mode using Start() is good for?
	// It may trigger anytime with the rendering into the buffer not yet
	// complete, so we instead explicitly flush after each complete rendering.
	defer close(p.stopped)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		p.render(p.term, true)
		_ = p.term.Flush()
		select {
		case <-ticker.C:
		case <-p.stop:
			p.render(p.term, false)
			_ = p.term.Flush()
			return
		}
	}
}

// render the current progress into w. While still busy, the rendering
// includes the spinner and the most recently finished domain.
func (p *progress) render(w io.Writer, busy bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !busy {
		fmt.Fprintf(w, "analysed %s domains, %s failed\n",
			doneStyle.Styled(fmt.Sprintf("%d/%d", p.done, p.total)),
			failedStyle.Styled(fmt.Sprint(p.failed)))
		return
	}
	fmt.Fprintf(w, "%sanalysing %d/%d domains, %s failed",
		spinnerStyle.Styled(p.spinner.String()),
		p.done, p.total,
		failedStyle.Styled(fmt.Sprint(p.failed)))
	if p.last != "" {
		fmt.Fprintf(w, " %s", domainStyle.Styled(p.last))
	}
	fmt.Fprintln(w)
	p.spinner.Next()
}
