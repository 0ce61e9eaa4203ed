// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

// Yet another (braille) spinner.

package main

// spinner is yet another blindingly simple spinner. It doesn't spin on its own
// but instead advances a phase whenever its owner tells it to.
type spinner struct {
	phases []string
	phase  int
}

func newSpinner() *spinner {
	phases := []string{}
	for _, r := range "⠉⠘⠰⠤⠆⠃" {
		phases = append(phases, string(r)+" ")
	}
	return &spinner{phases: phases}
}

// String returns the spinner string for the current phase.
func (s *spinner) String() string {
	return s.phases[s.phase]
}

// Next advances the spinner to its next phase.
func (s *spinner) Next() {
	s.phase = (s.phase + 1) % len(s.phases)
}
