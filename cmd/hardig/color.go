// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import "github.com/muesli/termenv"

var (
	spinnerStyle = termenv.Style{}.Foreground(termenv.ANSIYellow)
	doneStyle    = termenv.Style{}.Foreground(termenv.ANSIGreen)
	failedStyle  = termenv.Style{}.Foreground(termenv.ANSIRed)
)

var domainStyle = termenv.Style{}.Bold()
