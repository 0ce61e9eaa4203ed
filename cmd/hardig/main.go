// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	// Cobra's own error output is silenced, so errors get reported exactly
	// once, through the logger.
	if err := newRootCmd().Execute(); err != nil {
		log.Error(err.Error())
		osExit(1)
	}
}

// For CLI unit tests...
var osExit = os.Exit
