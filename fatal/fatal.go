// https://github.com/tamago-hv/armhv
//
// Copyright (c) The Project Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package fatal collects every unrecoverable hypervisor condition (table
// pool exhaustion, an unknown exception class, a guest-forwarded fatal
// diagnostic, a Stage-2 fault) into one halt primitive.
package fatal

import (
	"github.com/tamago-hv/armhv/console"
	"github.com/tamago-hv/armhv/internal/exception"
)

// WaitInterrupt is set by the board package during boot so this package does
// not need to import arm64 directly and create an import cycle with it.
var WaitInterrupt func()

// Halt prints a diagnostic banner and the call site that invoked it, then
// parks the core forever. There is no recovery path: a Type-1 hypervisor
// that has lost confidence in its own translation or dispatch state has
// nothing safe left to do.
func Halt(msg string) {
	console.Default.WriteString("=== EL2 Halt ===\n")
	console.Default.WriteString(msg)
	console.Default.WriteString("\n")

	if file, line := exception.CallerSite(1); file != "" {
		console.Default.WriteString(file)
		console.Default.WriteString(":")
		console.Default.WriteHex64(uint64(line))
		console.Default.WriteString("\n")
	}

	for {
		if WaitInterrupt != nil {
			WaitInterrupt()
		}
	}
}
