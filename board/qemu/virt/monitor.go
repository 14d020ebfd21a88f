// QEMU virt support for tamago/arm64
// https://github.com/tamago-hv/armhv
//
// Copyright (c) The Project Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package virt

import (
	"unsafe"

	"github.com/tamago-hv/armhv/arm64/trap"
	"github.com/tamago-hv/armhv/console"
	"github.com/tamago-hv/armhv/guest/layout"
)

// dumpInterval bounds diagnostic spam: a snapshot every N guest yields
// (each reference guest yields once per iteration) is enough to see both
// kernels making independent forward progress without flooding the console.
const dumpInterval = 16

var yieldCount uint

// installMonitor hooks DumpSharedRegion into the scheduler's yield path.
func installMonitor() {
	trap.OnYield = func() {
		yieldCount++
		if yieldCount%dumpInterval == 0 {
			DumpSharedRegion()
		}
	}
}

// DumpSharedRegion prints every guest shared telemetry slot, identity
// mapped so EL2 can read it directly with no HVC round trip. Useful for the
// guest-isolation scenario: each reference guest only ever writes its own
// slot range, so a snapshot here shows both kernels made independent
// forward progress without touching each other's state.
func DumpSharedRegion() {
	console.Default.WriteString("EL2: guest shared slots snapshot\n")

	for slot := uint32(0); slot < layout.SharedSlotCount; slot++ {
		addr := layout.SharedSlot(slot)
		value := *(*uint64)(unsafe.Pointer(uintptr(addr)))

		console.Default.WriteString("  slot ")
		console.Default.WriteHex64(uint64(slot))
		console.Default.WriteString(" @ ")
		console.Default.WriteHex64(addr)
		console.Default.WriteString(" = ")
		console.Default.WriteHex64(value)
		console.Default.WriteString("\n")
	}
}
