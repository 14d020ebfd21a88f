// https://github.com/tamago-hv/armhv
//
// Copyright (c) The Project Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package el2entry owns VBAR_EL2 and the entire EL2 exception path: the
// 2 KiB-aligned, 16-entry vector table, the guest GPR spill into
// vcpu.Current() on entry, the call into trap.Dispatch, and the restore on
// a plain (non-world-switching) return. Only the synchronous-from-a-lower-EL
// slot is populated, since every trap this hypervisor handles is
// synchronous and guests never run in AArch32; IRQ is left to the GIC
// virtualization hardware (see arm64/gic), and the remaining slots park the
// core, since nothing in this design is expected to reach them.
package el2entry

import "github.com/tamago-hv/armhv/arm64/sysreg"

// scratch relays a trapped guest's general purpose registers between
// vectorTable's entry spill (which cannot yet compute a trapframe address
// without clobbering the very registers it needs to save) and handleSync,
// which copies them into and back out of vcpu.Current() once it can.
var scratch [31]uint64

// defined in vectors.s
func vectorTableAddr() uint64

// InstallVectors points VBAR_EL2 at this package's vector table.
func InstallVectors() {
	sysreg.WriteVBAREL2(vectorTableAddr())
	sysreg.ISB()
}
