// https://github.com/tamago-hv/armhv
//
// Copyright (c) The Project Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package el2entry

import (
	"github.com/tamago-hv/armhv/arm64/sysreg"
	"github.com/tamago-hv/armhv/arm64/trap"
	"github.com/tamago-hv/armhv/arm64/vcpu"
)

// handleSync is vectorTable's synchronous-exception handler. It copies the
// spilled guest registers out of scratch into the resident VCPU's
// trapframe, dispatches the trap, then copies the (possibly updated)
// trapframe back into scratch so vectorTable can restore it. This only
// matters for the plain sysreg-emulation return path: when trap.Dispatch
// world-switches, Resume's own eret supersedes whatever vectorTable would
// have restored and this function's caller never regains control.
func handleSync() {
	esr := sysreg.ReadESREL2()
	elr := sysreg.ReadELREL2()
	spsr := sysreg.ReadSPSREL2()
	far := sysreg.ReadFAREL2()

	if tf := vcpu.Current(); tf != nil {
		tf.Regs = scratch
		tf.SP = sysreg.ReadSPEL1()
	}

	trap.Dispatch(esr, elr, spsr, far)

	if tf := vcpu.Current(); tf != nil {
		scratch = tf.Regs
	}
}
