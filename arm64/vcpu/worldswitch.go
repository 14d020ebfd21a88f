// https://github.com/tamago-hv/armhv
//
// Copyright (c) The Project Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package vcpu

import (
	"github.com/tamago-hv/armhv/arm64"
	"github.com/tamago-hv/armhv/arm64/gic"
	"github.com/tamago-hv/armhv/arm64/sysreg"
	"github.com/tamago-hv/armhv/console"
)

// GuestVBAR is the EL1 vector table address installed for every guest
// before it (re)enters. It is populated once by the board package during
// boot.
var GuestVBAR uint64

// current points at the trapframe of whichever VCPU is presently resident,
// so the trap dispatcher can find it without threading a pointer through
// every exception vector.
var current *Trapframe

// Current returns the trapframe of the resident VCPU.
func Current() *Trapframe {
	return current
}

// defined in switch.s
func vcpuSwitchAsm(tf *Trapframe)

var cpu arm64.CPU

// WorldSwitch performs the ordered context transition from one VCPU to
// another. from may be nil on the very first entry, in which case nothing
// is saved. The function does not return: vcpuSwitchAsm restores the
// incoming VCPU's general purpose registers and erets into it.
func WorldSwitch(from, to *VCPU) {
	cpu.DisableInterrupts()
	sysreg.ISB()

	if from != nil {
		saveFP(&from.Arch.FP)
		savePAuth(&from.Arch.PAuth)
		gic.SaveVGIC(&from.Arch.VGIC)
	}

	sysreg.WriteVTTBREL2(to.Arch.VTTBR)
	sysreg.ISB()

	sysreg.WriteCNTVOFFEL2(to.Arch.CNTVOff)

	gic.RestoreVGIC(&to.Arch.VGIC)
	restorePAuth(&to.Arch.PAuth)
	restoreFP(&to.Arch.FP)

	sysreg.WriteVBAREL1(GuestVBAR)

	current = &to.Arch.TF

	console.Default.WriteString("switching to vcpu\n")

	Resume(to)
}

// Resume restores a VCPU's general purpose registers and erets into it.
// Its only caller is WorldSwitch.
//
// EL1 is not banked per guest in this design, so every EL1 system register a
// guest can observe or rely on is software-multiplexed here from the
// trapframe before the guest is allowed to run.
func Resume(to *VCPU) {
	tf := &to.Arch.TF

	sysreg.WriteTTBR0EL1(tf.TTBR0)
	sysreg.WriteTTBR1EL1(tf.TTBR1)
	sysreg.WriteTCREL1(tf.TCR)
	sysreg.WriteSCTLREL1(tf.SCTLR)
	sysreg.WriteTPIDREL1(tf.TPIDR)
	sysreg.WriteCNTKCTLEL1(tf.CNTKCTL)

	sysreg.WriteCNTPCTLEL0(tf.CNTPCtl)
	sysreg.WriteCNTPCVALEL0(tf.CNTPCval)
	sysreg.WriteCNTVCTLEL0(tf.CNTVCtl)
	sysreg.WriteCNTVCVALEL0(tf.CNTVCval)

	current = tf
	vcpuSwitchAsm(tf)

	sysreg.ISB()
	cpu.EnableInterrupts()
}
