// https://github.com/tamago-hv/armhv
//
// Copyright (c) The Project Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package trap decodes ESR_EL2 on every EL2 exception and dispatches it:
// WFI/WFE yields the current VCPU, HVC serves the guest hypercall ABI,
// trapped timer sysregs are emulated against virtual time, and anything
// else is reported and halted.
package trap

import (
	"github.com/tamago-hv/armhv/arm64/mmu/s2"
	"github.com/tamago-hv/armhv/arm64/sysreg"
	"github.com/tamago-hv/armhv/arm64/vcpu"
	"github.com/tamago-hv/armhv/console"
	"github.com/tamago-hv/armhv/fatal"
)

// Exception classes carried in ESR_EL2[31:26].
const (
	ecWFxTrap      = 0x01
	ecHVC          = 0x16
	ecSysReg       = 0x18
	ecIAbortLower  = 0x20
	ecIAbortSameEL = 0x21
	ecDAbortLower  = 0x24
	ecDAbortSameEL = 0x25
)

// Dispatch decodes esr's Exception Class and handles the trap, or reports
// and halts if it is not one this hypervisor emulates. elr, spsr and far are
// the values ELR_EL2, SPSR_EL2 and FAR_EL2 held at entry.
func Dispatch(esr, elr, spsr, far uint64) {
	ec := (esr >> 26) & 0x3f

	switch ec {
	case ecWFxTrap:
		handleWFx(elr)
		return
	case ecHVC:
		if handleHVC(esr, elr) {
			return
		}
	case ecSysReg:
		if handleTimerSysreg(esr, elr) {
			return
		}
	}

	reportException(esr, elr, spsr, far, ec)

	if ec == ecIAbortLower || ec == ecIAbortSameEL || ec == ecDAbortLower || ec == ecDAbortSameEL {
		reportAbort(esr, far)
	}

	fatal.Halt("trap: unhandled exception class")
}

// advanceELR publishes elr+4 to ELR_EL2 and to the resident VCPU's cached
// copy, so a subsequent save sees the post-trap PC.
func advanceELR(cur *vcpu.VCPU, elr uint64) {
	next := elr + 4
	sysreg.WriteELREL2(next)
	if cur != nil {
		cur.Arch.TF.ELR = next
	}
}

// OnYield, if set, is called after every guest-initiated yield. Board
// packages use it to hook periodic diagnostics (see
// board/qemu/virt.DumpSharedRegion) into the scheduling path without this
// package importing anything guest- or board-specific.
var OnYield func()

// handleWFx services a guest's WFI/WFE by immediately yielding to the next
// scheduled VCPU. The reference prototype instead set a request_yield flag
// for some unspecified later consumer to act on; nothing in that prototype
// ever read the flag, so this hypervisor performs the yield inline from the
// trap path, which is also the only place a yield can originate given the
// scheduler's design (see vcpu.Scheduler.Run).
func handleWFx(elr uint64) {
	cur := vcpu.Sched.Current()
	advanceELR(cur, elr)

	if cur != nil {
		cur.RequestYield = true
	}

	next := vcpu.Sched.Yield()

	if OnYield != nil {
		OnYield()
	}

	if next == nil || next == cur {
		return
	}

	console.Default.WriteString("trap: wfx yield\n")
	vcpu.WorldSwitch(cur, next)
}

func reportException(esr, elr, spsr, far, ec uint64) {
	console.Default.WriteString("\n=== EL2 Exception ===\n")
	console.Default.WriteString("ESR: ")
	console.Default.WriteHex64(esr)
	console.Default.WriteString("\n")
	console.Default.WriteString("ELR: ")
	console.Default.WriteHex64(elr)
	console.Default.WriteString("\n")
	console.Default.WriteString("SPSR: ")
	console.Default.WriteHex64(spsr)
	console.Default.WriteString("\n")
	console.Default.WriteString("FAR: ")
	console.Default.WriteHex64(far)
	console.Default.WriteString("\n")
	console.Default.WriteString("====================\n")
	console.Default.WriteString("Exception Class (EC): ")
	console.Default.WriteHex64(ec)
	console.Default.WriteString("\n")
}

// reportAbort dumps the Stage-2 translation state relevant to an instruction
// or data abort: VTCR_EL2/VTTBR_EL2/HPFAR_EL2, the ISS fault fields, and the
// Stage-2 L1 descriptor covering the faulting address.
func reportAbort(esr, far uint64) {
	switch (esr >> 26) & 0x3f {
	case ecIAbortLower:
		console.Default.WriteString("Instruction Abort from lower EL detected.\n")
	case ecIAbortSameEL:
		console.Default.WriteString("Instruction Abort from same EL detected.\n")
	case ecDAbortLower:
		console.Default.WriteString("Data Abort from lower EL detected.\n")
	case ecDAbortSameEL:
		console.Default.WriteString("Data Abort from same EL detected.\n")
	}

	vtcr := sysreg.ReadVTCREL2()
	vttbr := sysreg.ReadVTTBREL2()
	hpfar := sysreg.ReadHPFAREL2()

	console.Default.WriteString("VTTBR_EL2: ")
	console.Default.WriteHex64(vttbr)
	console.Default.WriteString("\n")
	console.Default.WriteString("VTCR_EL2 : ")
	console.Default.WriteHex64(vtcr)
	console.Default.WriteString("\n")
	console.Default.WriteString("HPFAR_EL2 : ")
	console.Default.WriteHex64(hpfar)
	console.Default.WriteString("\n")

	iss := esr & 0xffffff
	ifsc := iss & 0x3f

	console.Default.WriteString("ISS: ")
	console.Default.WriteHex64(iss)
	console.Default.WriteString("\n")
	console.Default.WriteString("  IFSC: ")
	console.Default.WriteHex64(ifsc)
	console.Default.WriteString("\n")

	if ifsc == 0x4 || ifsc == 0x5 || ifsc == 0x6 {
		console.Default.WriteString("  LVL: ")
		console.Default.WriteHex64(ifsc - 0x4)
		console.Default.WriteString("\n")
	}

	fnv := (iss >> 10) & 1
	ea := (iss >> 9) & 1
	s1ptw := (iss >> 7) & 1

	console.Default.WriteString("  S1PTW: ")
	console.Default.WriteHex64(s1ptw)
	console.Default.WriteString("\n")
	console.Default.WriteString("  FnV: ")
	console.Default.WriteHex64(fnv)
	console.Default.WriteString("\n")
	console.Default.WriteString("  EA: ")
	console.Default.WriteHex64(ea)
	console.Default.WriteString("\n")

	ipaIndex := (far >> 30) & 0x1ff
	console.Default.WriteString("S2 L1 idx for FAR: ")
	console.Default.WriteHex64(ipaIndex)
	console.Default.WriteString("\n")

	desc, valid := s2.L1Descriptor(far)
	console.Default.WriteString("S2 L1 entry value : ")
	console.Default.WriteHex64(desc)
	console.Default.WriteString("\n")

	if valid {
		console.Default.WriteString("S2 L1 entry valid.\n")
	} else {
		console.Default.WriteString("S2 L1 entry NOT VALID -> translation fault\n")
	}
}
