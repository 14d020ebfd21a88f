// https://github.com/tamago-hv/armhv
//
// Copyright (c) The Project Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package vcpu implements the per-guest context model, the ordered world
// switch between VCPU slots, and the fixed-capacity round-robin scheduler
// that picks which slot runs next.
package vcpu

import "github.com/tamago-hv/armhv/arm64/gic"

// Trapframe holds everything a guest's EL1 execution context needs across a
// trap into EL2: its general purpose registers and the EL1 system registers
// that are not banked per-VMID and would otherwise leak between guests.
type Trapframe struct {
	Regs [31]uint64 // x0-x30
	SP   uint64     // sp_el1
	ELR  uint64     // saved guest PC, published to elr_el2 on resume
	SPSR uint64     // saved guest pstate, published to spsr_el2 on resume

	TTBR0 uint64
	TTBR1 uint64
	TCR   uint64
	SCTLR uint64
	TPIDR uint64

	CNTKCTL  uint64
	CNTPCtl  uint64
	CNTPCval uint64
	CNTVCtl  uint64
	CNTVCval uint64
}

// FPState captures the NEON/FP register file. Vreg holds each of Q0-Q31 as
// a two-word (128-bit) pair.
type FPState struct {
	Used bool
	FPCR uint64
	FPSR uint64
	Vreg [32][2]uint64
}

// SVEState is carried for structural parity with the reference context
// layout; this hypervisor never advertises SVE to a guest (ID_AA64PFR0_EL1
// is not virtualized), so Used is always false and no register data is
// saved.
type SVEState struct {
	Used bool
}

// PAuthState captures the four ARMv8.3 pointer-authentication key pairs.
// Each pair is (hi, lo) matching the _EL1 Hi/Lo register split.
type PAuthState struct {
	Used  bool
	APIA  [2]uint64
	APIB  [2]uint64
	APDA  [2]uint64
	APDB  [2]uint64
}

// Arch is the EL2-visible architectural state of one VCPU: the Stage-2 root
// it runs under, its virtual timer offset, and the register blocks that
// must move between live hardware and memory on every world switch.
type Arch struct {
	VTTBR   uint64
	CNTVOff uint64
	CNTVCT  uint64

	FP    FPState
	SVE   SVEState
	PAuth PAuthState
	VGIC  gic.VGICState

	TF Trapframe
}

// VCPU is one schedulable guest slot.
type VCPU struct {
	Arch         Arch
	ID           int
	RequestYield bool
}

// BootManifest supplies the EL1 system register values a freshly registered
// VCPU starts with. The reference prototype sourced these by reading the
// hypervisor's own live EL1 registers, which does not correspond to any
// meaningful guest state for a real Type-1 design; this hypervisor instead
// takes an explicit manifest defaulted to architectural reset values (MMU
// disabled, no ASID/TTBR state, zero TPIDR) so guest boot state is
// reproducible and independent of EL2's own register contents.
type BootManifest struct {
	TTBR0   uint64
	TTBR1   uint64
	TCR     uint64
	SCTLR   uint64
	TPIDR   uint64
	CNTKCTL uint64
}

// DefaultBootManifest returns the manifest used when a caller has no
// guest-specific EL1 configuration to seed: Stage-1 translation disabled at
// EL1, so the guest runs against the flat Stage-2 identity map until (and
// unless) it builds and enables its own page tables.
func DefaultBootManifest() BootManifest {
	return BootManifest{}
}

// InitSlot populates a VCPU for its first run: entry point, stack pointer,
// the Stage-2 root it shares with every other slot, and the EL1 register
// manifest it boots with.
func InitSlot(v *VCPU, id int, entry, sp, vttbr uint64, manifest BootManifest) {
	*v = VCPU{ID: id}

	v.Arch.VTTBR = vttbr

	// CNTVOff stays zero: a zero virtual-time offset makes CNTVCT_EL0 read
	// back exactly the current CNTPCT_EL0 the moment this slot is first
	// resumed, which is what seeding the virtual counter from the physical
	// one means for a freshly initialized VCPU. A guest that calls
	// tasks.TimeOverride later reprograms it explicitly.
	v.Arch.CNTVOff = 0

	v.Arch.TF.ELR = entry
	v.Arch.TF.SP = sp
	v.Arch.TF.Regs[0] = uint64(id)

	const (
		spsrEL1h = 0x5
		spsrDAIF = 0xf << 6
	)
	v.Arch.TF.SPSR = spsrEL1h | spsrDAIF

	v.Arch.TF.TTBR0 = manifest.TTBR0
	v.Arch.TF.TTBR1 = manifest.TTBR1
	v.Arch.TF.TCR = manifest.TCR
	v.Arch.TF.SCTLR = manifest.SCTLR
	v.Arch.TF.TPIDR = manifest.TPIDR
	v.Arch.TF.CNTKCTL = manifest.CNTKCTL
}
