// https://github.com/tamago-hv/armhv
//
// Copyright (c) The Project Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package sysreg centralizes AArch64 EL2/EL1 system register access and
// barrier instructions behind plain Go functions, mediating every MRS/MSR
// the same way internal/reg mediates MMIO, so that the mmu, vcpu and trap
// packages never embed inline assembly directly.
package sysreg

// defined in sysreg.s

// Barriers and TLB maintenance.
func DSBISHST()
func DSBISH()
func ISB()
func TLBIVMALLS12E1IS()

// CurrentEL returns the raw value of CurrentEL (bits [3:2] hold the EL).
func CurrentEL() uint64

// Stage-1 (EL2-private) translation control.
func WriteTTBR0EL2(addr uint64)
func WriteTCREL2(val uint64)
func WriteMAIREL2(val uint64)
func ReadSCTLREL2() uint64
func WriteSCTLREL2(val uint64)
func WriteVBAREL2(addr uint64)

// Stage-2 (guest-physical) translation control.
func WriteVTCREL2(val uint64)
func ReadVTCREL2() uint64
func WriteVTTBREL2(val uint64)
func ReadVTTBREL2() uint64
func WriteHCREL2(val uint64)
func ReadHCREL2() uint64
func ReadIDAA64MMFR1EL1() uint64

// Fault reporting, read on trap entry.
func ReadESREL2() uint64
func ReadFAREL2() uint64
func ReadHPFAREL2() uint64
func ReadELREL2() uint64
func WriteELREL2(addr uint64)
func ReadSPSREL2() uint64
func WriteSPSREL2(val uint64)

// EL1 entry/exit.
func WriteVBAREL1(addr uint64)
func WriteSPEL1(addr uint64)
func ReadSPEL1() uint64
func Eret()

// EL1 context, captured/restored across a world switch.
func ReadTTBR0EL1() uint64
func WriteTTBR0EL1(val uint64)
func ReadTTBR1EL1() uint64
func WriteTTBR1EL1(val uint64)
func ReadTCREL1() uint64
func WriteTCREL1(val uint64)
func ReadSCTLREL1() uint64
func WriteSCTLREL1(val uint64)
func ReadTPIDREL1() uint64
func WriteTPIDREL1(val uint64)
func ReadCNTKCTLEL1() uint64
func WriteCNTKCTLEL1(val uint64)

// Generic timer, physical and virtual views.
func ReadCNTPCTEL0() uint64
func ReadCNTVCTEL0() uint64
func ReadCNTVOFFEL2() uint64
func WriteCNTVOFFEL2(val uint64)
func ReadCNTPCTLEL0() uint64
func WriteCNTPCTLEL0(val uint64)
func ReadCNTPCVALEL0() uint64
func WriteCNTPCVALEL0(val uint64)
func ReadCNTPTVALEL0() uint64
func WriteCNTPTVALEL0(val uint64)
func ReadCNTVCTLEL0() uint64
func WriteCNTVCTLEL0(val uint64)
func ReadCNTVCVALEL0() uint64
func WriteCNTVCVALEL0(val uint64)
func ReadCNTVTVALEL0() uint64
func WriteCNTVTVALEL0(val uint64)

// Pointer authentication keys (ARMv8.3-PAuth), zeroed after capture by the
// caller so that no guest key material lingers in a live EL1 register once
// it has been folded into the outgoing VCPU's saved state.
func ReadAPIAKeyEL1() (hi, lo uint64)
func WriteAPIAKeyEL1(hi, lo uint64)
func ReadAPIBKeyEL1() (hi, lo uint64)
func WriteAPIBKeyEL1(hi, lo uint64)
func ReadAPDAKeyEL1() (hi, lo uint64)
func WriteAPDAKeyEL1(hi, lo uint64)
func ReadAPDBKeyEL1() (hi, lo uint64)
func WriteAPDBKeyEL1(hi, lo uint64)
