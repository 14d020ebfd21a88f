// https://github.com/tamago-hv/armhv
//
// Copyright (c) The Project Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package trap

import (
	"github.com/tamago-hv/armhv/arm64/sysreg"
	"github.com/tamago-hv/armhv/arm64/vcpu"
	"github.com/tamago-hv/armhv/bits"
)

// Trapped counter/timer sysregs, packed by sysRegEncode as
// op0<<14 | op1<<10 | CRn<<6 | CRm<<2 | op2; esrSysRegister repacks a
// trapped ISS into the same code.
var (
	sysCNTPCTEL0    = sysRegEncode(3, 3, 14, 0, 1)
	sysCNTVCTEL0    = sysRegEncode(3, 3, 14, 0, 2)
	sysCNTPTVALEL0  = sysRegEncode(3, 3, 14, 2, 0)
	sysCNTPCTLEL0   = sysRegEncode(3, 3, 14, 2, 1)
	sysCNTPCVALEL0  = sysRegEncode(3, 3, 14, 2, 2)
	sysCNTVTVALEL0  = sysRegEncode(3, 3, 14, 3, 0)
	sysCNTVCTLEL0   = sysRegEncode(3, 3, 14, 3, 1)
	sysCNTVCVALEL0  = sysRegEncode(3, 3, 14, 3, 2)
)

// sysRegEncode is used both to name the table above and at runtime to pack
// a decoded ISS; it packs its plain arguments with shifts rather than going
// through the bits helpers.
func sysRegEncode(op0, op1, crn, crm, op2 uint32) uint32 {
	return op0<<14 | op1<<10 | crn<<6 | crm<<2 | op2
}

// esrSysRegister decodes the trapped system register out of an ESR_EL2 ISS
// field for EC=0x18 (trapped MSR/MRS/system instruction).
func esrSysRegister(esr uint64) uint32 {
	op0 := uint32(bits.GetN64(&esr, 20, 0x3))
	op1 := uint32(bits.GetN64(&esr, 16, 0xf))
	crn := uint32(bits.GetN64(&esr, 12, 0xf))
	crm := uint32(bits.GetN64(&esr, 8, 0xf))
	op2 := uint32(bits.GetN64(&esr, 5, 0x7))
	return sysRegEncode(op0, op1, crn, crm, op2)
}

// esrSysRegRt extracts the RT field (bits[4:0]) of the ISS for EC=0x18.
func esrSysRegRt(esr uint64) uint32 {
	return uint32(bits.GetN64(&esr, 0, 0x1f))
}

// esrSysRegIsRead reports whether the trapped access was a read (the
// direction bit the prototype reads out of bit 21 of the ISS).
func esrSysRegIsRead(esr uint64) bool {
	return bits.Get64(&esr, 21)
}

func regAt(cur *vcpu.VCPU, rt uint32) uint64 {
	if cur == nil || rt >= 31 {
		return 0
	}
	return cur.Arch.TF.Regs[rt]
}

func setReg(cur *vcpu.VCPU, rt uint32, val uint64) {
	if cur == nil || rt >= 31 {
		return
	}
	cur.Arch.TF.Regs[rt] = val
}

// handleTimerSysreg emulates a trapped access to a counter or timer sysreg.
// CNTP_* registers are translated between the guest's virtual domain and the
// physical counter via the VCPU's CNTVOFF; CNTV_* registers are passed
// through untranslated since hardware already applies CNTVOFF_EL2 to them.
func handleTimerSysreg(esr, elr uint64) bool {
	cur := vcpu.Sched.Current()
	if cur == nil {
		return false
	}

	reg := esrSysRegister(esr)
	rt := esrSysRegRt(esr)
	isRead := esrSysRegIsRead(esr)
	virtNow := sysreg.ReadCNTVCTEL0()

	switch reg {
	case sysCNTPCTEL0, sysCNTVCTEL0:
		if isRead {
			setReg(cur, rt, virtNow)
		}
		advanceELR(cur, elr)
		return true

	case sysCNTPCVALEL0:
		if isRead {
			phys := sysreg.ReadCNTPCVALEL0()
			virt := phys + cur.Arch.CNTVOff
			cur.Arch.TF.CNTPCval = virt
			setReg(cur, rt, virt)
		} else {
			virt := regAt(cur, rt)
			cur.Arch.TF.CNTPCval = virt
			sysreg.WriteCNTPCVALEL0(virt - cur.Arch.CNTVOff)
		}
		advanceELR(cur, elr)
		sysreg.ISB()
		return true

	case sysCNTPCTLEL0:
		if isRead {
			ctl := sysreg.ReadCNTPCTLEL0()
			cur.Arch.TF.CNTPCtl = ctl
			setReg(cur, rt, ctl)
		} else {
			ctl := regAt(cur, rt) & 0x3
			cur.Arch.TF.CNTPCtl = ctl
			sysreg.WriteCNTPCTLEL0(ctl)
		}
		advanceELR(cur, elr)
		sysreg.ISB()
		return true

	case sysCNTPTVALEL0:
		if isRead {
			delta := int64(cur.Arch.TF.CNTPCval - virtNow)
			setReg(cur, rt, uint64(delta))
		} else {
			delta := int64(int32(regAt(cur, rt)))
			target := uint64(int64(virtNow) + delta)
			cur.Arch.TF.CNTPCval = target
			sysreg.WriteCNTPCVALEL0(target - cur.Arch.CNTVOff)
		}
		advanceELR(cur, elr)
		sysreg.ISB()
		return true

	case sysCNTVCVALEL0:
		if isRead {
			val := sysreg.ReadCNTVCVALEL0()
			cur.Arch.TF.CNTVCval = val
			setReg(cur, rt, val)
		} else {
			val := regAt(cur, rt)
			cur.Arch.TF.CNTVCval = val
			sysreg.WriteCNTVCVALEL0(val)
		}
		advanceELR(cur, elr)
		sysreg.ISB()
		return true

	case sysCNTVCTLEL0:
		if isRead {
			ctl := sysreg.ReadCNTVCTLEL0()
			cur.Arch.TF.CNTVCtl = ctl
			setReg(cur, rt, ctl)
		} else {
			ctl := regAt(cur, rt) & 0x3
			cur.Arch.TF.CNTVCtl = ctl
			sysreg.WriteCNTVCTLEL0(ctl)
		}
		advanceELR(cur, elr)
		sysreg.ISB()
		return true

	case sysCNTVTVALEL0:
		if isRead {
			val := sysreg.ReadCNTVCVALEL0()
			cur.Arch.TF.CNTVCval = val
			delta := int64(val - virtNow)
			setReg(cur, rt, uint64(delta))
		} else {
			delta := int64(int32(regAt(cur, rt)))
			target := uint64(int64(virtNow) + delta)
			cur.Arch.TF.CNTVCval = target
			sysreg.WriteCNTVCVALEL0(target)
		}
		advanceELR(cur, elr)
		sysreg.ISB()
		return true
	}

	return false
}

// handleGuestTimeOverride services HVC #0x61: a guest presents a desired
// virtual counter value in x0 and this recomputes CNTVOFF_EL2 so CNTVCT
// reads that value going forward, then reprograms the hardware physical
// timer compare and republishes the cached CNTP/CNTV control and compare
// values so pending timers stay coherent across the rebase.
func handleGuestTimeOverride() bool {
	cur := vcpu.Sched.Current()
	if cur == nil {
		return false
	}

	desired := regAt(cur, 0)
	physCounter := sysreg.ReadCNTPCTEL0()

	offset := desired - physCounter
	cur.Arch.CNTVCT = desired
	cur.Arch.CNTVOff = offset

	sysreg.WriteCNTVOFFEL2(offset)

	physCval := cur.Arch.TF.CNTPCval - offset
	sysreg.WriteCNTPCVALEL0(physCval)
	sysreg.WriteCNTPCTLEL0(cur.Arch.TF.CNTPCtl)
	sysreg.WriteCNTVCVALEL0(cur.Arch.TF.CNTVCval)
	sysreg.WriteCNTVCTLEL0(cur.Arch.TF.CNTVCtl)
	sysreg.ISB()

	setReg(cur, 0, desired)

	return true
}
