// https://github.com/tamago-hv/armhv
//
// Copyright (c) The Project Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package trap

import (
	"testing"

	"github.com/tamago-hv/armhv/arm64/vcpu"
)

func TestSysRegEncodeMatchesISSFieldPacking(t *testing.T) {
	// CNTVCT_EL0: op0=3 op1=3 CRn=14 CRm=0 op2=2
	got := sysRegEncode(3, 3, 14, 0, 2)
	if got != sysCNTVCTEL0 {
		t.Errorf("sysRegEncode(3,3,14,0,2) = %#x, want sysCNTVCTEL0 %#x", got, sysCNTVCTEL0)
	}
}

func TestEsrSysRegisterDecodesEncodedFields(t *testing.T) {
	for _, reg := range []uint32{sysCNTPCTEL0, sysCNTVCTEL0, sysCNTPTVALEL0, sysCNTPCTLEL0, sysCNTPCVALEL0,
		sysCNTVTVALEL0, sysCNTVCTLEL0, sysCNTVCVALEL0} {

		op0 := uint64((reg >> 14) & 0x3)
		op1 := uint64((reg >> 10) & 0xf)
		crn := uint64((reg >> 6) & 0xf)
		crm := uint64((reg >> 2) & 0xf)
		op2 := uint64(reg & 0x7)

		iss := op0<<20 | op1<<16 | crn<<12 | crm<<8 | op2<<5
		esr := iss // EC/ISS2 bits above the ISS field are irrelevant to decode

		if got := esrSysRegister(esr); got != reg {
			t.Errorf("esrSysRegister round-trip for %#x = %#x, want %#x", reg, got, reg)
		}
	}
}

func TestEsrSysRegRtExtractsLowFiveBits(t *testing.T) {
	const esr = 0x1fffffe0 | 0x9 // RT = 9, every other ISS bit set
	if got := esrSysRegRt(esr); got != 9 {
		t.Errorf("esrSysRegRt() = %d, want 9", got)
	}
}

func TestEsrSysRegIsReadChecksDirectionBit(t *testing.T) {
	if !esrSysRegIsRead(1 << 21) {
		t.Errorf("esrSysRegIsRead() = false with direction bit set, want true")
	}
	if esrSysRegIsRead(0) {
		t.Errorf("esrSysRegIsRead() = true with direction bit clear, want false")
	}
}

func TestRegAtAndSetRegRoundTrip(t *testing.T) {
	var v vcpu.VCPU

	setReg(&v, 5, 0xcafebabe)
	if got := regAt(&v, 5); got != 0xcafebabe {
		t.Errorf("regAt(5) = %#x, want %#x", got, uint64(0xcafebabe))
	}
}

func TestRegAtAndSetRegGuardOutOfRangeAndNil(t *testing.T) {
	var v vcpu.VCPU

	setReg(&v, 31, 0x1234) // x31 is SP, not part of Regs
	if got := regAt(&v, 31); got != 0 {
		t.Errorf("regAt(31) = %#x, want 0", got)
	}

	setReg(nil, 0, 0x1234) // must not panic
	if got := regAt(nil, 0); got != 0 {
		t.Errorf("regAt(nil, 0) = %#x, want 0", got)
	}
}
