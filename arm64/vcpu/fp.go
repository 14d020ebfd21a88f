// https://github.com/tamago-hv/armhv
//
// Copyright (c) The Project Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package vcpu

// defined in fp.s
func saveFPRegs(vreg *[32][2]uint64, fpcr, fpsr *uint64)
func restoreFPRegs(vreg *[32][2]uint64, fpcr, fpsr uint64)

func saveFP(s *FPState) {
	saveFPRegs(&s.Vreg, &s.FPCR, &s.FPSR)
	s.Used = true
}

func restoreFP(s *FPState) {
	if !s.Used {
		return
	}
	restoreFPRegs(&s.Vreg, s.FPCR, s.FPSR)
}
