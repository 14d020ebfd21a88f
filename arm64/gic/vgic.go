// https://github.com/tamago-hv/armhv
//
// Copyright (c) The Project Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package gic

// VGICCapacity is the largest number of list registers this driver knows how
// to save and restore.
const VGICCapacity = 16

// defined in ich.s
func readICHLR0() uint64
func writeICHLR0(val uint64)
func readICHLR1() uint64
func writeICHLR1(val uint64)
func readICHLR2() uint64
func writeICHLR2(val uint64)
func readICHLR3() uint64
func writeICHLR3(val uint64)
func readICHLR4() uint64
func writeICHLR4(val uint64)
func readICHLR5() uint64
func writeICHLR5(val uint64)
func readICHLR6() uint64
func writeICHLR6(val uint64)
func readICHLR7() uint64
func writeICHLR7(val uint64)
func readICHLR8() uint64
func writeICHLR8(val uint64)
func readICHLR9() uint64
func writeICHLR9(val uint64)
func readICHLR10() uint64
func writeICHLR10(val uint64)
func readICHLR11() uint64
func writeICHLR11(val uint64)
func readICHLR12() uint64
func writeICHLR12(val uint64)
func readICHLR13() uint64
func writeICHLR13(val uint64)
func readICHLR14() uint64
func writeICHLR14(val uint64)
func readICHLR15() uint64
func writeICHLR15(val uint64)

func readICHVTR() uint64
func readICHVMCR() uint64
func writeICHVMCR(val uint64)
func readICHAP0R0() uint64
func writeICHAP0R0(val uint64)

var readLR = [VGICCapacity]func() uint64{
	readICHLR0, readICHLR1, readICHLR2, readICHLR3,
	readICHLR4, readICHLR5, readICHLR6, readICHLR7,
	readICHLR8, readICHLR9, readICHLR10, readICHLR11,
	readICHLR12, readICHLR13, readICHLR14, readICHLR15,
}

var writeLR = [VGICCapacity]func(uint64){
	writeICHLR0, writeICHLR1, writeICHLR2, writeICHLR3,
	writeICHLR4, writeICHLR5, writeICHLR6, writeICHLR7,
	writeICHLR8, writeICHLR9, writeICHLR10, writeICHLR11,
	writeICHLR12, writeICHLR13, writeICHLR14, writeICHLR15,
}

var lrCount int

// LRCount returns the number of implemented list registers, probing
// ICH_VTR_EL2 on first call and caching the result since it cannot change at
// runtime.
func LRCount() int {
	if lrCount == 0 {
		n := int(readICHVTR()&0xf) + 1
		if n > VGICCapacity {
			n = VGICCapacity
		}
		lrCount = n
	}
	return lrCount
}

// VGICState captures the virtual interface state a VCPU needs preserved
// across a world switch: the implemented list registers, the virtual
// machine control register and the Group 0 active priorities register.
type VGICState struct {
	LR   [VGICCapacity]uint64
	VMCR uint64
	AP0R uint64
}

// SaveVGIC captures the current virtual interface state.
func SaveVGIC(s *VGICState) {
	n := LRCount()

	for i := 0; i < n; i++ {
		s.LR[i] = readLR[i]()
	}

	s.VMCR = readICHVMCR()
	s.AP0R = readICHAP0R0()
}

// RestoreVGIC installs a previously captured virtual interface state.
func RestoreVGIC(s *VGICState) {
	n := LRCount()

	for i := 0; i < n; i++ {
		writeLR[i](s.LR[i])
	}

	writeICHVMCR(s.VMCR)
	writeICHAP0R0(s.AP0R)
}
