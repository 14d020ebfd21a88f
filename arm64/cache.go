// https://github.com/tamago-hv/armhv
//
// Copyright (c) The Project Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package arm64

// defined in cache.s
func cache_enable()
func cache_disable()
func flush_tlb()

// EnableCache activates the ARM instruction and data caches.
func (cpu *CPU) EnableCache() {
	cache_enable()
}

// DisableCache disables the ARM instruction and data caches.
func (cpu *CPU) DisableCache() {
	cache_disable()
}

// FlushTLBs flushes the Stage-1 EL2 Translation Lookaside Buffer. Stage-2
// TLB maintenance is handled separately by the s2 package, which targets
// VMID-tagged entries via TLBI VMALLS12E1IS.
func (cpu *CPU) FlushTLBs() {
	flush_tlb()
}
