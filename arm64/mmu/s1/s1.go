// https://github.com/tamago-hv/armhv
//
// Copyright (c) The Project Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package s1 builds and enables the Stage-1 (EL2-private) VMSAv8-64
// translation tables the hypervisor itself runs under.
package s1

import (
	"unsafe"

	"github.com/tamago-hv/armhv/arm64/mmu/attrs"
	"github.com/tamago-hv/armhv/arm64/sysreg"
	"github.com/tamago-hv/armhv/fatal"
)

const (
	entries  = 512
	pageSize = 0x1000

	l1Shift = 30
	l2Shift = 21
	l3Shift = 12

	idxMask = 0x1ff
	pa48    = (1 << 48) - 1

	maxL2 = 16
	maxL3 = 64
)

type node struct {
	entries [entries]uint64
}

var (
	l1 node

	l2Pool [maxL2]node
	l3Pool [maxL3]node

	l2Used int
	l3Used int

	// l1Children and l2Children track, during construction only, which
	// pool slot backs a given table entry so repeated MapRange calls can
	// walk into an already-allocated child instead of double-allocating.
	l1Children [entries]int
	l2Children [maxL2][entries]int
)

func init() {
	resetChildren()
}

func resetChildren() {
	for i := range l1Children {
		l1Children[i] = -1
	}
	for t := range l2Children {
		for i := range l2Children[t] {
			l2Children[t][i] = -1
		}
	}
}

// Reset discards every mapping so the builder can be reused for a fresh
// layout. Not needed by the single-boot flow but kept for test isolation.
func Reset() {
	l1 = node{}
	l2Pool = [maxL2]node{}
	l3Pool = [maxL3]node{}
	l2Used = 0
	l3Used = 0
	resetChildren()
}

func allocL2() int {
	if l2Used >= maxL2 {
		fatal.Halt("s1: L2 pool exhausted")
	}
	idx := l2Used
	l2Used++
	return idx
}

func allocL3() int {
	if l3Used >= maxL3 {
		fatal.Halt("s1: L3 pool exhausted")
	}
	idx := l3Used
	l3Used++
	return idx
}

func ensureL2(l1Idx int) int {
	if c := l1Children[l1Idx]; c >= 0 {
		return c
	}

	idx := allocL2()
	l1.entries[l1Idx] = uint64(ptr(&l2Pool[idx]))&pa48 | attrs.DescTable | attrs.DescValid
	l1Children[l1Idx] = idx

	return idx
}

func ensureL3(l2Idx, l2EntryIdx int) int {
	if c := l2Children[l2Idx][l2EntryIdx]; c >= 0 {
		return c
	}

	idx := allocL3()
	l2Pool[l2Idx].entries[l2EntryIdx] = uint64(ptr(&l3Pool[idx]))&pa48 | attrs.DescTable | attrs.DescValid
	l2Children[l2Idx][l2EntryIdx] = idx

	return idx
}

func ptr(n *node) uintptr {
	return uintptr(unsafe.Pointer(n))
}

// MapPage installs a single 4 KiB mapping of va -> pa with the given MAIR
// attribute index, read-only and executable flags.
func MapPage(va, pa uint64, attrIdx int, readOnly, exec bool) {
	l1Idx := int((va >> l1Shift) & idxMask)
	l2Idx := int((va >> l2Shift) & idxMask)
	l3Idx := int((va >> l3Shift) & idxMask)

	l2 := ensureL2(l1Idx)
	l3 := ensureL3(l2, l2Idx)

	desc := (pa &^ uint64(pageSize-1)) | attrs.DescPage | attrs.AttrIndx(attrIdx) | attrs.ShInner | attrs.AF

	if readOnly {
		desc |= attrs.S1RDONLY
	}
	if !exec {
		desc |= attrs.S1PXN | attrs.S1UXN
	}

	l3Pool[l3].entries[l3Idx] = desc
}

// MapRange maps [vaStart, vaStart+size) to the matching physical range,
// aligning outward to page granularity as the reference builder does.
func MapRange(vaStart, paStart, size uint64, attrIdx int, readOnly, exec bool) {
	start := vaStart &^ uint64(pageSize-1)
	end := (vaStart + size + pageSize - 1) &^ uint64(pageSize-1)

	for va := start; va < end; va += pageSize {
		pa := paStart + (va - start)
		MapPage(va, pa, attrIdx, readOnly, exec)
	}
}

// Enable publishes the constructed tables to TTBR0_EL2, programs TCR_EL2 and
// MAIR_EL2, and turns on the Stage-1 MMU and caches in SCTLR_EL2.
func Enable() {
	sysreg.DSBISHST()

	sysreg.WriteTTBR0EL2(uint64(ptr(&l1)) & pa48)

	const (
		t0sz  = 25 // 39-bit input address space
		tg0   = 0b00 << 14
		sh0   = 0b11 << 12
		orgn0 = 0b01 << 10
		irgn0 = 0b01 << 8
		ips   = 0b101 << 16 // 48-bit PA
	)

	sysreg.WriteTCREL2(uint64(t0sz) | tg0 | sh0 | orgn0 | irgn0 | ips)
	sysreg.WriteMAIREL2(attrs.MAIREL2Value())

	sysreg.DSBISH()
	sysreg.ISB()

	const (
		sctlrM = 1 << 0
		sctlrC = 1 << 2
		sctlrI = 1 << 12
	)

	sysreg.WriteSCTLREL2(sysreg.ReadSCTLREL2() | sctlrM | sctlrC | sctlrI)
	sysreg.ISB()
}
