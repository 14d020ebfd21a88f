// https://github.com/tamago-hv/armhv
//
// Copyright (c) The Project Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package s1

import (
	"testing"

	"github.com/tamago-hv/armhv/arm64/mmu/attrs"
)

func leafDescriptor(va uint64) uint64 {
	l1Idx := int((va >> l1Shift) & idxMask)
	l2Idx := int((va >> l2Shift) & idxMask)
	l3Idx := int((va >> l3Shift) & idxMask)

	l2 := l1Children[l1Idx]
	if l2 < 0 {
		return 0
	}
	l3 := l2Children[l2][l2Idx]
	if l3 < 0 {
		return 0
	}
	return l3Pool[l3].entries[l3Idx]
}

func TestMapPageReadWriteExecutable(t *testing.T) {
	Reset()

	const va, pa = 0x40000000, 0x40000000
	MapPage(va, pa, attrs.Normal, false, true)

	desc := leafDescriptor(va)
	if desc&attrs.DescPage != attrs.DescPage {
		t.Fatalf("leaf descriptor not valid+page: %#x", desc)
	}
	if desc&^uint64(0xfff) != pa {
		t.Errorf("leaf descriptor physical address = %#x, want %#x", desc&^uint64(0xfff), uint64(pa))
	}
	if desc&attrs.S1RDONLY != 0 {
		t.Errorf("descriptor marked read-only, want read-write")
	}
	if desc&(attrs.S1PXN|attrs.S1UXN) != 0 {
		t.Errorf("descriptor marked non-executable, want executable")
	}
}

func TestMapPageReadOnlyNonExecutable(t *testing.T) {
	Reset()

	const va, pa = 0x09000000, 0x09000000
	MapPage(va, pa, attrs.Device, true, false)

	desc := leafDescriptor(va)
	if desc&attrs.S1RDONLY == 0 {
		t.Errorf("descriptor not read-only")
	}
	if desc&attrs.S1PXN == 0 || desc&attrs.S1UXN == 0 {
		t.Errorf("descriptor not marked non-executable: %#x", desc)
	}
	if desc&attrs.AttrIndx(attrs.Device) == 0 {
		t.Errorf("descriptor missing Device MAIR index")
	}
}

func TestMapRangeCoversEveryPage(t *testing.T) {
	Reset()

	const base, size = 0x40201000, 0x3000 // spans 3 pages once aligned outward
	MapRange(base, base, size, attrs.Normal, false, true)

	start := base &^ uint64(pageSize-1)
	end := (base + size + pageSize - 1) &^ uint64(pageSize-1)

	count := 0
	for va := start; va < end; va += pageSize {
		desc := leafDescriptor(va)
		if desc&attrs.DescPage != attrs.DescPage {
			t.Fatalf("page at %#x not mapped", va)
		}
		if desc&^uint64(0xfff) != va {
			t.Errorf("page at %#x maps to %#x, want identity", va, desc&^uint64(0xfff))
		}
		count++
	}
	if want := int((end - start) / pageSize); count != want {
		t.Errorf("mapped %d pages, want %d", count, want)
	}
}

func TestMapRangeSharesTableNodesAcrossCalls(t *testing.T) {
	Reset()

	MapPage(0x40000000, 0x40000000, attrs.Normal, false, true)
	usedL2, usedL3 := l2Used, l3Used

	// A neighboring page in the same L2/L3 table must not allocate new nodes.
	MapPage(0x40001000, 0x40001000, attrs.Normal, false, true)

	if l2Used != usedL2 {
		t.Errorf("L2 pool grew from a same-table mapping: %d -> %d", usedL2, l2Used)
	}
	if l3Used != usedL3 {
		t.Errorf("L3 pool grew from a same-table mapping: %d -> %d", usedL3, l3Used)
	}
}
