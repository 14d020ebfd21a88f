// https://github.com/tamago-hv/armhv
//
// Copyright (c) The Project Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package s2

import (
	"testing"

	"github.com/tamago-hv/armhv/arm64/mmu/attrs"
)

func leafDescriptor(ipa uint64) uint64 {
	l1Idx := int((ipa >> l1Shift) & idxMask)
	l2Idx := int((ipa >> l2Shift) & idxMask)
	l3Idx := int((ipa >> l3Shift) & idxMask)

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

func TestMapPageReadWrite(t *testing.T) {
	Reset()

	const ipa, pa = 0x40000000, 0x40000000
	MapPage(ipa, pa, true, true, true)

	desc := leafDescriptor(ipa)
	if desc&attrs.S2DescPage != attrs.S2DescPage {
		t.Fatalf("leaf descriptor not valid+page: %#x", desc)
	}
	if desc&^uint64(0xfff) != pa {
		t.Errorf("leaf descriptor physical address = %#x, want %#x", desc&^uint64(0xfff), uint64(pa))
	}
	if desc&attrs.S2APR == 0 {
		t.Errorf("descriptor missing read permission")
	}
	if desc&attrs.S2APW == 0 {
		t.Errorf("descriptor missing write permission")
	}
	if desc&attrs.S2XN != 0 {
		t.Errorf("descriptor marked non-executable, want executable")
	}
}

func TestMapPageReadOnlyNonExecutable(t *testing.T) {
	Reset()

	const ipa, pa = 0x50000000, 0x50000000
	MapPage(ipa, pa, true, false, false)

	desc := leafDescriptor(ipa)
	if desc&attrs.S2APR == 0 {
		t.Errorf("descriptor missing read permission")
	}
	if desc&attrs.S2APW != 0 {
		t.Errorf("descriptor has write permission, want none")
	}
	if desc&attrs.S2XN == 0 {
		t.Errorf("descriptor not marked non-executable")
	}
}

func TestMapIdentityRangeAlignsOutward(t *testing.T) {
	Reset()

	const base, size = 0x40000800, 0x1800 // unaligned start, spans 2 pages once aligned outward
	MapIdentityRange(base, size, true, true, true)

	start := base &^ uint64(0xfff)
	end := (base + size + 0xfff) &^ uint64(0xfff)

	count := 0
	for addr := start; addr < end; addr += 0x1000 {
		desc := leafDescriptor(addr)
		if desc&attrs.S2DescPage != attrs.S2DescPage {
			t.Fatalf("page at %#x not mapped", addr)
		}
		if desc&^uint64(0xfff) != addr {
			t.Errorf("page at %#x maps to %#x, want identity", addr, desc&^uint64(0xfff))
		}
		count++
	}
	if want := int((end - start) / 0x1000); count != want {
		t.Errorf("mapped %d pages, want %d", count, want)
	}
}

func TestBuildIdentityTablesSeparatesSlotsByGuardBytes(t *testing.T) {
	Reset()

	const ipaBase, vmSize = 0x40000000, 0x1000
	BuildIdentityTables(ipaBase, ipaBase, vmSize, 2, true, true, true)

	if leafDescriptor(ipaBase)&attrs.S2DescPage == 0 {
		t.Fatalf("slot 0 not mapped")
	}

	slot1 := uint64(ipaBase + vmSize + GuardBytes)
	if leafDescriptor(slot1)&attrs.S2DescPage == 0 {
		t.Fatalf("slot 1 not mapped")
	}

	for addr := uint64(ipaBase + vmSize); addr < slot1; addr += 0x1000 {
		if leafDescriptor(addr)&attrs.S2DescPage != 0 {
			t.Errorf("guard page at %#x unexpectedly mapped", addr)
		}
	}
}

func TestL1DescriptorValidityMatchesMappedRegion(t *testing.T) {
	Reset()

	const ipa = 0x40000000
	if _, valid := L1Descriptor(ipa); valid {
		t.Fatalf("L1 entry valid before any mapping exists")
	}

	MapPage(ipa, ipa, true, true, true)

	desc, valid := L1Descriptor(ipa)
	if !valid {
		t.Fatalf("L1 entry not valid after mapping")
	}
	if desc&attrs.S2DescTable != attrs.S2DescTable {
		t.Errorf("L1 descriptor not a table descriptor: %#x", desc)
	}
}
