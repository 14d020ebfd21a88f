// https://github.com/tamago-hv/armhv
//
// Copyright (c) The Project Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package layout

import "testing"

func TestResultBufferIsDistinctPerGuest(t *testing.T) {
	a, b := ResultBuffer(0), ResultBuffer(1)
	if a == b {
		t.Fatalf("ResultBuffer(0) == ResultBuffer(1) == %#x", a)
	}
	if a != resultBase {
		t.Errorf("ResultBuffer(0) = %#x, want resultBase %#x", a, uint64(resultBase))
	}
}

func TestPrivateRegionIsDistinctAndBoundedByStride(t *testing.T) {
	a, b := PrivateRegion(0), PrivateRegion(1)
	if b-a != workStride {
		t.Errorf("PrivateRegion stride = %#x, want %#x", b-a, uint64(workStride))
	}
	if RegionSize() > workStride {
		t.Errorf("RegionSize() = %#x overruns the per-guest stride %#x", RegionSize(), uint64(workStride))
	}
}

func TestSharedSlotAddressesAreContiguousAndDisjointFromOtherRegions(t *testing.T) {
	for slot := uint32(0); slot < SharedSlotCount-1; slot++ {
		if SharedSlot(slot+1)-SharedSlot(slot) != sharedStride {
			t.Fatalf("slot %d stride mismatch", slot)
		}
	}

	lastShared := SharedSlot(SharedSlotCount - 1)
	if lastShared >= resultBase && lastShared < resultBase+resultStride {
		t.Errorf("shared slot range overlaps the result buffer region")
	}
}

func TestStacksDoNotOverlapPrivateRegions(t *testing.T) {
	if CounterStack >= workBase && CounterStack < workBase+2*workStride {
		t.Errorf("CounterStack overlaps the private work region window")
	}
	if MemwalkStack >= workBase && MemwalkStack < workBase+2*workStride {
		t.Errorf("MemwalkStack overlaps the private work region window")
	}
}
