// https://github.com/tamago-hv/armhv
//
// Copyright (c) The Project Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package layout defines the fixed guest-physical addresses the reference
// guest kernels run against: per-guest stacks, private work regions, a
// shared telemetry slot array and the scratch buffer used to hand a task
// result across the HVC boundary. Every address here falls inside the
// Stage-2 identity window the board package builds, so guest-physical and
// host-physical coincide.
package layout

const (
	// CounterStack is the initial stack pointer for the counter guest.
	CounterStack = 0x40080000
	// MemwalkStack is the initial stack pointer for the memwalk guest.
	MemwalkStack = 0x400a0000

	// resultBase holds the per-guest scratch struct a guest fills in
	// before issuing the HVC #0x60 task report.
	resultBase   = 0x400c0000
	resultStride = 0x100

	// workBase and workStride carve out each guest's private scratch
	// region, indexed by guest ID; workSize bounds the memwalk checksum
	// sweep to a handful of cache lines.
	workBase   = 0x40100000
	workStride = 0x1000
	workSize   = 0x200

	// sharedBase and sharedStride hold the diagnostic slots both
	// reference guest kernels write isolation-test values into
	// (current EL, stack pointer, checksum, ...).
	sharedBase   = 0x40120000
	sharedStride = 8

	// SharedSlotCount is the number of slots the two reference guests
	// write between them: counter claims 0-5, memwalk claims 6-11.
	SharedSlotCount = 12
)

// ResultBuffer returns the scratch address a guest uses to build the task
// report struct reported via HVC #0x60.
func ResultBuffer(guestID uint64) uint64 {
	return resultBase + guestID*resultStride
}

// PrivateRegion returns the base address of a guest's private work region.
func PrivateRegion(guestID uint64) uint64 {
	return workBase + guestID*workStride
}

// RegionSize is the usable byte length of a PrivateRegion.
func RegionSize() uint64 {
	return workSize
}

// SharedSlot returns the address of a shared telemetry slot.
func SharedSlot(slot uint32) uint64 {
	return sharedBase + uint64(slot)*sharedStride
}
