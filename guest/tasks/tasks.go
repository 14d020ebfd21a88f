// https://github.com/tamago-hv/armhv
//
// Copyright (c) The Project Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package tasks defines the HVC ABI shared between a guest mini-kernel and
// the hypervisor: the task result record a guest fills in and the
// hypercall immediates it issues to report it. It is pure data layout, not
// guest code, so unlike guest/counter and guest/memwalk it is safe for EL2
// packages (see arm64/trap) to import directly.
//
// guest/counter and guest/memwalk cannot import this package themselves:
// they run at EL1 with no Go runtime underneath them, so their entry points
// are plain assembly and duplicate this layout as raw offsets rather than
// referencing TaskResult's field order. Any change here must be mirrored by
// hand in both .s files.
package tasks

// Hypercall immediates a guest may issue via HVC.
const (
	// TaskReport asks the hypervisor to log the TaskResult pointed to by x1.
	TaskReport = 0x60
	// TimeOverride asks the hypervisor to recompute the guest's virtual
	// counter offset from the desired counter value in x0, which is handed
	// back in x0.
	TimeOverride = 0x61
	// FatalReport hands the hypervisor a guest's own EL1 synchronous
	// exception (ESR_EL1 in x0, ELR_EL1 in x1) for diagnostic reporting.
	FatalReport = 0x63
)

// TaskResult is the record a guest mini-kernel fills in before issuing
// TaskReport: x1 holds a pointer to one of these in guest-physical memory,
// identity-mapped so EL2 can dereference it directly. ID/Desc/Data0/Data1
// occupy the first 56 bytes; the four timer-telemetry fields that follow
// let a guest report how its own virtual-time observations moved around a
// task, and are reported back only when at least one is nonzero. A guest
// with nothing to say about timing (counter.s) leaves them zero.
type TaskResult struct {
	ID    uint64
	Desc  [32]byte
	Data0 uint64
	Data1 uint64

	TimeBefore  uint64
	TimeAfter   uint64
	TimeTarget  uint64
	MemwalkTime uint64
}
