// https://github.com/tamago-hv/armhv
//
// Copyright (c) The Project Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package vcpu

import "github.com/tamago-hv/armhv/fatal"

// SchedMax bounds the scheduler ring. A Type-1 hypervisor this small has no
// use for a growable run queue: every slot is wired up once at boot.
const SchedMax = 8

// Scheduler is a fixed-capacity round-robin run queue over VCPU slots.
type Scheduler struct {
	runqueue [SchedMax]*VCPU
	length   int
	index    int
	current  *VCPU
}

func (s *Scheduler) findSlot(v *VCPU) int {
	for i := 0; i < s.length; i++ {
		if s.runqueue[i] == v {
			return i
		}
	}
	return -1
}

// Register adds a VCPU to the run queue. The first VCPU ever registered is
// adopted as current, so a scheduler with one slot is already runnable
// without a separate SetCurrent call.
func (s *Scheduler) Register(v *VCPU) {
	if s.length >= SchedMax {
		fatal.Halt("scheduler: run queue full")
	}
	if s.findSlot(v) >= 0 {
		return
	}

	s.runqueue[s.length] = v
	s.length++

	if s.current == nil {
		s.index = s.length - 1
		s.current = v
	}
}

// SetCurrent forces the currently running slot, used at boot to pick the
// first VCPU to run before any yield has occurred. v is registered first if
// it isn't already.
func (s *Scheduler) SetCurrent(v *VCPU) {
	if s.findSlot(v) < 0 {
		s.Register(v)
	}

	s.index = s.findSlot(v)
	s.current = v
}

// Current returns the presently scheduled VCPU.
func (s *Scheduler) Current() *VCPU {
	return s.current
}

// Yield advances to the next VCPU in the ring and returns it. With a single
// registered slot it returns that same slot.
func (s *Scheduler) Yield() *VCPU {
	if s.length == 0 {
		return nil
	}

	s.index = (s.index + 1) % s.length
	s.current = s.runqueue[s.index]

	return s.current
}

// Sched is the single hypervisor-wide scheduler instance. A trap handler
// reaching a yield point (WFI/WFE) calls Sched.Yield and world-switches
// directly from the trap path; Run below only performs the very first
// entry, since eret never returns to its caller in the conventional sense,
// only back into the guest.
var Sched Scheduler

// Run world-switches into the scheduler's current VCPU and enters it. It
// does not return: WorldSwitch ends in an eret into the guest, and all
// further scheduling happens from the trap dispatcher re-entering via
// Resume after handling a yield point.
func (s *Scheduler) Run() {
	WorldSwitch(nil, s.Current())
}
