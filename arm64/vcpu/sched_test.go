// https://github.com/tamago-hv/armhv
//
// Copyright (c) The Project Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package vcpu

import "testing"

func TestSchedulerRegisterIsIdempotent(t *testing.T) {
	var s Scheduler
	var a, b VCPU

	s.Register(&a)
	s.Register(&a)
	s.Register(&b)

	if s.length != 2 {
		t.Fatalf("length = %d, want 2", s.length)
	}
}

func TestSchedulerSetCurrentFindsRegisteredSlot(t *testing.T) {
	var s Scheduler
	var a, b VCPU

	s.Register(&a)
	s.Register(&b)
	s.SetCurrent(&b)

	if s.Current() != &b {
		t.Fatalf("Current() = %v, want %v", s.Current(), &b)
	}
	if s.index != 1 {
		t.Errorf("index = %d, want 1", s.index)
	}
}

func TestSchedulerYieldRoundRobins(t *testing.T) {
	var s Scheduler
	var a, b, c VCPU

	s.Register(&a)
	s.Register(&b)
	s.Register(&c)
	s.SetCurrent(&a)

	seq := []*VCPU{s.Yield(), s.Yield(), s.Yield(), s.Yield()}
	want := []*VCPU{&b, &c, &a, &b}

	for i := range seq {
		if seq[i] != want[i] {
			t.Errorf("Yield() step %d = %v, want %v", i, seq[i], want[i])
		}
	}
}

func TestSchedulerYieldSingleSlotReturnsItself(t *testing.T) {
	var s Scheduler
	var a VCPU

	s.Register(&a)
	s.SetCurrent(&a)

	if next := s.Yield(); next != &a {
		t.Errorf("Yield() with a single slot = %v, want %v", next, &a)
	}
}

func TestSchedulerYieldEmptyReturnsNil(t *testing.T) {
	var s Scheduler

	if next := s.Yield(); next != nil {
		t.Errorf("Yield() on empty scheduler = %v, want nil", next)
	}
}
