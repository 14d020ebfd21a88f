// https://github.com/tamago-hv/armhv
//
// Copyright (c) The Project Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package vcpu

import "testing"

func TestDefaultBootManifestIsArchitecturalReset(t *testing.T) {
	m := DefaultBootManifest()
	if m != (BootManifest{}) {
		t.Errorf("DefaultBootManifest() = %+v, want zero value", m)
	}
}

func TestInitSlotSeedsEntryStackAndID(t *testing.T) {
	var v VCPU

	const (
		id    = 1
		entry = 0x40010000
		sp    = 0x40020000
		vttbr = 0x1_00000000
	)

	InitSlot(&v, id, entry, sp, vttbr, DefaultBootManifest())

	if v.ID != id {
		t.Errorf("ID = %d, want %d", v.ID, id)
	}
	if v.Arch.TF.ELR != entry {
		t.Errorf("ELR = %#x, want %#x", v.Arch.TF.ELR, uint64(entry))
	}
	if v.Arch.TF.SP != sp {
		t.Errorf("SP = %#x, want %#x", v.Arch.TF.SP, uint64(sp))
	}
	if v.Arch.VTTBR != vttbr {
		t.Errorf("VTTBR = %#x, want %#x", v.Arch.VTTBR, uint64(vttbr))
	}
	if v.Arch.TF.Regs[0] != uint64(id) {
		t.Errorf("Regs[0] = %#x, want guest ID %#x", v.Arch.TF.Regs[0], uint64(id))
	}
}

func TestInitSlotSPSRSelectsEL1hWithInterruptsMasked(t *testing.T) {
	var v VCPU
	InitSlot(&v, 0, 0, 0, 0, DefaultBootManifest())

	const (
		spsrEL1h = 0x5
		spsrDAIF = 0xf << 6
	)

	if v.Arch.TF.SPSR != spsrEL1h|spsrDAIF {
		t.Errorf("SPSR = %#x, want %#x", v.Arch.TF.SPSR, uint64(spsrEL1h|spsrDAIF))
	}
}

func TestInitSlotAppliesManifest(t *testing.T) {
	var v VCPU
	manifest := BootManifest{
		TTBR0:   0x1000,
		TTBR1:   0x2000,
		TCR:     0x3000,
		SCTLR:   0x4000,
		TPIDR:   0x5000,
		CNTKCTL: 0x6000,
	}

	InitSlot(&v, 0, 0, 0, 0, manifest)

	tf := v.Arch.TF
	if tf.TTBR0 != manifest.TTBR0 || tf.TTBR1 != manifest.TTBR1 || tf.TCR != manifest.TCR ||
		tf.SCTLR != manifest.SCTLR || tf.TPIDR != manifest.TPIDR || tf.CNTKCTL != manifest.CNTKCTL {
		t.Errorf("trapframe manifest fields = %+v, want manifest %+v", tf, manifest)
	}
}

func TestInitSlotResetsPriorState(t *testing.T) {
	var v VCPU
	v.Arch.TF.Regs[3] = 0xdead
	v.RequestYield = true

	InitSlot(&v, 0, 0, 0, 0, DefaultBootManifest())

	if v.Arch.TF.Regs[3] != 0 {
		t.Errorf("Regs[3] = %#x, want 0 after re-init", v.Arch.TF.Regs[3])
	}
	if v.RequestYield {
		t.Errorf("RequestYield = true, want false after re-init")
	}
}
