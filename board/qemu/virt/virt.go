// QEMU virt support for tamago/arm64
// https://github.com/tamago-hv/armhv
//
// Copyright (c) The Project Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package virt provides hardware initialization, automatically on import,
// for a QEMU virt machine running this hypervisor at EL2 with GICv3 and
// the ARM generic timer virtualization extensions enabled
// (`-machine virt,gic-version=3 -cpu max`).
//
// This package is only meant to be used with `GOOS=tamago GOARCH=arm64` as
// supported by the TamaGo framework for bare metal Go, see
// https://github.com/usbarmory/tamago.
package virt

import (
	"unsafe"

	"github.com/tamago-hv/armhv/arm64"
	"github.com/tamago-hv/armhv/arm64/el2entry"
	"github.com/tamago-hv/armhv/arm64/mmu/attrs"
	"github.com/tamago-hv/armhv/arm64/mmu/s1"
	"github.com/tamago-hv/armhv/arm64/mmu/s2"
	"github.com/tamago-hv/armhv/arm64/vcpu"
	"github.com/tamago-hv/armhv/console"
	"github.com/tamago-hv/armhv/fatal"
	"github.com/tamago-hv/armhv/guest/counter"
	"github.com/tamago-hv/armhv/guest/layout"
	"github.com/tamago-hv/armhv/guest/memwalk"
)

const (
	// UART0Base is QEMU virt's PL011 base address.
	UART0Base = 0x09000000
	uart0Size = 0x1000

	// RAMBase is QEMU virt's RAM origin.
	RAMBase = 0x40000000
	// RAMSize must match (or stay under) the `-m` size the machine was
	// started with; the Stage-2 identity window below assumes the full
	// range is usable.
	RAMSize = 0x40000000 // 1GB

	// cntfrq is QEMU virt's default generic timer frequency with TCG.
	cntfrq = 62500000
)

// Peripheral instances
var (
	// AArch64 is the EL2-resident CPU instance the hypervisor runs on.
	AArch64 = &arm64.CPU{TimerMultiplier: 1}

	// UART0 is the console every diagnostic path writes through.
	UART0 = &console.Default
)

func init() {
	UART0.Base = UART0Base
}

// Init takes care of the lower level initialization triggered early in
// runtime setup (post World start).
//
//go:linkname Init runtime.hwinit1
func Init() {
	AArch64.Init()
	AArch64.InitGenericTimers(0, cntfrq)

	UART0.Init()

	fatal.WaitInterrupt = AArch64.WaitInterrupt
}

func init() {
	buildStage1()
	s1.Enable()

	buildStage2()
	s2.ProgramAndEnable()

	bootGuests()
}

// etext marks the end of the hypervisor's own compiled code; the linker
// resolves it, giving buildStage1 a real boundary to split Stage-1
// permissions on without the Go program reading its own linker script.
//
//go:linkname etext runtime.etext
var etext struct{}

// textEnd rounds the image's end-of-text symbol up to the next page so the
// text range it bounds never spills read-write pages into it.
func textEnd() uint64 {
	const pageSize = 0x1000
	end := uint64(uintptr(unsafe.Pointer(&etext)))
	return (end + pageSize - 1) &^ (pageSize - 1)
}

// buildStage1 maps the memory the hypervisor itself needs, split at
// textEnd: code read-only and executable, everything else (rodata, data,
// bss, stack and heap) read-write and non-executable. tamago/Go does not
// expose the finer-grained rodata/data/bss boundaries a hand-written
// linker script would (see DESIGN.md), so the split stops at text vs.
// everything-else rather than the reference design's four-way split; the
// page straddling etext is rounded into the text side so no executable
// page is ever left writable.
func buildStage1() {
	end := textEnd()
	if end < RAMBase {
		end = RAMBase
	} else if end > RAMBase+RAMSize {
		end = RAMBase + RAMSize
	}

	s1.MapRange(RAMBase, RAMBase, end-RAMBase, attrs.Normal, true, true)

	if rest := RAMBase + RAMSize - end; rest > 0 {
		s1.MapRange(end, end, rest, attrs.Normal, false, false)
	}

	s1.MapRange(UART0Base, UART0Base, uart0Size, attrs.Device, false, false)
}

// buildStage2 lays out a single guest VM slot spanning the whole identity
// window, matching the reference boot sequence's single-VM, two-VCPU
// configuration: both guest kernels run inside the same guest-physical
// address space, distinguished only by their private work region and
// stack.
func buildStage2() {
	s2.BuildIdentityTables(RAMBase, RAMBase, RAMSize, 1, true, true, true)
}

var (
	counterSlot vcpu.VCPU
	memwalkSlot vcpu.VCPU
)

// bootGuests installs the EL2 exception vectors, seeds the two reference
// VCPU slots and hands control to the scheduler. It does not return.
//
// vcpu.GuestVBAR is deliberately left at its zero value: neither reference
// guest kernel installs its own EL1 exception vector table, so a fault
// inside one traps straight into EL2 as an unhandled data/instruction
// abort rather than being caught and reported to the hypervisor via HVC
// #0x63 first.
func bootGuests() {
	el2entry.InstallVectors()
	installMonitor()

	vttbr := s2.VTTBR()
	manifest := vcpu.DefaultBootManifest()

	vcpu.InitSlot(&counterSlot, 0, vcpu.FuncEntry(counter.Entry), layout.CounterStack, vttbr, manifest)
	vcpu.InitSlot(&memwalkSlot, 1, vcpu.FuncEntry(memwalk.Entry), layout.MemwalkStack, vttbr, manifest)

	vcpu.Sched.Register(&counterSlot)
	vcpu.Sched.Register(&memwalkSlot)
	vcpu.Sched.SetCurrent(&counterSlot)

	vcpu.Sched.Run()
}
