// https://github.com/tamago-hv/armhv
//
// Copyright (c) The Project Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package trap

import (
	"unsafe"

	"github.com/tamago-hv/armhv/arm64"
	"github.com/tamago-hv/armhv/arm64/vcpu"
	"github.com/tamago-hv/armhv/console"
	"github.com/tamago-hv/armhv/guest/tasks"
)

func descString(b [32]byte) string {
	n := 0
	for n < len(b) && b[n] != 0 {
		n++
	}
	return string(b[:n])
}

func handleHVC(esr, elr uint64) bool {
	imm16 := esr & 0xffff

	switch imm16 {
	case tasks.TaskReport:
		return handleGuestTaskReport()
	case tasks.TimeOverride:
		return handleGuestTimeOverride()
	case tasks.FatalReport:
		handleGuestFatalReport()
		return true
	}

	return false
}

func handleGuestTaskReport() bool {
	cur := vcpu.Sched.Current()
	if cur == nil {
		return false
	}

	ptr := cur.Arch.TF.Regs[1]
	if ptr == 0 {
		return true
	}

	res := (*tasks.TaskResult)(unsafe.Pointer(uintptr(ptr)))

	console.Default.WriteString("[guest")
	console.Default.WriteString(string(rune('0' + cur.ID)))
	console.Default.WriteString("] ")
	console.Default.WriteString(descString(res.Desc))
	console.Default.WriteString(" data0=")
	console.Default.WriteHex64(res.Data0)
	console.Default.WriteString(" data1=")
	console.Default.WriteHex64(res.Data1)
	console.Default.WriteString("\n")

	if res.TimeBefore != 0 || res.TimeAfter != 0 || res.TimeTarget != 0 || res.MemwalkTime != 0 {
		console.Default.WriteString("  timers: before=")
		console.Default.WriteHex64(res.TimeBefore)
		console.Default.WriteString(" after=")
		console.Default.WriteHex64(res.TimeAfter)
		console.Default.WriteString(" target=")
		console.Default.WriteHex64(res.TimeTarget)
		console.Default.WriteString(" memwalk_time=")
		console.Default.WriteHex64(res.MemwalkTime)
		console.Default.WriteString("\n")
	}

	return true
}

func handleGuestFatalReport() {
	cur := vcpu.Sched.Current()

	console.Default.WriteString("EL2: guest synchronous exception report\n")

	if cur != nil {
		guestESR := cur.Arch.TF.Regs[0]
		guestELR := cur.Arch.TF.Regs[1]

		console.Default.WriteString("  guest ESR_EL1: ")
		console.Default.WriteHex64(guestESR)
		console.Default.WriteString("\n")
		console.Default.WriteString("  guest ELR_EL1: ")
		console.Default.WriteHex64(guestELR)
		console.Default.WriteString("\n")
	}

	var cpu arm64.CPU
	for {
		cpu.WaitInterrupt()
	}
}
