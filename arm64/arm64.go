// Package arm64 provides EL2-resident ARMv8-A support used by the rest of
// this hypervisor: interrupt masking, the FP/cache enable sequences, the
// generic timer and the runtime's pre-World hardware init hook.
//
// This package is only meant to be used with `GOOS=tamago GOARCH=arm64` as
// supported by the TamaGo framework for bare metal Go, see
// https://github.com/usbarmory/tamago.
package arm64

import (
	"runtime"
)

// CPU represents the EL2-resident processor instance the hypervisor runs
// on. A single value is shared by every package that needs to mask
// interrupts or read the generic timer; it carries no per-guest state.
type CPU struct {
	// Timer multiplier
	TimerMultiplier float64
	// Timer offset in nanoseconds
	TimerOffset int64
}

// defined in arm64.s
func exit(int32)

// Init wires the runtime's exit hook to the architectural reset sequence.
func (cpu *CPU) Init() {
	runtime.Exit = exit
}
