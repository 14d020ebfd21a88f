// https://github.com/tamago-hv/armhv
//
// Copyright (c) The Project Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package console implements a driver for the ARM PL011 UART, used for
// every hypervisor diagnostic: exception banners, scheduler trace lines and
// guest task reports all go through it rather than through fmt, since fmt's
// allocation and formatting machinery is not something the hypervisor can
// rely on before its own runtime is fully up.
package console

import "github.com/tamago-hv/armhv/internal/reg"

// PL011 register offsets (ARM PrimeCell UART (PL011) Technical Reference
// Manual).
const (
	regDR   = 0x00
	regFR   = 0x18
	regIBRD = 0x24
	regFBRD = 0x28
	regLCRH = 0x2c
	regCR   = 0x30
	regIMSC = 0x38
	regICR  = 0x44

	frTXFF = 1 << 5

	crUARTEN = 1 << 0
	crTXE    = 1 << 8

	lcrhFEN  = 1 << 4
	lcrhWLEN = 3 << 5 // 8 bits
)

// UART represents a PL011 instance.
type UART struct {
	Base uint32
}

// Default is the console used by every EL2 diagnostic path. Board packages
// point it at the platform's UART during boot.
var Default UART

// Init configures the UART for 115200 8N1 with the FIFO enabled, assuming a
// 24 MHz reference clock (QEMU virt's PL011 clock-frequency default).
func (u *UART) Init() {
	reg.Write(u.Base+regCR, 0)
	reg.Write(u.Base+regICR, 0x7ff)

	// 24000000 / (16 * 115200) = 13.02 -> IBRD=13, FBRD=round(0.02*64)=1
	reg.Write(u.Base+regIBRD, 13)
	reg.Write(u.Base+regFBRD, 1)

	reg.Write(u.Base+regLCRH, lcrhFEN|lcrhWLEN)
	reg.Write(u.Base+regCR, crUARTEN|crTXE)
}

func (u *UART) putc(c byte) {
	for reg.Get(u.Base+regFR, 5, 1) != 0 {
	}

	if c == '\n' {
		u.putc('\r')
	}

	reg.Write(u.Base+regDR, uint32(c))
}

// WriteString writes s to the UART, busy-waiting on the transmit FIFO.
func (u *UART) WriteString(s string) {
	for i := 0; i < len(s); i++ {
		u.putc(s[i])
	}
}

const hexDigits = "0123456789abcdef"

// WriteHex64 writes v as a "0x" prefixed, zero-padded 16 hex digit string.
func (u *UART) WriteHex64(v uint64) {
	u.WriteString("0x")

	for shift := 60; shift >= 0; shift -= 4 {
		u.putc(hexDigits[(v>>uint(shift))&0xf])
	}
}
