// https://github.com/tamago-hv/armhv
//
// Copyright (c) The Project Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package memwalk implements the reference memwalk guest: a tiny EL1 image
// that sweeps its private work region with a shifting XOR pattern every
// iteration, then reports the resulting checksum through the HVC #0x60
// task-report channel before yielding with WFI. Like counter, it runs with
// no Go runtime underneath it: Entry is pure assembly, and the board
// package only ever takes its address.
package memwalk

// defined in memwalk.s
func Entry()
