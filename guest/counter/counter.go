// https://github.com/tamago-hv/armhv
//
// Copyright (c) The Project Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package counter implements the reference counter guest: a tiny EL1 image
// that samples the virtualized counter on every iteration, records its
// isolation-test telemetry (current exception level, stack pointer,
// private region address) to the shared diagnostic slots, and yields with
// WFI between iterations. It runs with no Go runtime underneath it, so
// Entry is pure assembly rather than a callable Go function: the board
// package only ever takes its address, never calls it.
package counter

// defined in counter.s
func Entry()
