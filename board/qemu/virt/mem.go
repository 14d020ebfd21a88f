// QEMU virt support for tamago/arm64
// https://github.com/tamago-hv/armhv
//
// Copyright (c) The Project Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build !linkramsize

package virt

import (
	_ "unsafe"
)

// Applications can override ramSize with the `linkramsize` build tag.
//
// QEMU's virt machine defaults to 128MB unless started with a larger
// `-m`; the hypervisor's own Stage-2 identity window (see RAMBase/RAMSize
// in virt.go) assumes the machine was started with at least 1GB.

//go:linkname ramSize runtime/goos.RamSize
var ramSize uint32 = RAMSize
