// https://github.com/tamago-hv/armhv
//
// Copyright (c) The Project Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package arm64

import (
	_ "unsafe"
)

// Init takes care of the lower level initialization triggered before runtime
// setup (pre World start). Stage-1 EL2 translation is brought up later, from
// board boot code, since building it needs the console wired up first for
// diagnostics and needs the linker-provided section boundaries that are only
// meaningful once the board package's own init has run.
//
//go:linkname Init runtime/goos.Hwinit0
func Init() {
	fp_enable()
}
