// https://github.com/tamago-hv/armhv
//
// Copyright (c) The Project Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package vcpu

import "unsafe"

// FuncEntry returns the code address of a guest entry function. Guest
// entry points (see guest/counter, guest/memwalk) are plain assembly
// routines exposed as argumentless Go funcs purely so their address can be
// taken this way; they are never called as Go functions, only eret'd into.
func FuncEntry(fn func()) uint64 {
	return **(**uint64)(unsafe.Pointer(&fn))
}
