// https://github.com/tamago-hv/armhv
//
// Copyright (c) The Project Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package exception provides the runtime-caller introspection fatal.Halt
// uses to report where an unrecoverable hypervisor condition originated.
package exception

import "runtime"

// CallerSite returns the file and line skip frames above its own caller, or
// an empty file and zero line if the runtime cannot resolve one.
func CallerSite(skip int) (file string, line int) {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "", 0
	}
	return file, line
}
