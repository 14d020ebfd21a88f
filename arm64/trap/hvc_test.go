// https://github.com/tamago-hv/armhv
//
// Copyright (c) The Project Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package trap

import "testing"

func TestDescStringStopsAtNUL(t *testing.T) {
	var b [32]byte
	copy(b[:], "counter")

	if got := descString(b); got != "counter" {
		t.Errorf("descString() = %q, want %q", got, "counter")
	}
}

func TestDescStringHandlesFullyPopulatedBuffer(t *testing.T) {
	var b [32]byte
	for i := range b {
		b[i] = 'a'
	}

	if got := descString(b); got != string(b[:]) {
		t.Errorf("descString() = %q, want %q", got, string(b[:]))
	}
}

func TestDescStringEmpty(t *testing.T) {
	var b [32]byte
	if got := descString(b); got != "" {
		t.Errorf("descString() = %q, want empty string", got)
	}
}
