// https://github.com/tamago-hv/armhv
//
// Copyright (c) The Project Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package exception

import (
	"strings"
	"testing"
)

func TestCallerSiteReportsThisFile(t *testing.T) {
	file, line := CallerSite(0)
	if !strings.HasSuffix(file, "exception_test.go") {
		t.Errorf("CallerSite(0) file = %q, want suffix exception_test.go", file)
	}
	if line <= 0 {
		t.Errorf("CallerSite(0) line = %d, want > 0", line)
	}
}

func TestCallerSiteDeepSkipFailsGracefully(t *testing.T) {
	file, line := CallerSite(1 << 20)
	if file != "" || line != 0 {
		t.Errorf("CallerSite(huge) = (%q, %d), want (\"\", 0)", file, line)
	}
}
