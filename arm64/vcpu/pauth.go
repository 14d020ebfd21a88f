// https://github.com/tamago-hv/armhv
//
// Copyright (c) The Project Authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package vcpu

import "github.com/tamago-hv/armhv/arm64/sysreg"

// savePAuth captures the four pointer-authentication key pairs and then
// zeroes them in the live EL1 registers, so no guest key material survives
// in hardware once it has been folded into the outgoing VCPU's saved state.
func savePAuth(s *PAuthState) {
	s.APIA[0], s.APIA[1] = sysreg.ReadAPIAKeyEL1()
	s.APIB[0], s.APIB[1] = sysreg.ReadAPIBKeyEL1()
	s.APDA[0], s.APDA[1] = sysreg.ReadAPDAKeyEL1()
	s.APDB[0], s.APDB[1] = sysreg.ReadAPDBKeyEL1()

	sysreg.WriteAPIAKeyEL1(0, 0)
	sysreg.WriteAPIBKeyEL1(0, 0)
	sysreg.WriteAPDAKeyEL1(0, 0)
	sysreg.WriteAPDBKeyEL1(0, 0)

	s.Used = true
}

func restorePAuth(s *PAuthState) {
	if !s.Used {
		return
	}

	sysreg.WriteAPIAKeyEL1(s.APIA[0], s.APIA[1])
	sysreg.WriteAPIBKeyEL1(s.APIB[0], s.APIB[1])
	sysreg.WriteAPDAKeyEL1(s.APDA[0], s.APDA[1])
	sysreg.WriteAPDBKeyEL1(s.APDB[0], s.APDB[1])
}
