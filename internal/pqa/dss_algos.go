/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

package pqa

import (
	"github.com/cloudflare/circl/sign/dilithium/mode2"
	"github.com/cloudflare/circl/sign/dilithium/mode3"
	"github.com/cloudflare/circl/sign/dilithium/mode5"
)

// MLDSA44 is the FIPS 204 ML-DSA-44 signature scheme (Dilithium mode 2).
func MLDSA44() *DSS { return newDSS("ML-DSA-44", mode2.Scheme()) }

// MLDSA65 is the FIPS 204 ML-DSA-65 signature scheme (Dilithium mode 3).
func MLDSA65() *DSS { return newDSS("ML-DSA-65", mode3.Scheme()) }

// MLDSA87 is the FIPS 204 ML-DSA-87 signature scheme (Dilithium mode 5).
func MLDSA87() *DSS { return newDSS("ML-DSA-87", mode5.Scheme()) }
