/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

package pqa

import (
	"github.com/cloudflare/circl/kem/mlkem/mlkem1024"
	"github.com/cloudflare/circl/kem/mlkem/mlkem512"
	"github.com/cloudflare/circl/kem/mlkem/mlkem768"
)

// MLKEM512 is the FIPS 203 ML-KEM-512 key encapsulation mechanism.
func MLKEM512() *KEM { return newKEM("ML-KEM-512", mlkem512.Scheme()) }

// MLKEM768 is the FIPS 203 ML-KEM-768 key encapsulation mechanism.
func MLKEM768() *KEM { return newKEM("ML-KEM-768", mlkem768.Scheme()) }

// MLKEM1024 is the FIPS 203 ML-KEM-1024 key encapsulation mechanism.
func MLKEM1024() *KEM { return newKEM("ML-KEM-1024", mlkem1024.Scheme()) }
