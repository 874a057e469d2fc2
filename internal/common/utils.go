/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

package common

import (
	"encoding/base64"
	"fmt"
)

// B64Encode base64-std-encodes data the way armored keys and KryptonKEM
// headers do (with padding).
func B64Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// B64Decode is the inverse of B64Encode.
func B64Decode(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}

// Ascii10 renders n as a zero-padded 10-character decimal ASCII field,
// the width used by the Krypton file header and chunk-size fields.
func Ascii10(n int) []byte {
	return []byte(fmt.Sprintf("%010d", n))
}

// Ascii4 renders n as a zero-padded 4-character decimal ASCII field,
// the width used by the KryptonKEM file-name-length field.
func Ascii4(n int) []byte {
	return []byte(fmt.Sprintf("%04d", n))
}
