/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

// kkdf.go implements KKDF, an HKDF-shaped key derivation function that
// replaces HMAC with KMAC256 (NIST SP 800-185) as its pseudorandom
// function. It is the key-expansion primitive Krypton uses to turn a
// 64-byte secret key and a fresh per-session salt into three
// independent subkeys.
package kdf

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"quantcrypt/internal/common"
)

const (
	kkdfDigestSize  = 64
	kkdfEntropyCap  = kkdfDigestSize * 1024 // 65536 bytes
	kkdfMinMaster   = 32
	kkdfMinKeyLen   = 32
	kkdfMaxKeyLen   = 1024
	kkdfMinNumKeys  = 1
	kkdfMaxNumKeys  = 2048
)

// KKDF derives numKeys keys of keyLen bytes each from master, a
// 64-byte extract digest computed from salt (defaulting to 64 zero
// bytes), and an expand step customized with context (defaulting to
// empty). Output is capped at 65536 bytes total; exceeding it returns
// an *OutputLimitError.
//
// The expand step's iteration counter is encoded as a 2-byte
// little-endian integer. This deviates from RFC 5869 (which uses a
// single byte) but is part of the on-disk contract Krypton depends on
// and must never change.
func KKDF(master []byte, keyLen, numKeys int, salt, context []byte) ([][]byte, error) {
	if len(master) < kkdfMinMaster {
		return nil, common.NewInvalidArgsError("KKDF", "master key must be at least 32 bytes")
	}
	if keyLen < kkdfMinKeyLen || keyLen > kkdfMaxKeyLen {
		return nil, common.NewInvalidArgsError("KKDF", "key_len must be between 32 and 1024 bytes")
	}
	if numKeys < kkdfMinNumKeys || numKeys > kkdfMaxNumKeys {
		return nil, common.NewInvalidArgsError("KKDF", "num_keys must be between 1 and 2048")
	}

	outputLen := keyLen * numKeys
	if outputLen > kkdfEntropyCap {
		return nil, newOutputLimitError(outputLen)
	}
	if salt == nil {
		salt = make([]byte, kkdfDigestSize)
	}
	if context == nil {
		context = []byte{}
	}

	// Step 1: extract.
	prk := kmac256(master, salt, nil, kkdfDigestSize)

	// Step 2: expand. The counter starts at 1 and is appended, as a
	// 2-byte little-endian integer, to the previous block before each
	// KMAC256 call.
	macs := make([]byte, 0, outputLen+kkdfDigestSize)
	var last []byte
	iter := uint16(1)
	for len(macs) < outputLen {
		var iterBytes [2]byte
		binary.LittleEndian.PutUint16(iterBytes[:], iter)
		data := make([]byte, 0, len(last)+2)
		data = append(data, last...)
		data = append(data, iterBytes[:]...)
		block := kmac256(prk, data, context, kkdfDigestSize)
		macs = append(macs, block...)
		last = block
		iter++
	}

	// Step 3: split into numKeys consecutive keyLen-byte slices.
	out := make([][]byte, numKeys)
	for i := 0; i < numKeys; i++ {
		start := i * keyLen
		key := make([]byte, keyLen)
		copy(key, macs[start:start+keyLen])
		out[i] = key
	}
	return out, nil
}

// kmac256 wraps sha3.NewKMAC256 as a one-shot MAC call.
func kmac256(key, data, custom []byte, macLen int) []byte {
	h := sha3.NewKMAC256(key, macLen, custom)
	h.Write(data)
	return h.Sum(nil)
}
