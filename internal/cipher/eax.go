/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

// eax.go implements EAX mode (Bellare, Rogaway, Wagner) as a
// streaming AEAD: associated data is set once, then plaintext or
// ciphertext is fed through in arbitrarily many calls, and the tag is
// only computed when the caller asks for it. This matches how
// Krypton drives its data cipher (one header, many chunk-sized
// encrypt/decrypt calls, one final digest/verify) and is not
// expressible through crypto/cipher.AEAD's one-shot Seal/Open.
package cipher

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"
)

const eaxTagSize = 16

// eaxCipher is a single-key, single-nonce streaming EAX session.
type eaxCipher struct {
	ctr       cipher.Stream
	nonceMAC  []byte
	headerMAC *cmacState
	bodyMAC   *cmacState
}

// newEAX starts an EAX session under key (AES-128/192/256, selected
// by key length) with nonce (arbitrary length) and associated data
// header.
func newEAX(key, nonce, header []byte) (*eaxCipher, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	nonceMAC := omac(block, 0, nonce)
	ctr := cipher.NewCTR(block, nonceMAC)

	headerMAC := newCMACState(block)
	headerMAC.Write(omacTweakBlock(block.BlockSize(), 1))
	headerMAC.Write(header)

	bodyMAC := newCMACState(block)
	bodyMAC.Write(omacTweakBlock(block.BlockSize(), 2))

	return &eaxCipher{ctr: ctr, nonceMAC: nonceMAC, headerMAC: headerMAC, bodyMAC: bodyMAC}, nil
}

// encrypt XORs plaintext with the keystream and folds the resulting
// ciphertext into the running body MAC.
func (e *eaxCipher) encrypt(plaintext []byte) []byte {
	ct := make([]byte, len(plaintext))
	e.ctr.XORKeyStream(ct, plaintext)
	e.bodyMAC.Write(ct)
	return ct
}

// decrypt folds ciphertext into the running body MAC and XORs it with
// the keystream to recover plaintext.
func (e *eaxCipher) decrypt(ciphertext []byte) []byte {
	e.bodyMAC.Write(ciphertext)
	pt := make([]byte, len(ciphertext))
	e.ctr.XORKeyStream(pt, ciphertext)
	return pt
}

// digest finalizes and returns the 16-byte EAX authentication tag. It
// may only be called once.
func (e *eaxCipher) digest() []byte {
	h := e.headerMAC.Sum()
	c := e.bodyMAC.Sum()
	tag := make([]byte, eaxTagSize)
	for i := range tag {
		tag[i] = e.nonceMAC[i] ^ h[i] ^ c[i]
	}
	return tag
}

// verify finalizes the session and reports whether tag matches the
// accumulated digest, in constant time.
func (e *eaxCipher) verify(tag []byte) bool {
	computed := e.digest()
	return subtle.ConstantTimeCompare(computed, tag) == 1
}

// omac computes OMAC_tweak(message): CMAC with a one-block tweak
// prefix, the construction EAX uses to domain-separate its three
// internal MACs (nonce=0, header=1, ciphertext=2) under a single key.
func omac(block cipher.Block, tweak byte, message []byte) []byte {
	s := newCMACState(block)
	s.Write(omacTweakBlock(block.BlockSize(), tweak))
	s.Write(message)
	return s.Sum()
}

func omacTweakBlock(blockSize int, tweak byte) []byte {
	b := make([]byte, blockSize)
	b[blockSize-1] = tweak
	return b
}
