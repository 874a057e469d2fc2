/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

// siv.go implements AES-SIV (RFC 5297): a deterministic, nonce-misuse
// resistant AEAD. Krypton uses it to wrap its 80-byte verification
// payload under a nonce derived from the cipher's context digest
// rather than random bytes, since that payload must decrypt to the
// same plaintext every time the context repeats.
package cipher

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"
)

const sivTagSize = 16

// sivCipher is a single-key AES-SIV session. key must be exactly
// twice an AES key length (32, 48 or 64 bytes): the first half keys
// S2V/CMAC, the second half keys CTR encryption.
type sivCipher struct {
	macBlock cipher.Block
	ctrBlock cipher.Block
}

func newSIV(key []byte) (*sivCipher, error) {
	half := len(key) / 2
	macBlock, err := aes.NewCipher(key[:half])
	if err != nil {
		return nil, err
	}
	ctrBlock, err := aes.NewCipher(key[half:])
	if err != nil {
		return nil, err
	}
	return &sivCipher{macBlock: macBlock, ctrBlock: ctrBlock}, nil
}

// s2v computes the RFC 5297 S2V construction over one associated-data
// string (nonce) followed by the plaintext/ciphertext payload.
func (s *sivCipher) s2v(nonce, payload []byte) []byte {
	bs := s.macBlock.BlockSize()
	d := cmacSum(s.macBlock, make([]byte, bs))
	d = xorBytes(gfDouble(d), cmacSum(s.macBlock, nonce))

	var t []byte
	if len(payload) >= bs {
		t = xorEnd(payload, d)
	} else {
		t = xorBytes(gfDouble(d), padCMAC(payload, bs))
	}
	return cmacSum(s.macBlock, t)
}

// encryptAndDigest encrypts plaintext under a synthetic IV derived
// from nonce and plaintext itself, returning ciphertext (same length
// as plaintext) and the 16-byte detached tag (the synthetic IV).
func (s *sivCipher) encryptAndDigest(nonce, plaintext []byte) (ciphertext, tag []byte) {
	v := s.s2v(nonce, plaintext)
	ct := make([]byte, len(plaintext))
	cipher.NewCTR(s.ctrBlock, ctrIV(v)).XORKeyStream(ct, plaintext)
	return ct, v
}

// decryptAndVerify recovers plaintext from ciphertext using tag as
// the CTR IV, then recomputes S2V over the recovered plaintext and
// compares it against tag in constant time.
func (s *sivCipher) decryptAndVerify(ciphertext, tag, nonce []byte) ([]byte, bool) {
	if len(tag) != sivTagSize {
		return nil, false
	}
	pt := make([]byte, len(ciphertext))
	cipher.NewCTR(s.ctrBlock, ctrIV(tag)).XORKeyStream(pt, ciphertext)

	v := s.s2v(nonce, pt)
	if subtle.ConstantTimeCompare(v, tag) != 1 {
		return nil, false
	}
	return pt, true
}

// ctrIV zeros the top bit of the two least-significant 32-bit words of
// v (bytes 8 and 12 in RFC 5297's big-endian block numbering) before
// using the synthetic IV as a CTR counter, per RFC 5297 §2.6; this
// lets the low 64 bits of the counter be incremented with 32- or
// 64-bit arithmetic without a carry out of either word.
func ctrIV(v []byte) []byte {
	out := make([]byte, len(v))
	copy(out, v)
	out[8] &= 0x7f
	out[12] &= 0x7f
	return out
}

// xorEnd XORs d into the last len(d) bytes of p, returning a new
// slice the same length as p.
func xorEnd(p, d []byte) []byte {
	out := make([]byte, len(p))
	copy(out, p)
	offset := len(p) - len(d)
	for i, b := range d {
		out[offset+i] ^= b
	}
	return out
}
