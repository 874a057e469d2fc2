/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

// cmac.go implements CMAC/OMAC1 (NIST SP 800-38B) over an arbitrary
// crypto/cipher.Block. golang.org/x/crypto has no CMAC package, and
// Krypton's EAX and SIV modes both need one internally (EAX needs a
// streaming variant, since its ciphertext MAC accumulates across many
// encrypt()/decrypt() calls); this is the justified standard-library
// component of the cipher package.
package cipher

import "crypto/cipher"

const (
	rb128 = 0x87
	rb64  = 0x1b
)

// cmacState is a streaming CMAC accumulator. Callers feed it bytes
// with Write and read the finalized tag with Sum; Sum reads the
// pending tail block without altering the accumulator's state.
type cmacState struct {
	block   cipher.Block
	bs      int
	k1, k2  []byte
	chain   []byte
	pending []byte
}

func newCMACState(block cipher.Block) *cmacState {
	bs := block.BlockSize()
	k1, k2 := cmacSubkeys(block)
	return &cmacState{block: block, bs: bs, k1: k1, k2: k2, chain: make([]byte, bs)}
}

func (s *cmacState) Write(p []byte) {
	s.pending = append(s.pending, p...)
	for len(s.pending) > s.bs {
		s.foldBlock(s.pending[:s.bs])
		s.pending = s.pending[s.bs:]
	}
}

func (s *cmacState) foldBlock(block []byte) {
	x := xorBytes(s.chain, block)
	s.block.Encrypt(s.chain, x)
}

func (s *cmacState) Sum() []byte {
	var last []byte
	if len(s.pending) == s.bs {
		last = xorBytes(s.pending, s.k1)
	} else {
		last = xorBytes(padCMAC(s.pending, s.bs), s.k2)
	}
	x := xorBytes(s.chain, last)
	out := make([]byte, s.bs)
	s.block.Encrypt(out, x)
	return out
}

// cmacSum is a one-shot convenience wrapper around cmacState.
func cmacSum(block cipher.Block, data []byte) []byte {
	s := newCMACState(block)
	s.Write(data)
	return s.Sum()
}

// cmacSubkeys derives CMAC's two subkeys from block per SP 800-38B.
func cmacSubkeys(block cipher.Block) (k1, k2 []byte) {
	bs := block.BlockSize()
	zero := make([]byte, bs)
	l := make([]byte, bs)
	block.Encrypt(l, zero)
	k1 = gfDouble(l)
	k2 = gfDouble(k1)
	return k1, k2
}

// gfDouble doubles a block-size value in GF(2^128) (or GF(2^64) for a
// 64-bit block cipher), the "dbl" operation CMAC and S2V both use.
func gfDouble(in []byte) []byte {
	n := len(in)
	out := make([]byte, n)
	var carry byte
	msb := in[0]&0x80 != 0
	for i := n - 1; i >= 0; i-- {
		out[i] = (in[i] << 1) | carry
		carry = in[i] >> 7
	}
	if msb {
		if n == 8 {
			out[n-1] ^= rb64
		} else {
			out[n-1] ^= rb128
		}
	}
	return out
}

// padCMAC pads p with a single 0x80 byte followed by zeros up to bs,
// the "10*" padding CMAC uses for a non-full final block.
func padCMAC(p []byte, bs int) []byte {
	out := make([]byte, bs)
	copy(out, p)
	out[len(p)] = 0x80
	return out
}

func xorBytes(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}
