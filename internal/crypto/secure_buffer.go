/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

// Package crypto holds small ambient helpers that sit between the
// secure package's raw memory primitives and quantcrypt's domain
// packages (cipher, kdf, pqa): a mlock-backed buffer for holding a
// Krypton secret key for the lifetime of one session, and an
// error-sanitizing boundary for KryptonFile/KryptonKEM's file-facing
// entry points.
package crypto

import (
	"sync"

	"quantcrypt/secure"
)

// SecureBuffer holds a copy of sensitive key material (Krypton.New
// uses it for its secret key, which in KryptonKEM is the Argon2-derived
// key) for the lifetime of a single operation. The backing memory is
// best-effort mlock'd so it is never swapped to disk, and is zeroed
// on Destroy regardless of whether locking succeeded.
type SecureBuffer struct {
	buf    []byte
	mu     sync.Mutex
	zeroed bool
	unlock func()
}

// NewSecureBufferFromBytes copies b into a SecureBuffer and attempts
// to lock the copy's memory (best effort: mlock can fail under
// constrained permissions, and is a no-op on Windows).
func NewSecureBufferFromBytes(b []byte) *SecureBuffer {
	buf := make([]byte, len(b))
	copy(buf, b)

	unlock := func() {}
	if err := secure.LockMemory(buf); err == nil {
		unlock = func() {
			_ = secure.UnlockMemory(buf)
		}
	}

	return &SecureBuffer{buf: buf, unlock: unlock}
}

// Data returns the buffer's current contents. The returned slice
// aliases the SecureBuffer's internal storage; it is invalidated by
// Destroy.
func (s *SecureBuffer) Data() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf
}

// Destroy zeroes the buffer, unlocks its memory, and marks it
// destroyed. Safe to call more than once.
func (s *SecureBuffer) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.zeroed {
		secure.Zero(s.buf)
		s.zeroed = true
		if s.unlock != nil {
			s.unlock()
		}
	}
}
