/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

package cipher

import "quantcrypt/internal/common"

// StateError is returned when a Krypton method is called while the
// cipher is in the wrong typestate (e.g. encrypt before
// BeginEncryption, or BeginEncryption twice in a row).
type StateError struct{ *common.Error }

func newStateError() *StateError {
	return &StateError{common.New("Krypton", "cannot call this method in the current cipher state", nil)}
}

// VerifyError is returned when the verification data packet or the
// data-AEAD tag fails to authenticate.
type VerifyError struct{ *common.Error }

func newVerifyError() *VerifyError {
	return &VerifyError{common.New("Krypton", "cannot verify the decrypted data with the provided digest", nil)}
}

// ChunkSizeError is returned when a plaintext or ciphertext chunk
// does not match the cipher's configured chunk size.
type ChunkSizeError struct{ *common.Error }

func newChunkSizeError() *ChunkSizeError {
	return &ChunkSizeError{common.New("Krypton", "data is larger than the allowed chunk size", nil)}
}

// PaddingError is returned when decrypted plaintext fails to unpad
// under the ISO/IEC 7816-4 scheme, meaning the chunk was corrupted.
type PaddingError struct{ *common.Error }

func newPaddingError() *PaddingError {
	return &PaddingError{common.New("Krypton", "the padding of the decrypted plaintext is incorrect", nil)}
}
