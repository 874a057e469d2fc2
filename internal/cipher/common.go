/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

// Package cipher implements Krypton, the streaming authenticated
// cipher at the core of quantcrypt, its chunked on-disk file framing
// (KryptonFile), and its PQ-KEM-wrapped file container (KryptonKEM).
package cipher

// DecryptedFileData is the result of a KryptonFile decryption. When
// plaintext was decrypted into memory, Plaintext holds it; when it
// was streamed straight to a file, Plaintext is nil and only the
// out-of-band Header survives in memory.
type DecryptedFileData struct {
	Plaintext []byte
	Header    []byte
}

// verificationDataPacketSize is the fixed size of Krypton's
// encrypted verification data packet: 80-byte wrapped nonce+digest
// ciphertext, 16-byte SIV tag, 64-byte salt.
const verificationDataPacketSize = 160
