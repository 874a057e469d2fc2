/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

// krypton.go implements Krypton, a stateful, single-owner streaming
// authenticated cipher. A session combines a cSHAKE256 XOF keystream
// (obfuscating the plaintext), AES-256-EAX over the obfuscated
// plaintext (the data AEAD, fed the caller's header as associated
// data), and AES-256-SIV (the wrap AEAD, keyed deterministically off
// the session context) to seal a 160-byte verification data packet
// that lets the receiving side authenticate before trusting any
// decrypted chunk.
package cipher

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/sha3"

	"quantcrypt/internal/common"
	qcrypto "quantcrypt/internal/crypto"
	"quantcrypt/internal/kdf"
	"quantcrypt/secure"
)

const (
	kryptonSecretKeySize = 64
	kryptonNonceSize     = 64
	kryptonSaltSize      = 64
)

type cipherMode int

const (
	modeIdle cipherMode = iota
	modeEncrypting
	modeDecrypting
)

// Krypton is a single cipher session keyed by a 64-byte secret key. It
// moves between three typestates: Idle -> Encrypting -> Idle, or
// Idle -> Decrypting -> Idle. Calling a method outside the typestate
// it belongs to returns a *StateError instead of panicking; Go has no
// compile-time typestate without generics heavy enough to make this
// API worse to use.
type Krypton struct {
	secretKey *qcrypto.SecureBuffer
	context   []byte // SHA3-512(context || "krypton"), 64 bytes
	chunkSize *ChunkSize

	mode    cipherMode
	xof     sha3.ShakeHash
	dataAES *eaxCipher
	wrapAES *sivCipher
	nonce   []byte
	salt    []byte
	tag     []byte // data-AEAD tag pending verification, set by BeginDecryption
}

// New creates a Krypton session. secretKey must be exactly 64 bytes.
// context is optional associated data that namespaces this session's
// internal hash functions; it is not a secret. chunkSize, when
// non-nil, enables automatic ISO/IEC 7816-4 padding of every
// plaintext chunk to chunkSize.Bytes+1 bytes.
func New(secretKey, context []byte, chunkSize *ChunkSize) (*Krypton, error) {
	if len(secretKey) != kryptonSecretKeySize {
		return nil, common.NewInvalidArgsError("Krypton", "secret_key must be exactly 64 bytes")
	}
	h := sha3.New512()
	h.Write(context)
	h.Write([]byte("krypton"))
	return &Krypton{
		secretKey: qcrypto.NewSecureBufferFromBytes(secretKey),
		context:   h.Sum(nil),
		chunkSize: chunkSize,
	}, nil
}

// Destroy zeroes and unlocks the session's copy of the secret key.
// The session must not be used afterward. Callers that keep a Krypton
// around for the lifetime of a single file operation should defer
// this immediately after New succeeds.
func (k *Krypton) Destroy() {
	k.secretKey.Destroy()
}

// Flush resets the cipher's internal state without clearing the
// secret key, context or chunk size. Both FinishEncryption and a
// failed or successful FinishDecryption call this automatically.
func (k *Krypton) Flush() {
	secure.Zero(k.nonce)
	secure.Zero(k.salt)
	secure.Zero(k.tag)
	k.mode = modeIdle
	k.xof = nil
	k.dataAES = nil
	k.wrapAES = nil
	k.nonce = nil
	k.salt = nil
	k.tag = nil
}

func (k *Krypton) deriveKeys(salt []byte) ([][]byte, error) {
	return kdf.KKDF(k.secretKey.Data(), 64, 3, salt, k.context)
}

func newXOF(key, context []byte) sha3.ShakeHash {
	xof := sha3.NewCShake256(nil, context)
	xof.Write(key)
	return xof
}

// BeginEncryption prepares the session for encryption. It generates a
// random nonce and salt and derives the session's three subkeys.
// header is associated data folded into the data AEAD but never
// encrypted.
func (k *Krypton) BeginEncryption(header []byte) error {
	if k.mode != modeIdle {
		return newStateError()
	}
	nonce := make([]byte, kryptonNonceSize)
	salt := make([]byte, kryptonSaltSize)
	if _, err := rand.Read(nonce); err != nil {
		return err
	}
	if _, err := rand.Read(salt); err != nil {
		return err
	}

	keys, err := k.deriveKeys(salt)
	if err != nil {
		return err
	}
	dataAES, err := newEAX(keys[1][:32], nonce, header)
	if err != nil {
		return err
	}
	wrapAES, err := newSIV(keys[2])
	if err != nil {
		return err
	}

	k.mode = modeEncrypting
	k.nonce = nonce
	k.salt = salt
	k.xof = newXOF(keys[0], k.context)
	k.dataAES = dataAES
	k.wrapAES = wrapAES
	return nil
}

// Encrypt encrypts plaintext into ciphertext. When a chunk size was
// configured, plaintext is padded (ISO/IEC 7816-4) to chunkSize+1
// bytes first; plaintext longer than chunkSize is rejected.
func (k *Krypton) Encrypt(plaintext []byte) ([]byte, error) {
	if k.mode != modeEncrypting {
		return nil, newStateError()
	}
	if k.chunkSize != nil {
		if len(plaintext) > k.chunkSize.Bytes {
			return nil, newChunkSizeError()
		}
		plaintext = iso7816Pad(plaintext, k.chunkSize.Bytes+1)
	}
	mask := make([]byte, len(plaintext))
	if _, err := k.xof.Read(mask); err != nil {
		return nil, err
	}
	obfuscated := xorBytes(mask, plaintext)
	return k.dataAES.encrypt(obfuscated), nil
}

// FinishEncryption finalizes encryption, producing the 160-byte
// encrypted verification data packet (VDP), and resets the session.
func (k *Krypton) FinishEncryption() ([]byte, error) {
	if k.mode != modeEncrypting {
		return nil, newStateError()
	}
	salt := k.salt
	payload := append(append([]byte{}, k.nonce...), k.dataAES.digest()...) // 64 + 16 = 80 bytes
	ct, tag := k.wrapAES.encryptAndDigest(k.context, payload)

	vdp := make([]byte, 0, verificationDataPacketSize)
	vdp = append(vdp, ct...)   // 80 bytes
	vdp = append(vdp, tag...) // 16 bytes
	vdp = append(vdp, salt...) // 64 bytes
	k.Flush()
	return vdp, nil
}

// BeginDecryption prepares the session for decryption by decrypting
// and authenticating verifData (the VDP produced by FinishEncryption)
// and deriving the session's subkeys. header must match the value
// passed to BeginEncryption.
func (k *Krypton) BeginDecryption(verifData, header []byte) error {
	if k.mode != modeIdle {
		return newStateError()
	}
	if len(verifData) != verificationDataPacketSize {
		return common.NewInvalidArgsError("Krypton", "verif_data must be exactly 160 bytes")
	}
	k.mode = modeDecrypting

	ct, tag, salt := verifData[:80], verifData[80:96], verifData[96:160]
	keys, err := k.deriveKeys(salt)
	if err != nil {
		k.Flush()
		return err
	}
	wrapAES, err := newSIV(keys[2])
	if err != nil {
		k.Flush()
		return err
	}

	payload, ok := wrapAES.decryptAndVerify(ct, tag, k.context)
	if !ok {
		k.Flush()
		return newVerifyError()
	}

	nonce, dataTag := payload[:64], payload[64:]
	dataAES, err := newEAX(keys[1][:32], nonce, header)
	if err != nil {
		k.Flush()
		return err
	}

	k.wrapAES = wrapAES
	k.nonce = nonce
	k.tag = dataTag
	k.dataAES = dataAES
	k.xof = newXOF(keys[0], k.context)
	return nil
}

// Decrypt decrypts ciphertext into plaintext. When a chunk size was
// configured, ciphertext must be exactly chunkSize+1 bytes, and the
// ISO/IEC 7816-4 padding is removed from the recovered plaintext.
func (k *Krypton) Decrypt(ciphertext []byte) ([]byte, error) {
	if k.mode != modeDecrypting {
		return nil, newStateError()
	}
	if k.chunkSize != nil && len(ciphertext) != k.chunkSize.Bytes+1 {
		return nil, newChunkSizeError()
	}
	obfuscated := k.dataAES.decrypt(ciphertext)
	mask := make([]byte, len(obfuscated))
	if _, err := k.xof.Read(mask); err != nil {
		return nil, err
	}
	plaintext := xorBytes(mask, obfuscated)
	if k.chunkSize != nil {
		unpadded, err := iso7816Unpad(plaintext, k.chunkSize.Bytes+1)
		if err != nil {
			return nil, newPaddingError()
		}
		plaintext = unpadded
	}
	return plaintext, nil
}

// FinishDecryption verifies the accumulated data-AEAD tag against the
// one authenticated in BeginDecryption's verification packet, and
// resets the session either way.
func (k *Krypton) FinishDecryption() error {
	if k.mode != modeDecrypting {
		return newStateError()
	}
	ok := k.dataAES.verify(k.tag)
	k.Flush()
	if !ok {
		return newVerifyError()
	}
	return nil
}

func iso7816Pad(data []byte, size int) []byte {
	out := make([]byte, size)
	copy(out, data)
	out[len(data)] = 0x80
	return out
}

func iso7816Unpad(data []byte, size int) ([]byte, error) {
	if len(data) != size {
		return nil, fmt.Errorf("padded data has the wrong length")
	}
	i := len(data) - 1
	for i >= 0 && data[i] == 0 {
		i--
	}
	if i < 0 || data[i] != 0x80 {
		return nil, fmt.Errorf("padding marker not found")
	}
	return data[:i], nil
}
