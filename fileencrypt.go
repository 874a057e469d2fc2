/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

// Package quantcrypt provides post-quantum key encapsulation and
// signatures, password-based key derivation, and a streaming
// authenticated file cipher built on top of them.
//
// # Features
//
//   - ML-KEM (512/768/1024) and ML-DSA (44/65/87) via circl, with a
//     PEM-like armored key format
//   - KKDF, a KMAC256-based key derivation function for deriving
//     multiple subkeys from one secret
//   - Argon2id password hashing and key derivation, with an optional
//     zxcvbn strength gate
//   - Krypton, a streaming authenticated cipher combining a cSHAKE256
//     keystream with AES-256-EAX and AES-256-SIV
//   - KryptonFile and KryptonKEM: chunked file encryption keyed
//     directly or through a post-quantum KEM handshake
//
// # Basic Usage
//
// Encrypt and decrypt a file directly under a KEM key pair:
//
//	import (
//	    "context"
//	    "quantcrypt"
//	)
//
//	kem := quantcrypt.MLKEM768()
//	pk, sk, _ := kem.Keygen()
//	defer quantcrypt.ZeroKey(sk)
//
//	kk := quantcrypt.NewKryptonKEM(kem, nil, nil, nil, nil)
//	ctx := context.Background()
//	_ = kk.Encrypt(ctx, pk, "document.pdf", "document.pdf.kptn")
//	_ = kk.DecryptToFile(ctx, sk, "document.pdf.kptn", "document.pdf")
//
// # Password-Based Key Derivation
//
// Derive a Krypton secret key from a password with Argon2id:
//
//	password := []byte("a very long and unique passphrase")
//	result, _ := quantcrypt.DeriveKey(string(password), "", 0, nil)
//	defer quantcrypt.ZeroKey(result.SecretKey)
//
//	// result.PublicSalt travels alongside the encrypted file.
//
// # Security Considerations
//
// Key Management:
//   - Always use crypto/rand for key generation (every constructor here does)
//   - Always call ZeroKey on raw key material once you are done with it
//   - Store secret keys securely (HSM, KMS, encrypted storage)
//
// Passwords:
//   - Prefer DeriveHash for storing password verifiers and DeriveKey for
//     deriving symmetric keys; the two use different crack-time models
//   - Generate unique, random salts (store with the encrypted file)
//
// File Handling:
//   - Validate decrypted data before use
//   - Treat every *VerifyError and *StateError as a sign of tampering or
//     misuse, not a transient failure
package quantcrypt

import (
	"context"

	"quantcrypt/internal/cipher"
	"quantcrypt/internal/kdf"
	"quantcrypt/internal/pqa"
	"quantcrypt/secure"
)

// KEM wraps a post-quantum key-encapsulation mechanism: key
// generation, encapsulation, decapsulation, and armored key I/O.
type KEM = pqa.KEM

// KEM algorithms (DOMAIN STACK: github.com/cloudflare/circl).
var (
	MLKEM512  = pqa.MLKEM512
	MLKEM768  = pqa.MLKEM768
	MLKEM1024 = pqa.MLKEM1024
)

// DSS wraps a post-quantum digital signature scheme: key generation,
// signing, verification, and armored key I/O.
type DSS = pqa.DSS

// DSS algorithms (DOMAIN STACK: github.com/cloudflare/circl).
var (
	MLDSA44 = pqa.MLDSA44
	MLDSA65 = pqa.MLDSA65
	MLDSA87 = pqa.MLDSA87
)

// KKDF derives numKeys subkeys of keyLen bytes each from master, using
// KMAC256 as the underlying PRF.
func KKDF(master []byte, keyLen, numKeys int, salt, context []byte) ([][]byte, error) {
	return kdf.KKDF(master, keyLen, numKeys, salt, context)
}

// Params configures an Argon2id operation (memory cost, time cost,
// parallelism, output length, salt length).
type Params = kdf.Params

// MemCostMB builds an Argon2 memory cost from a megabyte value in
// {32,64,128,256,512}.
func MemCostMB(mb int) (uint32, error) { return kdf.MemCostMB(mb) }

// MemCostGB builds an Argon2 memory cost from a gigabyte value in [1,8].
func MemCostGB(gb int) (uint32, error) { return kdf.MemCostGB(gb) }

// DefaultHashParams returns the parameters DeriveHash uses when none
// are supplied explicitly.
func DefaultHashParams() Params { return kdf.DefaultHashParams() }

// DefaultKeyParams returns the parameters DeriveKey uses when none are
// supplied explicitly.
func DefaultKeyParams() Params { return kdf.DefaultKeyParams() }

// HashResult is the outcome of a DeriveHash call: a PHC-formatted
// Argon2id password verifier, ready to persist and later re-verify
// against.
type HashResult = kdf.HashResult

// DeriveHash hashes password for storage as an authentication
// verifier, or, when verifHash is non-empty, checks password against
// it. minYears gates fresh-hash password strength against an online,
// rate-throttled attacker model (zero disables the gate); params
// overrides DefaultHashParams.
func DeriveHash(password, verifHash string, minYears int, params *Params) (*HashResult, error) {
	return kdf.Hash(password, verifHash, minYears, params)
}

// KeyResult is the outcome of a DeriveKey or DeriveKeyRawSalt call: a
// raw symmetric key and the salt used to derive it.
type KeyResult = kdf.KeyResult

// DeriveKey derives a symmetric secret key from password using
// Argon2id. When publicSalt is empty a fresh random salt is generated
// and minYears gates password strength against an offline, unthrottled
// attacker model (zero disables the gate); otherwise publicSalt
// (base64-std-encoded) is reused to rederive the same key. params
// overrides DefaultKeyParams.
func DeriveKey(password, publicSalt string, minYears int, params *Params) (*KeyResult, error) {
	return kdf.Key(password, publicSalt, minYears, params)
}

// DeriveKeyRawSalt is DeriveKey's raw-bytes counterpart for deriving a
// symmetric key directly from a non-textual secret, such as a KEM
// shared secret, rather than a human password.
func DeriveKeyRawSalt(secret, salt []byte, params *Params) (*KeyResult, error) {
	return kdf.KeyRawSalt(secret, salt, params)
}

// ChunkSize is the plaintext chunk size Krypton pads fixed-size chunks
// to.
type ChunkSize = cipher.ChunkSize

// ChunkSizeKB builds a ChunkSize from a kilobyte value in
// {1,2,4,8,16,32,64,128,256}.
func ChunkSizeKB(kb int) (ChunkSize, error) { return cipher.ChunkSizeKB(kb) }

// ChunkSizeMB builds a ChunkSize from a megabyte value in [1,10].
func ChunkSizeMB(mb int) (ChunkSize, error) { return cipher.ChunkSizeMB(mb) }

// Krypton is a single streaming authenticated cipher session.
type Krypton = cipher.Krypton

// NewKrypton creates a Krypton session keyed by a 64-byte secret key.
func NewKrypton(secretKey, context []byte, chunkSize *ChunkSize) (*Krypton, error) {
	return cipher.New(secretKey, context, chunkSize)
}

// KryptonFileCallback is invoked once per processed chunk.
type KryptonFileCallback = cipher.KryptonFileCallback

// DecryptedFileData is the result of decrypting a KryptonFile:
// plaintext (when decrypted into memory) and the associated header.
type DecryptedFileData = cipher.DecryptedFileData

// KryptonFile chunks a single Krypton session across files of
// arbitrary size.
type KryptonFile = cipher.KryptonFile

// NewKryptonFile creates a KryptonFile bound to a 64-byte secret key.
func NewKryptonFile(secretKey, context []byte, chunkSize *ChunkSize, callback KryptonFileCallback) *KryptonFile {
	return cipher.NewKryptonFile(secretKey, context, chunkSize, callback)
}

// ReadFileHeader reads a KryptonFile-encrypted file's associated-data
// header without performing any cryptographic operation.
func ReadFileHeader(ciphertextPath string) ([]byte, error) {
	return cipher.ReadFileHeader(ciphertextPath)
}

// KryptonKEM composes a post-quantum KEM handshake, Argon2 key
// stretching, and KryptonFile into self-contained encrypted files.
type KryptonKEM = cipher.KryptonKEM

// NewKryptonKEM creates a KryptonKEM bound to kem. kdfParams overrides
// the Argon2.Key security parameters used to stretch kem's shared
// secret into a Krypton secret key; pass nil for KryptonKEM's own
// default (~1 GiB memory, 8 threads, 1 pass).
func NewKryptonKEM(kem *KEM, kdfParams *Params, context []byte, callback KryptonFileCallback, chunkSize *ChunkSize) *KryptonKEM {
	return cipher.NewKryptonKEM(kem, kdfParams, context, callback, chunkSize)
}

// EncryptFile encrypts dataFile for publicKey's holder using kk,
// writing the self-contained result to outputFile (or, when empty,
// next to dataFile with a ".kptn" extension).
func EncryptFile(ctx context.Context, kk *KryptonKEM, publicKey []byte, dataFile, outputFile string) error {
	return kk.Encrypt(ctx, publicKey, dataFile, outputFile)
}

// DecryptFile decrypts a KryptonKEM-encrypted file using secretKey.
func DecryptFile(ctx context.Context, kk *KryptonKEM, secretKey []byte, encryptedFile, outputFile string) error {
	return kk.DecryptToFile(ctx, secretKey, encryptedFile, outputFile)
}

// ZeroKey securely zeroes a key slice. Always defer ZeroKey(key) after
// generating or deriving key material.
var ZeroKey = secure.Zero
