/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

// krypton_kem.go composes a PQ KEM handshake, Argon2.Key, and
// KryptonFile into a self-contained encrypted file: the recipient's
// KEM public key encapsulates a fresh shared secret, which Argon2.Key
// stretches into a 64-byte Krypton secret key, and the KEM ciphertext
// plus the file's original name travel in the output file's header so
// only the matching KEM secret key can ever decrypt it.
package cipher

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"

	"quantcrypt/internal/common"
	qcrypto "quantcrypt/internal/crypto"
	"quantcrypt/internal/kdf"
	"quantcrypt/internal/pqa"
)

// armorPrefix is the marker that distinguishes an armored (text) key
// from raw key bytes: PEM-like envelopes always open with
// "-----BEGIN ". Raw PQ keys never legitimately start with this
// sequence, since their first bytes are algorithm-specific key
// material, not ASCII.
const armorPrefix = "-----BEGIN "

// maybeDearmor returns key unchanged unless it looks like an armored
// envelope (spec.md §4.6 steps 1/2: "if public_key/secret_key is
// text, dearmor it"), in which case it dearmors it first via kem.
func maybeDearmor(kem *pqa.KEM, key []byte) ([]byte, error) {
	if !bytes.HasPrefix(key, []byte(armorPrefix)) {
		return key, nil
	}
	return kem.Dearmor(string(key))
}

// KryptonKEM encrypts and decrypts files for a PQ KEM key pair.
type KryptonKEM struct {
	kem       *pqa.KEM
	kdfParams *kdf.Params
	context   []byte
	callback  KryptonFileCallback
	chunkSize *ChunkSize
}

// NewKryptonKEM creates a KryptonKEM bound to kem. kdfParams overrides
// the Argon2.Key security parameters used to stretch the KEM's 32-byte
// shared secret into a 64-byte Krypton key; pass nil for the default
// (~1 GiB memory, 8 threads, 1 pass). context namespaces the
// underlying Krypton session the same way Krypton.New's does; pass
// nil for the default "quantcrypt". chunkSize overrides automatic
// chunk-size selection; pass nil to determine it from file size.
func NewKryptonKEM(kem *pqa.KEM, kdfParams *kdf.Params, context []byte, callback KryptonFileCallback, chunkSize *ChunkSize) *KryptonKEM {
	if context == nil {
		context = []byte("quantcrypt")
	}
	return &KryptonKEM{kem: kem, kdfParams: kdfParams, context: context, callback: callback, chunkSize: chunkSize}
}

func defaultKryptonKEMParams() kdf.Params {
	mem, _ := kdf.MemCostGB(1)
	return kdf.Params{MemoryCost: mem, Parallelism: 8, TimeCost: 1, HashLen: 64, SaltLen: 32}
}

func (kk *KryptonKEM) params() *kdf.Params {
	if kk.kdfParams != nil {
		return kk.kdfParams
	}
	p := defaultKryptonKEMParams()
	return &p
}

// Encrypt encapsulates a fresh shared secret for publicKey (raw bytes
// or an armored key string), derives a Krypton secret key from it,
// and encrypts dataFile into outputFile. When outputFile is empty, it
// is created next to dataFile with a ".kptn" extension.
func (kk *KryptonKEM) Encrypt(ctx context.Context, publicKey []byte, dataFile, outputFile string) (err error) {
	defer func() { err = qcrypto.SanitizeError(err) }()

	if outputFile == "" {
		outputFile = replaceExt(dataFile, ".kptn")
	}

	publicKey, err = maybeDearmor(kk.kem, publicKey)
	if err != nil {
		return err
	}

	kemCT, sharedSecret, err := kk.kem.Encaps(publicKey)
	if err != nil {
		return err
	}
	keyResult, err := kdf.KeyRawSalt(sharedSecret, nil, kk.params())
	if err != nil {
		return err
	}

	kf := NewKryptonFile(keyResult.SecretKey, kk.context, kk.chunkSize, kk.callback)
	header := packKEMHeader(filepath.Base(dataFile), keyResult.PublicSalt, kemCT)
	return kf.Encrypt(ctx, dataFile, outputFile, header)
}

// DecryptToFile decapsulates the shared secret from encryptedFile's
// header using secretKey (raw bytes or an armored key string),
// rederives the Krypton secret key, and decrypts into outputFile.
// When outputFile is empty, the original file name recorded in the
// header is used, resolved next to encryptedFile.
func (kk *KryptonKEM) DecryptToFile(ctx context.Context, secretKey []byte, encryptedFile, outputFile string) (err error) {
	defer func() { err = qcrypto.SanitizeError(err) }()

	kf, inFile, origName, err := kk.prepareDecrypt(secretKey, encryptedFile)
	if err != nil {
		return err
	}
	if outputFile == "" {
		outputFile = filepath.Join(filepath.Dir(inFile), origName)
	}
	_, err = kf.Decrypt(ctx, inFile, outputFile)
	return err
}

// DecryptToMemory is DecryptToFile's in-memory counterpart. Do not
// use this on large (>100MB) files.
func (kk *KryptonKEM) DecryptToMemory(ctx context.Context, secretKey []byte, encryptedFile string) (plaintext []byte, err error) {
	defer func() { err = qcrypto.SanitizeError(err) }()

	kf, inFile, _, err := kk.prepareDecrypt(secretKey, encryptedFile)
	if err != nil {
		return nil, err
	}
	data, err := kf.DecryptIntoMemory(ctx, inFile)
	if err != nil {
		return nil, err
	}
	return data.Plaintext, nil
}

func (kk *KryptonKEM) prepareDecrypt(secretKey []byte, encryptedFile string) (kf *KryptonFile, inFile, origName string, err error) {
	secretKey, err = maybeDearmor(kk.kem, secretKey)
	if err != nil {
		return nil, "", "", err
	}

	header, err := ReadFileHeader(encryptedFile)
	if err != nil {
		return nil, "", "", err
	}
	origName, publicSalt, kemCT, err := unpackKEMHeader(header, int(kk.params().SaltLen))
	if err != nil {
		return nil, "", "", err
	}
	salt, err := common.B64Decode(publicSalt)
	if err != nil {
		return nil, "", "", common.NewInvalidArgsError("KryptonKEM", "header salt is not valid base64")
	}

	sharedSecret, err := kk.kem.Decaps(secretKey, kemCT)
	if err != nil {
		return nil, "", "", err
	}
	keyResult, err := kdf.KeyRawSalt(sharedSecret, salt, kk.params())
	if err != nil {
		return nil, "", "", err
	}

	return NewKryptonFile(keyResult.SecretKey, kk.context, kk.chunkSize, kk.callback), encryptedFile, origName, nil
}

// packKEMHeader lays out fn_len(4) || file_name || public_salt (base64
// text, e.g. 44 chars for a 32-byte salt) || kem_ct, per the
// KryptonKEM on-disk header format.
func packKEMHeader(fileName, publicSalt string, kemCT []byte) []byte {
	nameBytes := []byte(fileName)
	saltBytes := []byte(publicSalt)
	out := make([]byte, 0, 4+len(nameBytes)+len(saltBytes)+len(kemCT))
	out = append(out, common.Ascii4(len(nameBytes))...)
	out = append(out, nameBytes...)
	out = append(out, saltBytes...)
	out = append(out, kemCT...)
	return out
}

func unpackKEMHeader(header []byte, saltLen int) (fileName, publicSalt string, kemCT []byte, err error) {
	if len(header) < 4 {
		return "", "", nil, fmt.Errorf("krypton kem header too short")
	}
	fnLen, err := parseAscii4(header[:4])
	if err != nil {
		return "", "", nil, err
	}
	saltStart := 4 + fnLen
	saltTextLen := base64.StdEncoding.EncodedLen(saltLen)
	ctStart := saltStart + saltTextLen
	if len(header) < ctStart {
		return "", "", nil, fmt.Errorf("krypton kem header truncated")
	}
	fileName = string(header[4:saltStart])
	publicSalt = string(header[saltStart:ctStart])
	kemCT = header[ctStart:]
	return fileName, publicSalt, kemCT, nil
}

func parseAscii4(b []byte) (int, error) {
	var n int
	if _, err := fmt.Sscanf(string(b), "%04d", &n); err != nil {
		return 0, err
	}
	return n, nil
}

func replaceExt(path, ext string) string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	return base + ext
}
