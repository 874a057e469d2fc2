/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

// argon2.go implements the two Argon2id-based password primitives:
// Hash, a verifier-producing hasher meant for online authentication,
// and Key, a symmetric-key derivation function meant for encrypting
// data with a human-chosen password. Both sit on top of
// golang.org/x/crypto/argon2's raw IDKey, since that package exposes
// no PHC-string hash/verify/rehash helpers of its own.
package kdf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/crypto/argon2"

	"quantcrypt/internal/common"
)

// HashResult is the outcome of an Argon2.Hash call.
type HashResult struct {
	// PublicHash is the PHC string to persist (or that was persisted,
	// when verifying).
	PublicHash string
	// Rehashed is true when verification succeeded against a hash
	// produced with parameters that differ from the caller's current ones,
	// and PublicHash has been replaced with a freshly computed one.
	Rehashed bool
	// Verified is true when this call verified an existing hash rather
	// than producing a new one.
	Verified bool
}

// Hash hashes password for storage as an authentication verifier, or,
// when verifHash is non-empty, checks password against it.
//
// When verifHash is empty, minYears gates password strength (zero
// disables the gate) against an online, rate-throttled attacker model.
// params overrides the default security parameters; pass nil to use
// DefaultHashParams.
func Hash(password string, verifHash string, minYears int, params *Params) (*HashResult, error) {
	p := DefaultHashParams()
	if params != nil {
		p = *params
	}
	if err := p.validate(); err != nil {
		return nil, common.NewInvalidArgsError("Argon2.Hash", err.Error())
	}

	if verifHash == "" {
		if minYears > 0 {
			if err := assertCrackResistance(password, minYears, scenarioOnline); err != nil {
				return nil, err
			}
		}
		salt := make([]byte, p.SaltLen)
		if _, err := rand.Read(salt); err != nil {
			return nil, newHashingError(err)
		}
		hash := argon2.IDKey([]byte(password), salt, p.TimeCost, p.MemoryCost, p.Parallelism, p.HashLen)
		return &HashResult{PublicHash: phcEncode(p, salt, hash)}, nil
	}

	storedParams, salt, storedHash, err := phcDecode(verifHash)
	if err != nil {
		return nil, newInvalidHashError(err)
	}
	computed := argon2.IDKey([]byte(password), salt, storedParams.TimeCost,
		storedParams.MemoryCost, storedParams.Parallelism, uint32(len(storedHash)))
	if subtle.ConstantTimeCompare(computed, storedHash) != 1 {
		return nil, newVerificationError()
	}

	result := &HashResult{PublicHash: verifHash, Verified: true}
	if needsRehash(storedParams, p) {
		newSalt := make([]byte, p.SaltLen)
		if _, err := rand.Read(newSalt); err != nil {
			return nil, newHashingError(err)
		}
		newHash := argon2.IDKey([]byte(password), newSalt, p.TimeCost, p.MemoryCost, p.Parallelism, p.HashLen)
		result.PublicHash = phcEncode(p, newSalt, newHash)
		result.Rehashed = true
	}
	return result, nil
}

// KeyResult is the outcome of an Argon2.Key call.
type KeyResult struct {
	// SecretKey is the derived symmetric key.
	SecretKey []byte
	// PublicSalt is the base64-std-encoded salt to persist alongside
	// the encrypted data, so SecretKey can be rederived later.
	PublicSalt string
}

// Key derives a symmetric secret key from password. When publicSalt
// is empty a fresh random salt of params.SaltLen bytes is generated;
// otherwise publicSalt (base64-std-encoded) is reused so the same key
// can be rederived for decryption.
//
// minYears gates password strength (zero disables the gate) against
// an offline, unthrottled attacker model, and only applies when
// publicSalt is empty (i.e. this is a fresh derivation, not a
// rederivation for decryption). params overrides the default security
// parameters; pass nil to use DefaultKeyParams.
func Key(password string, publicSalt string, minYears int, params *Params) (*KeyResult, error) {
	var salt []byte
	if publicSalt != "" {
		decoded, err := base64.StdEncoding.DecodeString(publicSalt)
		if err != nil {
			return nil, newInvalidHashError(err)
		}
		salt = decoded
	}
	return deriveKey([]byte(password), salt, minYears, params)
}

// KeyRawSalt is Key's raw-bytes counterpart, used to derive a
// symmetric key directly from a non-textual secret (e.g. a KEM shared
// secret) rather than a human password. Salt is consumed and produced
// as raw bytes rather than a base64 string, and the password-strength
// gate never applies, since secret is not something a human chose.
func KeyRawSalt(secret, salt []byte, params *Params) (*KeyResult, error) {
	return deriveKey(secret, salt, 0, params)
}

func deriveKey(password, salt []byte, minYears int, params *Params) (*KeyResult, error) {
	p := DefaultKeyParams()
	if params != nil {
		p = *params
	}
	if err := p.validate(); err != nil {
		return nil, common.NewInvalidArgsError("Argon2.Key", err.Error())
	}

	if salt == nil {
		if minYears > 0 {
			if err := assertCrackResistance(string(password), minYears, scenarioOffline); err != nil {
				return nil, err
			}
		}
		salt = make([]byte, p.SaltLen)
		if _, err := rand.Read(salt); err != nil {
			return nil, newHashingError(err)
		}
	}

	secretKey := argon2.IDKey(password, salt, p.TimeCost, p.MemoryCost, p.Parallelism, p.HashLen)
	return &KeyResult{
		SecretKey:  secretKey,
		PublicSalt: base64.StdEncoding.EncodeToString(salt),
	}, nil
}

// needsRehash reports whether a hash produced with stored differs
// from what current would produce, meaning the caller's parameters
// have changed since the hash was stored.
func needsRehash(stored, current Params) bool {
	return stored.MemoryCost != current.MemoryCost ||
		stored.TimeCost != current.TimeCost ||
		stored.Parallelism != current.Parallelism ||
		stored.HashLen != current.HashLen ||
		stored.SaltLen != current.SaltLen
}
