/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

package pqa

import (
	circlkem "github.com/cloudflare/circl/kem"

	"quantcrypt/internal/common"
)

// KEMParamSizes adds the ciphertext and shared-secret sizes on top of
// the public/secret key sizes every PQ algorithm exposes.
type KEMParamSizes struct {
	ParamSizes
	CtSize int
	SsSize int
}

// KEM is a key-encapsulation-mechanism algorithm, generalized over
// CIRCL's generic kem.Scheme so the same wrapper serves ML-KEM-512,
// -768 and -1024 without repeating marshal/unmarshal plumbing per
// variant.
type KEM struct {
	name   string
	scheme circlkem.Scheme
}

func newKEM(name string, scheme circlkem.Scheme) *KEM {
	return &KEM{name: name, scheme: scheme}
}

// Name is the algorithm's identifier, e.g. "ML-KEM-768".
func (k *KEM) Name() string { return k.name }

// ParamSizes reports the key, ciphertext and shared-secret sizes for
// this algorithm.
func (k *KEM) ParamSizes() KEMParamSizes {
	return KEMParamSizes{
		ParamSizes: ParamSizes{PkSize: k.scheme.PublicKeySize(), SkSize: k.scheme.PrivateKeySize()},
		CtSize:     k.scheme.CiphertextSize(),
		SsSize:     k.scheme.SharedKeySize(),
	}
}

// Keygen generates a fresh (public key, secret key) pair.
func (k *KEM) Keygen() (publicKey, secretKey []byte, err error) {
	pk, sk, err := k.scheme.GenerateKeyPair()
	if err != nil {
		return nil, nil, newKEMKeygenFailedError(err)
	}
	pkBytes, err := pk.MarshalBinary()
	if err != nil {
		return nil, nil, newKEMKeygenFailedError(err)
	}
	skBytes, err := sk.MarshalBinary()
	if err != nil {
		return nil, nil, newKEMKeygenFailedError(err)
	}
	return pkBytes, skBytes, nil
}

// Encaps generates a shared secret and encapsulates it into a
// ciphertext addressed to publicKey.
func (k *KEM) Encaps(publicKey []byte) (cipherText, sharedSecret []byte, err error) {
	sizes := k.ParamSizes()
	if len(publicKey) != sizes.PkSize {
		return nil, nil, common.NewInvalidArgsError("KEM.Encaps", "public key has the wrong length")
	}
	pk, err := k.scheme.UnmarshalBinaryPublicKey(publicKey)
	if err != nil {
		return nil, nil, newKEMEncapsFailedError(err)
	}
	ct, ss, err := k.scheme.Encapsulate(pk)
	if err != nil {
		return nil, nil, newKEMEncapsFailedError(err)
	}
	return ct, ss, nil
}

// Decaps recovers the shared secret from cipherText using secretKey.
func (k *KEM) Decaps(secretKey, cipherText []byte) (sharedSecret []byte, err error) {
	sizes := k.ParamSizes()
	if len(secretKey) != sizes.SkSize {
		return nil, common.NewInvalidArgsError("KEM.Decaps", "secret key has the wrong length")
	}
	if len(cipherText) != sizes.CtSize {
		return nil, common.NewInvalidArgsError("KEM.Decaps", "ciphertext has the wrong length")
	}
	sk, err := k.scheme.UnmarshalBinaryPrivateKey(secretKey)
	if err != nil {
		return nil, newKEMDecapsFailedError(err)
	}
	ss, err := k.scheme.Decapsulate(sk, cipherText)
	if err != nil {
		return nil, newKEMDecapsFailedError(err)
	}
	return ss, nil
}

// ArmorName is the uppercased, separator-stripped label this
// algorithm's envelopes are named with, e.g. "MLKEM768".
func (k *KEM) ArmorName() string { return armorName(k.name) }

// Armor renders a public or secret key as a labelled, base64, PEM-like envelope.
func (k *KEM) Armor(keyBytes []byte) (string, error) {
	return armor(k.name, k.ParamSizes().ParamSizes, keyBytes)
}

// Dearmor is the inverse of Armor.
func (k *KEM) Dearmor(armoredKey string) ([]byte, error) {
	return dearmor(armoredKey, k.name, k.ParamSizes().ParamSizes)
}
