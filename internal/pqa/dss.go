/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

package pqa

import (
	circlsign "github.com/cloudflare/circl/sign"

	"quantcrypt/internal/common"
)

// DSSParamSizes adds the signature size on top of the public/secret
// key sizes every PQ algorithm exposes.
type DSSParamSizes struct {
	ParamSizes
	SigSize int
}

// DSS is a digital-signature-scheme algorithm, generalized over
// CIRCL's generic sign.Scheme so the same wrapper serves ML-DSA-44,
// -65 and -87 (Dilithium modes 2, 3 and 5) without repeating
// marshal/unmarshal plumbing per variant.
type DSS struct {
	name   string
	scheme circlsign.Scheme
}

func newDSS(name string, scheme circlsign.Scheme) *DSS {
	return &DSS{name: name, scheme: scheme}
}

// Name is the algorithm's identifier, e.g. "ML-DSA-65".
func (d *DSS) Name() string { return d.name }

// ParamSizes reports the key and signature sizes for this algorithm.
func (d *DSS) ParamSizes() DSSParamSizes {
	return DSSParamSizes{
		ParamSizes: ParamSizes{PkSize: d.scheme.PublicKeySize(), SkSize: d.scheme.PrivateKeySize()},
		SigSize:    d.scheme.SignatureSize(),
	}
}

// Keygen generates a fresh (public key, secret key) pair.
func (d *DSS) Keygen() (publicKey, secretKey []byte, err error) {
	pk, sk, err := d.scheme.GenerateKey()
	if err != nil {
		return nil, nil, newDSSKeygenFailedError(err)
	}
	pkBytes, err := pk.MarshalBinary()
	if err != nil {
		return nil, nil, newDSSKeygenFailedError(err)
	}
	skBytes, err := sk.MarshalBinary()
	if err != nil {
		return nil, nil, newDSSKeygenFailedError(err)
	}
	return pkBytes, skBytes, nil
}

// Sign produces a detached signature of message under secretKey.
func (d *DSS) Sign(secretKey, message []byte) ([]byte, error) {
	sizes := d.ParamSizes()
	if len(secretKey) != sizes.SkSize {
		return nil, common.NewInvalidArgsError("DSS.Sign", "secret key has the wrong length")
	}
	sk, err := d.scheme.UnmarshalBinaryPrivateKey(secretKey)
	if err != nil {
		return nil, newDSSSignFailedError(err)
	}
	sig := d.scheme.Sign(sk, message, nil)
	if sig == nil {
		return nil, newDSSSignFailedError(nil)
	}
	return sig, nil
}

// Verify reports whether signature is a valid signature of message
// under publicKey. When raiseOnFailure is true, a failed verification
// returns a *DSSVerifyFailedError instead of (false, nil).
func (d *DSS) Verify(publicKey, message, signature []byte, raiseOnFailure bool) (bool, error) {
	sizes := d.ParamSizes()
	if len(publicKey) != sizes.PkSize {
		return false, common.NewInvalidArgsError("DSS.Verify", "public key has the wrong length")
	}
	pk, err := d.scheme.UnmarshalBinaryPublicKey(publicKey)
	if err != nil {
		return false, common.NewInvalidArgsError("DSS.Verify", "public key is malformed")
	}
	ok := d.scheme.Verify(pk, message, signature, nil)
	if !ok && raiseOnFailure {
		return false, newDSSVerifyFailedError()
	}
	return ok, nil
}

// ArmorName is the uppercased, separator-stripped label this
// algorithm's envelopes are named with, e.g. "MLDSA65".
func (d *DSS) ArmorName() string { return armorName(d.name) }

// Armor renders a public or secret key as a labelled, base64, PEM-like envelope.
func (d *DSS) Armor(keyBytes []byte) (string, error) {
	return armor(d.name, d.ParamSizes().ParamSizes, keyBytes)
}

// Dearmor is the inverse of Armor.
func (d *DSS) Dearmor(armoredKey string) ([]byte, error) {
	return dearmor(armoredKey, d.name, d.ParamSizes().ParamSizes)
}
