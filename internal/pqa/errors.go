/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

package pqa

import "quantcrypt/internal/common"

// KeyArmorError is returned by Armor/Dearmor when a key is not the
// expected length for the algorithm it belongs to.
type KeyArmorError struct{ *common.Error }

func newKeyArmorError(verb string) *KeyArmorError {
	return &KeyArmorError{common.New("PQA", "will not "+verb+" a corrupted key", nil)}
}

// KEMKeygenFailedError wraps an underlying key-pair generation failure.
type KEMKeygenFailedError struct{ *common.Error }

func newKEMKeygenFailedError(err error) *KEMKeygenFailedError {
	return &KEMKeygenFailedError{common.New("KEM.Keygen", "key pair generation failed", err)}
}

// KEMEncapsFailedError wraps an underlying encapsulation failure.
type KEMEncapsFailedError struct{ *common.Error }

func newKEMEncapsFailedError(err error) *KEMEncapsFailedError {
	return &KEMEncapsFailedError{common.New("KEM.Encaps", "encapsulation failed", err)}
}

// KEMDecapsFailedError wraps an underlying decapsulation failure.
type KEMDecapsFailedError struct{ *common.Error }

func newKEMDecapsFailedError(err error) *KEMDecapsFailedError {
	return &KEMDecapsFailedError{common.New("KEM.Decaps", "decapsulation failed", err)}
}

// DSSKeygenFailedError wraps an underlying signing key-pair generation failure.
type DSSKeygenFailedError struct{ *common.Error }

func newDSSKeygenFailedError(err error) *DSSKeygenFailedError {
	return &DSSKeygenFailedError{common.New("DSS.Keygen", "key pair generation failed", err)}
}

// DSSSignFailedError wraps an underlying signing failure.
type DSSSignFailedError struct{ *common.Error }

func newDSSSignFailedError(err error) *DSSSignFailedError {
	return &DSSSignFailedError{common.New("DSS.Sign", "signing failed", err)}
}

// DSSVerifyFailedError is returned when a signature fails verification.
type DSSVerifyFailedError struct{ *common.Error }

func newDSSVerifyFailedError() *DSSVerifyFailedError {
	return &DSSVerifyFailedError{common.New("DSS.Verify", "signature verification failed", nil)}
}
