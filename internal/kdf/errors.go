/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

package kdf

import (
	"fmt"

	"quantcrypt/internal/common"
)

// OutputLimitError is raised by KKDF when key_len*num_keys exceeds the
// 65536-byte ceiling for a single master key.
type OutputLimitError struct{ *common.Error }

func newOutputLimitError(outputLen int) *OutputLimitError {
	return &OutputLimitError{common.New("KKDF", fmt.Sprintf(
		"requested %d bytes of keys, more than the %d bytes allowed from one master key",
		outputLen, kkdfEntropyCap), nil)}
}

// WeakPasswordError is raised by the optional zxcvbn crack-time gate.
type WeakPasswordError struct{ *common.Error }

func newWeakPasswordError() *WeakPasswordError {
	return &WeakPasswordError{common.New("Argon2", "weak passwords are not allowed", nil)}
}

// VerificationError is raised by Argon2.Hash when the supplied
// password does not match the provided verification hash.
type VerificationError struct{ *common.Error }

func newVerificationError() *VerificationError {
	return &VerificationError{common.New("Argon2.Hash",
		"failed to verify the password against the provided hash", nil)}
}

// InvalidHashError is raised when a supplied verification hash is
// malformed (not a well-formed Argon2id PHC string), and by Key when
// publicSalt is not valid base64.
type InvalidHashError struct{ *common.Error }

func newInvalidHashError(err error) *InvalidHashError {
	return &InvalidHashError{common.New("Argon2.Hash", "provided hash is invalid", err)}
}

// HashingError wraps an unexpected failure from the underlying Argon2
// implementation.
type HashingError struct{ *common.Error }

func newHashingError(err error) *HashingError {
	return &HashingError{common.New("Argon2", "unable to hash the password", err)}
}
