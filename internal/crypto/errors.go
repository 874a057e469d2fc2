/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

package crypto

import (
	"errors"
	"fmt"
	"os"

	"quantcrypt/internal/common"
)

// SanitizeError collapses an error crossing the KryptonFile/KryptonKEM
// file-API boundary into a caller-safe form. Every typed quantcrypt
// error (StateError, VerifyError, OutputLimitError, KeyArmorError, ...)
// already carries a vetted, narrowly-matchable message and passes
// through unchanged. Anything else - in practice, a raw filesystem
// error - is collapsed to a generic message so a caller-visible error
// never repeats a local path.
func SanitizeError(err error) error {
	if err == nil {
		return nil
	}
	var quantErr common.QuantcryptError
	if errors.As(err, &quantErr) {
		return err
	}
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("quantcrypt: input file not found: %w", os.ErrNotExist)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("quantcrypt: insufficient permissions: %w", os.ErrPermission)
	default:
		return fmt.Errorf("quantcrypt: file operation failed")
	}
}
