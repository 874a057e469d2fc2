/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

// Package common holds the base error type and small helpers shared by
// every other internal package (kdf, pqa, cipher).
package common

import "fmt"

// Error is the base type every quantcrypt error embeds. It carries an
// operation name so callers and logs can tell which call produced it
// without string-matching the message.
type Error struct {
	Op  string
	Msg string
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds a base Error. Typed errors in kdf/pqa/cipher wrap this one
// so errors.As still matches the narrower type while errors.Is/Unwrap
// keep working against the generic form.
func New(op, msg string, err error) *Error {
	return &Error{Op: op, Msg: msg, Err: err}
}

// InvalidArgsError signals a caller passed a value of the wrong shape
// (wrong length, wrong type, malformed encoding) before any
// cryptographic operation was attempted.
type InvalidArgsError struct{ *Error }

func NewInvalidArgsError(op, msg string) *InvalidArgsError {
	return &InvalidArgsError{New(op, msg, nil)}
}

// InvalidUsageError signals the caller used a namespace-only
// construct (e.g. instantiated a collection-of-constructors type)
// in a way the API does not support.
type InvalidUsageError struct{ *Error }

func NewInvalidUsageError(op, msg string) *InvalidUsageError {
	return &InvalidUsageError{New(op, msg, nil)}
}

// QuantcryptError is implemented by every typed error this module
// raises (StateError, VerifyError, OutputLimitError, KeyArmorError, ...).
// Their messages are already vetted as safe to surface to a caller;
// internal/crypto's SanitizeError uses this to tell them apart from
// foreign errors (filesystem errors in particular) that might still
// embed a local path or other operational detail.
//
// Every type that embeds *Error satisfies this automatically: the
// embedded pointer promotes isQuantcryptError into the outer type's
// method set.
type QuantcryptError interface {
	error
	isQuantcryptError()
}

func (e *Error) isQuantcryptError() {}
