/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

package pqa

import (
	"bytes"
	"testing"
)

func TestDSSSignAndVerifyAllVariants(t *testing.T) {
	message := []byte("the quick brown fox jumps over the lazy dog")
	for _, d := range []*DSS{MLDSA44(), MLDSA65(), MLDSA87()} {
		t.Run(d.Name(), func(t *testing.T) {
			pk, sk, err := d.Keygen()
			if err != nil {
				t.Fatalf("Keygen failed: %v", err)
			}
			sizes := d.ParamSizes()
			if len(pk) != sizes.PkSize || len(sk) != sizes.SkSize {
				t.Fatalf("unexpected key sizes: pk=%d sk=%d", len(pk), len(sk))
			}

			sig, err := d.Sign(sk, message)
			if err != nil {
				t.Fatalf("Sign failed: %v", err)
			}
			ok, err := d.Verify(pk, message, sig, true)
			if err != nil {
				t.Fatalf("Verify returned error: %v", err)
			}
			if !ok {
				t.Fatal("expected signature to verify")
			}
		})
	}
}

func TestDSSVerifyRejectsTamperedMessage(t *testing.T) {
	d := MLDSA44()
	pk, sk, err := d.Keygen()
	if err != nil {
		t.Fatalf("Keygen failed: %v", err)
	}
	sig, err := d.Sign(sk, []byte("original message"))
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	ok, err := d.Verify(pk, []byte("tampered message"), sig, false)
	if err != nil {
		t.Fatalf("Verify returned unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected verification of a tampered message to fail")
	}

	if _, err := d.Verify(pk, []byte("tampered message"), sig, true); err == nil {
		t.Fatal("expected DSSVerifyFailedError when raiseOnFailure is true")
	}
}

func TestDSSArmorRoundTrip(t *testing.T) {
	d := MLDSA65()
	pk, sk, err := d.Keygen()
	if err != nil {
		t.Fatalf("Keygen failed: %v", err)
	}
	armored, err := d.Armor(pk)
	if err != nil {
		t.Fatalf("Armor failed: %v", err)
	}
	got, err := d.Dearmor(armored)
	if err != nil {
		t.Fatalf("Dearmor failed: %v", err)
	}
	if !bytes.Equal(pk, got) {
		t.Fatal("dearmored public key does not match original")
	}
}
