/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

package kdf

import (
	"bytes"
	"testing"
)

func testingHashParams() *Params {
	return &Params{MemoryCost: 1024, Parallelism: 2, TimeCost: 1, HashLen: 32, SaltLen: 16}
}

func TestArgon2HashAndVerify(t *testing.T) {
	params := testingHashParams()
	res, err := Hash("correct horse battery staple", "", 0, params)
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if res.PublicHash == "" {
		t.Fatal("expected a non-empty PHC hash")
	}

	verify, err := Hash("correct horse battery staple", res.PublicHash, 0, params)
	if err != nil {
		t.Fatalf("verification failed: %v", err)
	}
	if !verify.Verified {
		t.Fatal("expected Verified=true")
	}
	if verify.Rehashed {
		t.Fatal("did not expect a rehash when params are unchanged")
	}
}

func TestArgon2HashWrongPassword(t *testing.T) {
	params := testingHashParams()
	res, err := Hash("correct horse battery staple", "", 0, params)
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if _, err := Hash("wrong password", res.PublicHash, 0, params); err == nil {
		t.Fatal("expected verification error for wrong password")
	} else if _, ok := err.(*VerificationError); !ok {
		t.Fatalf("expected *VerificationError, got %T", err)
	}
}

func TestArgon2HashRehashesOnStrongerParams(t *testing.T) {
	weak := testingHashParams()
	res, err := Hash("a password", "", 0, weak)
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	strong := &Params{MemoryCost: 2048, Parallelism: 2, TimeCost: 1, HashLen: 32, SaltLen: 16}
	verify, err := Hash("a password", res.PublicHash, 0, strong)
	if err != nil {
		t.Fatalf("verification with stronger params failed: %v", err)
	}
	if !verify.Rehashed {
		t.Fatal("expected rehash when current params are stronger than stored ones")
	}
	if verify.PublicHash == res.PublicHash {
		t.Fatal("expected a new hash string after rehashing")
	}
}

func TestArgon2HashRejectsMalformedVerifHash(t *testing.T) {
	if _, err := Hash("pw", "not-a-phc-string", 0, testingHashParams()); err == nil {
		t.Fatal("expected InvalidHashError for malformed PHC string")
	} else if _, ok := err.(*InvalidHashError); !ok {
		t.Fatalf("expected *InvalidHashError, got %T", err)
	}
}

func TestArgon2KeyDeterministicWithFixedSalt(t *testing.T) {
	params := testingHashParams()
	first, err := Key("a password", "", 0, params)
	if err != nil {
		t.Fatalf("Key failed: %v", err)
	}
	second, err := Key("a password", first.PublicSalt, 0, params)
	if err != nil {
		t.Fatalf("Key rederivation failed: %v", err)
	}
	if !bytes.Equal(first.SecretKey, second.SecretKey) {
		t.Fatal("expected identical secret key when rederiving with the same salt")
	}
}

func TestArgon2KeyDistinctSaltsDiverge(t *testing.T) {
	params := testingHashParams()
	first, err := Key("a password", "", 0, params)
	if err != nil {
		t.Fatalf("Key failed: %v", err)
	}
	second, err := Key("a password", "", 0, params)
	if err != nil {
		t.Fatalf("Key failed: %v", err)
	}
	if bytes.Equal(first.SecretKey, second.SecretKey) {
		t.Fatal("expected distinct keys for distinct random salts")
	}
	if first.PublicSalt == second.PublicSalt {
		t.Fatal("expected distinct public salts")
	}
}

func TestPHCRoundTrip(t *testing.T) {
	params := Params{MemoryCost: 65536, TimeCost: 3, Parallelism: 4}
	salt := bytes.Repeat([]byte{0xAB}, 16)
	hash := bytes.Repeat([]byte{0xCD}, 32)

	encoded := phcEncode(params, salt, hash)
	gotParams, gotSalt, gotHash, err := phcDecode(encoded)
	if err != nil {
		t.Fatalf("phcDecode failed: %v", err)
	}
	if gotParams.MemoryCost != params.MemoryCost || gotParams.TimeCost != params.TimeCost ||
		gotParams.Parallelism != params.Parallelism {
		t.Fatal("decoded parameters do not match encoded parameters")
	}
	if !bytes.Equal(gotSalt, salt) || !bytes.Equal(gotHash, hash) {
		t.Fatal("decoded salt/hash do not match encoded salt/hash")
	}
}
