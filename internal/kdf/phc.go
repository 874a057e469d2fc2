/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

package kdf

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// phcVersion is the only Argon2 version golang.org/x/crypto/argon2
// implements; it is the "v=19" field of every PHC string this package
// produces or accepts.
const phcVersion = 19

// phcEncode renders params, salt and hash as a PHC-formatted Argon2id
// string: $argon2id$v=19$m=...,t=...,p=...$<salt>$<hash>, the same
// layout produced by argon2-cffi's PasswordHasher.hash.
func phcEncode(params Params, salt, hash []byte) string {
	b64 := base64.RawStdEncoding
	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		phcVersion, params.MemoryCost, params.TimeCost, params.Parallelism,
		b64.EncodeToString(salt), b64.EncodeToString(hash),
	)
}

// phcDecode parses a PHC Argon2id string back into its parameters,
// salt and hash.
func phcDecode(s string) (Params, []byte, []byte, error) {
	parts := strings.Split(s, "$")
	// "" $argon2id $v=19 $m=...,t=...,p=... $salt $hash -> 6 fields.
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return Params{}, nil, nil, fmt.Errorf("not a well-formed argon2id PHC string")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return Params{}, nil, nil, fmt.Errorf("invalid version field: %w", err)
	}
	if version != phcVersion {
		return Params{}, nil, nil, fmt.Errorf("unsupported argon2 version %d", version)
	}

	var params Params
	var mem, timeCost uint32
	var parallelism uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &timeCost, &parallelism); err != nil {
		return Params{}, nil, nil, fmt.Errorf("invalid parameter field: %w", err)
	}
	params.MemoryCost = mem
	params.TimeCost = timeCost
	params.Parallelism = parallelism

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return Params{}, nil, nil, fmt.Errorf("invalid salt encoding: %w", err)
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return Params{}, nil, nil, fmt.Errorf("invalid hash encoding: %w", err)
	}
	params.SaltLen = uint32(len(salt))
	params.HashLen = uint32(len(hash))
	return params, salt, hash, nil
}
