/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

package cipher

import (
	"quantcrypt/internal/common"
)

// ChunkSize is the plaintext chunk size, in bytes, Krypton pads
// fixed-size chunks to. Callers construct it through ChunkSizeKB or
// ChunkSizeMB, which restrict it to the discrete set of sizes the
// reference toolkit allows; KryptonFile's decryption paths build it
// directly from the chunk size recorded in the file's metadata.
type ChunkSize struct {
	Bytes int
}

var allowedChunkSizeKB = map[int]bool{1: true, 2: true, 4: true, 8: true, 16: true, 32: true, 64: true, 128: true, 256: true}

// ChunkSizeKB builds a ChunkSize from a kilobyte value in
// {1,2,4,8,16,32,64,128,256}.
func ChunkSizeKB(kb int) (ChunkSize, error) {
	if !allowedChunkSizeKB[kb] {
		return ChunkSize{}, common.NewInvalidArgsError("ChunkSize.KB",
			"size must be one of 1,2,4,8,16,32,64,128,256")
	}
	return ChunkSize{Bytes: 1024 * kb}, nil
}

// ChunkSizeMB builds a ChunkSize from a megabyte value in [1,10].
func ChunkSizeMB(mb int) (ChunkSize, error) {
	if mb < 1 || mb > 10 {
		return ChunkSize{}, common.NewInvalidArgsError("ChunkSize.MB", "size must be between 1 and 10")
	}
	return ChunkSize{Bytes: 1024 * 1024 * mb}, nil
}

// DetermineFileChunkSize picks a ChunkSize proportional to fileSize:
// small files get a small fixed chunk, and files beyond 1 MiB get a
// megabyte chunk that scales with size, capped at 10 MiB. This is the
// core's only chunk-size policy; there is no ambient override, so the
// same fileSize always yields the same ChunkSize. Callers that want a
// different size pass their own ChunkSize explicitly instead of
// relying on this heuristic.
func DetermineFileChunkSize(fileSize int64) ChunkSize {
	const kiloBytes = 1024
	const megaBytes = kiloBytes * 1024

	switch {
	case fileSize <= kiloBytes*4:
		cs, _ := ChunkSizeKB(1)
		return cs
	case fileSize <= kiloBytes*16:
		cs, _ := ChunkSizeKB(4)
		return cs
	case fileSize <= kiloBytes*64:
		cs, _ := ChunkSizeKB(16)
		return cs
	case fileSize <= kiloBytes*256:
		cs, _ := ChunkSizeKB(64)
		return cs
	case fileSize <= kiloBytes*1024:
		cs, _ := ChunkSizeKB(256)
		return cs
	}

	for x := 1; x <= 10; x++ {
		if fileSize <= int64(megaBytes)*int64(x)*100 {
			cs, _ := ChunkSizeMB(x)
			return cs
		}
	}
	cs, _ := ChunkSizeMB(10)
	return cs
}
