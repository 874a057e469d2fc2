/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

// krypton_file.go chunks a Krypton session across an on-disk file:
// h_len(10 ascii) || chunk_size(10 ascii) || vdp(160) || header(h_len)
// followed by ciphertext chunks of chunk_size+1 bytes each.
package cipher

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"quantcrypt/internal/common"
	qcrypto "quantcrypt/internal/crypto"
)

const fileMetadataFixedSize = 20 + verificationDataPacketSize // h_len + chunk_size + vdp

// KryptonFileCallback is invoked once per processed chunk; useful for
// driving a progress bar. It receives no arguments, matching the
// reference toolkit's callback contract.
type KryptonFileCallback func()

// KryptonFile chunks a single Krypton session across files of
// arbitrary size, so Encrypt and Decrypt never hold more than one
// chunk_size buffer in memory at a time. DecryptIntoMemory keeps the
// whole plaintext in memory.
type KryptonFile struct {
	secretKey []byte
	context   []byte
	chunkSize *ChunkSize
	callback  KryptonFileCallback
}

// NewKryptonFile creates a KryptonFile bound to secretKey (64 bytes)
// and context. When chunkSize is nil, Encrypt determines an
// appropriate chunk size from the plaintext file's size.
func NewKryptonFile(secretKey, context []byte, chunkSize *ChunkSize, callback KryptonFileCallback) *KryptonFile {
	return &KryptonFile{secretKey: secretKey, context: context, chunkSize: chunkSize, callback: callback}
}

// Encrypt streams plaintextPath into outputPath, writing header as
// unencrypted associated data into the file's metadata.
func (kf *KryptonFile) Encrypt(ctx context.Context, plaintextPath, outputPath string, header []byte) (err error) {
	defer func() { err = qcrypto.SanitizeError(err) }()

	info, err := os.Stat(plaintextPath)
	if err != nil {
		return err
	}

	chunkSize := kf.chunkSize
	if chunkSize == nil {
		cs := DetermineFileChunkSize(info.Size())
		chunkSize = &cs
	}

	krypton, err := New(kf.secretKey, kf.context, chunkSize)
	if err != nil {
		return err
	}
	defer krypton.Destroy()
	if err := krypton.BeginEncryption(header); err != nil {
		return err
	}

	inFile, err := os.Open(plaintextPath) // #nosec G304 -- caller-controlled path, this is a file-encryption library
	if err != nil {
		return err
	}
	defer inFile.Close()

	outFile, err := os.Create(outputPath) // #nosec G304 -- caller-controlled path, this is a file-encryption library
	if err != nil {
		return err
	}
	defer outFile.Close()

	reserved := make([]byte, fileMetadataFixedSize+len(header))
	if _, err := outFile.Write(reserved); err != nil {
		return err
	}

	reader := bufio.NewReaderSize(inFile, chunkSize.Bytes)
	writer := bufio.NewWriter(outFile)
	buf := make([]byte, chunkSize.Bytes)
	wroteChunk := false
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, readErr := io.ReadFull(reader, buf)
		if n > 0 || (n == 0 && readErr == io.EOF && !wroteChunk) {
			ciphertext, encErr := krypton.Encrypt(buf[:n])
			if encErr != nil {
				return encErr
			}
			if _, err := writer.Write(ciphertext); err != nil {
				return err
			}
			if kf.callback != nil {
				kf.callback()
			}
			wroteChunk = true
		}
		if readErr == io.EOF || readErr == io.ErrUnexpectedEOF {
			break
		}
		if readErr != nil {
			return readErr
		}
	}
	if err := writer.Flush(); err != nil {
		return err
	}

	vdp, err := krypton.FinishEncryption()
	if err != nil {
		return err
	}
	metadata := packFileMetadata(chunkSize.Bytes, vdp, header)
	if _, err := outFile.WriteAt(metadata, 0); err != nil {
		return err
	}
	return nil
}

// Decrypt streams ciphertextPath into outputPath and returns the
// associated header. Plaintext is not retained in memory.
func (kf *KryptonFile) Decrypt(ctx context.Context, ciphertextPath, outputPath string) (data *DecryptedFileData, err error) {
	defer func() { err = qcrypto.SanitizeError(err) }()

	inFile, err := os.Open(ciphertextPath) // #nosec G304 -- caller-controlled path, this is a file-encryption library
	if err != nil {
		return nil, err
	}
	defer inFile.Close()

	chunkBytes, vdp, header, err := unpackFileMetadata(inFile)
	if err != nil {
		return nil, err
	}
	cs := ChunkSize{Bytes: chunkBytes}
	krypton, err := New(kf.secretKey, kf.context, &cs)
	if err != nil {
		return nil, err
	}
	defer krypton.Destroy()
	if err := krypton.BeginDecryption(vdp, header); err != nil {
		return nil, err
	}

	outFile, err := os.Create(outputPath) // #nosec G304 -- caller-controlled path, this is a file-encryption library
	if err != nil {
		return nil, err
	}
	defer outFile.Close()
	writer := bufio.NewWriter(outFile)

	if err := kf.streamDecrypt(ctx, inFile, chunkBytes, krypton, func(p []byte) error {
		_, err := writer.Write(p)
		return err
	}); err != nil {
		return nil, err
	}
	if err := writer.Flush(); err != nil {
		return nil, err
	}
	if err := krypton.FinishDecryption(); err != nil {
		return nil, err
	}
	return &DecryptedFileData{Header: header}, nil
}

// DecryptIntoMemory streams ciphertextPath through a Krypton session
// and accumulates the plaintext in memory. Do not use this on large
// (>100MB) files.
func (kf *KryptonFile) DecryptIntoMemory(ctx context.Context, ciphertextPath string) (data *DecryptedFileData, err error) {
	defer func() { err = qcrypto.SanitizeError(err) }()

	inFile, err := os.Open(ciphertextPath) // #nosec G304 -- caller-controlled path, this is a file-encryption library
	if err != nil {
		return nil, err
	}
	defer inFile.Close()

	chunkBytes, vdp, header, err := unpackFileMetadata(inFile)
	if err != nil {
		return nil, err
	}
	cs := ChunkSize{Bytes: chunkBytes}
	krypton, err := New(kf.secretKey, kf.context, &cs)
	if err != nil {
		return nil, err
	}
	defer krypton.Destroy()
	if err := krypton.BeginDecryption(vdp, header); err != nil {
		return nil, err
	}

	plaintext := make([]byte, 0, chunkBytes)
	if err := kf.streamDecrypt(ctx, inFile, chunkBytes, krypton, func(p []byte) error {
		plaintext = append(plaintext, p...)
		return nil
	}); err != nil {
		return nil, err
	}
	if err := krypton.FinishDecryption(); err != nil {
		return nil, err
	}
	return &DecryptedFileData{Plaintext: plaintext, Header: header}, nil
}

// ReadFileHeader reads only the associated-data header stored in a
// KryptonFile-encrypted file's metadata, without touching any
// ciphertext chunk or performing any cryptographic operation.
func ReadFileHeader(ciphertextPath string) ([]byte, error) {
	inFile, err := os.Open(ciphertextPath) // #nosec G304 -- caller-controlled path, this is a file-encryption library
	if err != nil {
		return nil, err
	}
	defer inFile.Close()
	_, _, header, err := unpackFileMetadata(inFile)
	return header, err
}

func (kf *KryptonFile) streamDecrypt(ctx context.Context, inFile *os.File, chunkBytes int, krypton *Krypton, emit func([]byte) error) error {
	reader := bufio.NewReaderSize(inFile, chunkBytes+1)
	buf := make([]byte, chunkBytes+1)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, readErr := io.ReadFull(reader, buf)
		if n > 0 {
			plaintext, decErr := krypton.Decrypt(buf[:n])
			if decErr != nil {
				return decErr
			}
			if err := emit(plaintext); err != nil {
				return err
			}
			if kf.callback != nil {
				kf.callback()
			}
		}
		if readErr == io.EOF || readErr == io.ErrUnexpectedEOF {
			return nil
		}
		if readErr != nil {
			return readErr
		}
	}
}

func packFileMetadata(chunkBytes int, vdp, header []byte) []byte {
	out := make([]byte, 0, fileMetadataFixedSize+len(header))
	out = append(out, common.Ascii10(len(header))...)
	out = append(out, common.Ascii10(chunkBytes)...)
	out = append(out, vdp...)
	out = append(out, header...)
	return out
}

func unpackFileMetadata(inFile *os.File) (chunkBytes int, vdp, header []byte, err error) {
	fixed := make([]byte, fileMetadataFixedSize)
	if _, err := io.ReadFull(inFile, fixed); err != nil {
		return 0, nil, nil, err
	}
	hLen, err := parseAscii10(fixed[0:10])
	if err != nil {
		return 0, nil, nil, err
	}
	chunkBytes, err = parseAscii10(fixed[10:20])
	if err != nil {
		return 0, nil, nil, err
	}
	vdp = fixed[20:fileMetadataFixedSize]

	header = make([]byte, hLen)
	if hLen > 0 {
		if _, err := io.ReadFull(inFile, header); err != nil {
			return 0, nil, nil, err
		}
	}
	return chunkBytes, vdp, header, nil
}

func parseAscii10(b []byte) (int, error) {
	var n int
	if _, err := fmt.Sscanf(string(b), "%010d", &n); err != nil {
		return 0, err
	}
	return n, nil
}
