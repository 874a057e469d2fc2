/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

package cipher

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestKryptonFileEncryptDecryptRoundTrip(t *testing.T) {
	dir := t.TempDir()
	plaintext := make([]byte, 16*1024) // exercises the default 4 KiB bucket
	if _, err := rand.Read(plaintext); err != nil {
		t.Fatalf("rand.Read failed: %v", err)
	}
	plaintextPath := filepath.Join(dir, "plain.bin")
	if err := os.WriteFile(plaintextPath, plaintext, 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	var callbacks int
	kf := NewKryptonFile(repeatedKey(), []byte("ctx"), nil, func() { callbacks++ })

	encryptedPath := filepath.Join(dir, "plain.enc")
	header := []byte("example header")
	if err := kf.Encrypt(context.Background(), plaintextPath, encryptedPath, header); err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if callbacks == 0 {
		t.Fatal("expected at least one progress callback during encryption")
	}

	gotHeader, err := ReadFileHeader(encryptedPath)
	if err != nil {
		t.Fatalf("ReadFileHeader failed: %v", err)
	}
	if !bytes.Equal(gotHeader, header) {
		t.Fatalf("ReadFileHeader = %q, want %q", gotHeader, header)
	}

	decryptedPath := filepath.Join(dir, "plain.dec")
	data, err := kf.Decrypt(context.Background(), encryptedPath, decryptedPath)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if !bytes.Equal(data.Header, header) {
		t.Fatalf("decrypted header = %q, want %q", data.Header, header)
	}
	got, err := os.ReadFile(decryptedPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatal("decrypted file does not match original plaintext")
	}
}

func TestKryptonFileDecryptIntoMemory(t *testing.T) {
	dir := t.TempDir()
	plaintext := []byte("a small secret note")
	plaintextPath := filepath.Join(dir, "note.txt")
	if err := os.WriteFile(plaintextPath, plaintext, 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	kf := NewKryptonFile(repeatedKey(), nil, nil, nil)
	encryptedPath := filepath.Join(dir, "note.enc")
	if err := kf.Encrypt(context.Background(), plaintextPath, encryptedPath, nil); err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	data, err := kf.DecryptIntoMemory(context.Background(), encryptedPath)
	if err != nil {
		t.Fatalf("DecryptIntoMemory failed: %v", err)
	}
	if !bytes.Equal(data.Plaintext, plaintext) {
		t.Fatal("decrypted plaintext does not match original")
	}
}

// TestKryptonFileChunkSizeFormula checks the file-size on the wire
// against the spec's formula: 180 + len(header) + (cs+1)*ceil(len(p)/cs).
// A plaintext that is an exact multiple of cs reads as N full
// chunk-sized reads with no short final read, so it emits exactly N
// chunks (each still padded by one ISO/IEC 7816-4 marker byte to
// cs+1) — not an extra trailing chunk.
func TestKryptonFileChunkSizeFormula(t *testing.T) {
	dir := t.TempDir()
	cs, err := ChunkSizeKB(1)
	if err != nil {
		t.Fatalf("ChunkSizeKB failed: %v", err)
	}
	plaintext := bytes.Repeat([]byte("a"), cs.Bytes*3) // exact multiple
	plaintextPath := filepath.Join(dir, "exact.bin")
	if err := os.WriteFile(plaintextPath, plaintext, 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	kf := NewKryptonFile(repeatedKey(), nil, &cs, nil)
	encryptedPath := filepath.Join(dir, "exact.enc")
	header := []byte("hdr")
	if err := kf.Encrypt(context.Background(), plaintextPath, encryptedPath, header); err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	info, err := os.Stat(encryptedPath)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	numChunks := len(plaintext) / cs.Bytes
	want := int64(180 + len(header) + numChunks*(cs.Bytes+1))
	if info.Size() != want {
		t.Fatalf("encrypted file size = %d, want %d", info.Size(), want)
	}
}

// TestKryptonFileEmptyPlaintextEmitsOneChunk confirms an empty input
// file still round-trips: the ISO/IEC 7816-4 scheme always emits the
// padding-marker chunk, even when there is zero plaintext to carry.
func TestKryptonFileEmptyPlaintextEmitsOneChunk(t *testing.T) {
	dir := t.TempDir()
	plaintextPath := filepath.Join(dir, "empty.bin")
	if err := os.WriteFile(plaintextPath, nil, 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	kf := NewKryptonFile(repeatedKey(), nil, nil, nil)
	encryptedPath := filepath.Join(dir, "empty.enc")
	if err := kf.Encrypt(context.Background(), plaintextPath, encryptedPath, nil); err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	data, err := kf.DecryptIntoMemory(context.Background(), encryptedPath)
	if err != nil {
		t.Fatalf("DecryptIntoMemory failed: %v", err)
	}
	if len(data.Plaintext) != 0 {
		t.Fatalf("decrypted plaintext = %q, want empty", data.Plaintext)
	}
}

func TestKryptonFileTamperedChunkFailsOnFinish(t *testing.T) {
	dir := t.TempDir()
	plaintext := bytes.Repeat([]byte("tamper me"), 500)
	plaintextPath := filepath.Join(dir, "plain.bin")
	if err := os.WriteFile(plaintextPath, plaintext, 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	kf := NewKryptonFile(repeatedKey(), nil, nil, nil)
	encryptedPath := filepath.Join(dir, "plain.enc")
	if err := kf.Encrypt(context.Background(), plaintextPath, encryptedPath, nil); err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	raw, err := os.ReadFile(encryptedPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	raw[len(raw)-1] ^= 0xFF
	if err := os.WriteFile(encryptedPath, raw, 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	decryptedPath := filepath.Join(dir, "plain.dec")
	if _, err := kf.Decrypt(context.Background(), encryptedPath, decryptedPath); err == nil {
		t.Fatal("expected tampered ciphertext chunk to fail verification")
	}
}

func TestKryptonFileMissingInputReturnsError(t *testing.T) {
	dir := t.TempDir()
	kf := NewKryptonFile(repeatedKey(), nil, nil, nil)
	err := kf.Encrypt(context.Background(), filepath.Join(dir, "does-not-exist"), filepath.Join(dir, "out"), nil)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Encrypt error = %v, want a not-exist error", err)
	}
	if strings.Contains(err.Error(), dir) {
		t.Fatalf("Encrypt error leaked the local path: %v", err)
	}
}
