/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

// errors_test.go: error-path tests exercising KryptonFile through the
// top-level quantcrypt facade.
package quantcrypt_test

import (
	"context"
	"crypto/rand"
	"os"
	"path/filepath"
	"testing"

	"quantcrypt"
)

func writeTestFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	return path
}

func randomKey(t *testing.T, n int) []byte {
	t.Helper()
	key := make([]byte, n)
	if _, err := rand.Read(key); err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	return key
}

func TestEncryptFile_InvalidKeyLength(t *testing.T) {
	tmpDir := t.TempDir()
	srcPath := writeTestFile(t, tmpDir, "test.txt", []byte("test data"))
	encPath := filepath.Join(tmpDir, "test.txt.enc")

	wrongKey := randomKey(t, 16) // KryptonFile requires 64 bytes
	kf := quantcrypt.NewKryptonFile(wrongKey, nil, nil, nil)
	if err := kf.Encrypt(context.Background(), srcPath, encPath, nil); err == nil {
		t.Fatal("expected Encrypt to fail with invalid key length")
	}
}

func TestDecryptFile_WrongKey(t *testing.T) {
	tmpDir := t.TempDir()
	srcPath := writeTestFile(t, tmpDir, "test.txt", []byte("test data"))
	encPath := filepath.Join(tmpDir, "test.txt.enc")
	decPath := filepath.Join(tmpDir, "test.txt.dec")

	key := randomKey(t, 64)
	wrongKey := randomKey(t, 64)

	kf := quantcrypt.NewKryptonFile(key, nil, nil, nil)
	if err := kf.Encrypt(context.Background(), srcPath, encPath, nil); err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	wrongKf := quantcrypt.NewKryptonFile(wrongKey, nil, nil, nil)
	if _, err := wrongKf.Decrypt(context.Background(), encPath, decPath); err == nil {
		t.Fatal("expected Decrypt to fail with wrong key")
	}
}

func TestDecryptFile_CorruptedData(t *testing.T) {
	tmpDir := t.TempDir()
	srcPath := writeTestFile(t, tmpDir, "test.txt", []byte("test data"))
	encPath := filepath.Join(tmpDir, "test.txt.enc")
	decPath := filepath.Join(tmpDir, "test.txt.dec")

	key := randomKey(t, 64)
	kf := quantcrypt.NewKryptonFile(key, nil, nil, nil)
	if err := kf.Encrypt(context.Background(), srcPath, encPath, nil); err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	encData, err := os.ReadFile(encPath)
	if err != nil {
		t.Fatalf("failed to read encrypted file: %v", err)
	}
	encData[len(encData)-1] ^= 0xff // flip the last byte of the last ciphertext chunk
	if err := os.WriteFile(encPath, encData, 0o600); err != nil {
		t.Fatalf("failed to write corrupted file: %v", err)
	}

	if _, err := kf.Decrypt(context.Background(), encPath, decPath); err == nil {
		t.Fatal("expected Decrypt to fail with corrupted data")
	}
}

func TestDecryptFile_TamperedVDP(t *testing.T) {
	tmpDir := t.TempDir()
	srcPath := writeTestFile(t, tmpDir, "test.txt", []byte("test data"))
	encPath := filepath.Join(tmpDir, "test.txt.enc")
	decPath := filepath.Join(tmpDir, "test.txt.dec")

	key := randomKey(t, 64)
	kf := quantcrypt.NewKryptonFile(key, nil, nil, nil)
	if err := kf.Encrypt(context.Background(), srcPath, encPath, nil); err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	encData, err := os.ReadFile(encPath)
	if err != nil {
		t.Fatalf("failed to read encrypted file: %v", err)
	}
	// The VDP occupies bytes [20:180); flip one of its bytes.
	encData[30] ^= 0xff
	if err := os.WriteFile(encPath, encData, 0o600); err != nil {
		t.Fatalf("failed to write corrupted file: %v", err)
	}

	if _, err := kf.Decrypt(context.Background(), encPath, decPath); err == nil {
		t.Fatal("expected Decrypt to fail with a tampered verification data packet")
	}
}

func TestEncryptFile_ContextCancellation(t *testing.T) {
	tmpDir := t.TempDir()
	testData := make([]byte, 10*1024*1024) // 10MB, large enough to span several chunks
	srcPath := writeTestFile(t, tmpDir, "test.bin", testData)
	encPath := filepath.Join(tmpDir, "test.bin.enc")

	key := randomKey(t, 64)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	kf := quantcrypt.NewKryptonFile(key, nil, nil, nil)
	if err := kf.Encrypt(ctx, srcPath, encPath, nil); err == nil {
		t.Fatal("expected Encrypt to fail with a canceled context")
	}
}

func TestEncryptFile_NonExistentSource(t *testing.T) {
	tmpDir := t.TempDir()
	srcPath := filepath.Join(tmpDir, "nonexistent.txt")
	encPath := filepath.Join(tmpDir, "output.enc")

	key := randomKey(t, 64)
	kf := quantcrypt.NewKryptonFile(key, nil, nil, nil)
	if err := kf.Encrypt(context.Background(), srcPath, encPath, nil); err == nil {
		t.Fatal("expected Encrypt to fail for a non-existent source file")
	}
}

func TestDecryptFile_NonExistentSource(t *testing.T) {
	tmpDir := t.TempDir()
	encPath := filepath.Join(tmpDir, "nonexistent.enc")
	decPath := filepath.Join(tmpDir, "output.txt")

	key := randomKey(t, 64)
	kf := quantcrypt.NewKryptonFile(key, nil, nil, nil)
	if _, err := kf.Decrypt(context.Background(), encPath, decPath); err == nil {
		t.Fatal("expected Decrypt to fail for a non-existent encrypted file")
	}
}
