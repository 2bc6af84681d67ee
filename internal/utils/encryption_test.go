package utils

import (
	"testing"
)

func TestAESGCMEncryptionDecryption(t *testing.T) {
	encryptionKey := make([]byte, 32) // exactly 32 bytes
	for i := 0; i < 32; i++ {
		encryptionKey[i] = byte(i)
	}

	plaintext := "+12565550101"

	ciphertext, err := Encrypt(encryptionKey, plaintext)
	if err != nil {
		t.Fatalf("Encrypt returned error: %v", err)
	}
	if ciphertext == plaintext {
		t.Fatal("Ciphertext should differ from plaintext")
	}

	decrypted, err := Decrypt(encryptionKey, ciphertext)
	if err != nil {
		t.Fatalf("Decrypt returned error: %v", err)
	}

	if decrypted != plaintext {
		t.Fatalf("Expected decrypted text '%s', got '%s'", plaintext, decrypted)
	}
}

func TestAESGCMNonceRandomization(t *testing.T) {
	encryptionKey := make([]byte, 32)
	for i := 0; i < 32; i++ {
		encryptionKey[i] = byte(i)
	}

	a, err := Encrypt(encryptionKey, "same input")
	if err != nil {
		t.Fatalf("Encrypt returned error: %v", err)
	}
	b, err := Encrypt(encryptionKey, "same input")
	if err != nil {
		t.Fatalf("Encrypt returned error: %v", err)
	}
	if a == b {
		t.Fatal("Two encryptions of the same plaintext must not produce identical ciphertexts")
	}
}

func TestAESGCMInvalidKey(t *testing.T) {
	shortKey := []byte("not-32-bytes")
	_, err := Encrypt(shortKey, "some text")
	if err == nil {
		t.Fatal("Expected error with invalid key length, got no error")
	}

	_, err = Decrypt(shortKey, "some ciphertext")
	if err == nil {
		t.Fatal("Expected error with invalid key length, got no error")
	}
}

func TestAESGCMWrongKeyFailsToDecrypt(t *testing.T) {
	keyA := make([]byte, 32)
	keyB := make([]byte, 32)
	for i := 0; i < 32; i++ {
		keyA[i] = byte(i)
		keyB[i] = byte(31 - i)
	}

	ciphertext, err := Encrypt(keyA, "secret")
	if err != nil {
		t.Fatalf("Encrypt returned error: %v", err)
	}
	if _, err := Decrypt(keyB, ciphertext); err == nil {
		t.Fatal("Expected decryption with the wrong key to fail")
	}
}
