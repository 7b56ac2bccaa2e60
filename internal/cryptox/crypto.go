// Package cryptox implements the crypto primitives used to seal locally
// cached account credentials at rest: argon2id key derivation from the
// current bearer token plus AES-GCM for the ciphertext itself.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
)

// KeyFromToken derives a 32-byte AES key from the bearer token and a salt
// using argon2id. The same (token, salt) pair always yields the same key,
// so a rotated token simply fails to open previously sealed data.
func KeyFromToken(token string, salt []byte) []byte {
	return deriveKey([]byte(token), salt)
}

// Seal encrypts plaintext with AES-256-GCM under key. A fresh 12-byte nonce
// is generated per call and returned alongside the ciphertext.
func Seal(plaintext, key []byte) (ciphertext, nonce []byte, err error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}

	nonce = make([]byte, aesgcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, err
	}

	ciphertext = aesgcm.Seal(nil, nonce, plaintext, nil)
	return ciphertext, nonce, nil
}

// Open decrypts ciphertext produced by Seal. It fails if the key or nonce
// does not match, or if the ciphertext was tampered with.
func Open(ciphertext, nonce, key []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	return aesgcm.Open(nil, nonce, ciphertext, nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
