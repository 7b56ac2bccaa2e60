package cryptox

import "golang.org/x/crypto/argon2"

// argon2id parameters: 1 pass, 64 MiB memory, 4 lanes, 32-byte key.
// Interactive-grade settings; the key protects a local read cache, not the
// backend credential itself.
func deriveKey(secret, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, 32)
}
