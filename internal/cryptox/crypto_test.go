package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zoowayss/cursorpool/internal/common"
)

func TestKeyFromToken_Deterministic(t *testing.T) {
	salt := common.GenerateRandByteArray(32)

	k1 := KeyFromToken("tok-abc", salt)
	k2 := KeyFromToken("tok-abc", salt)
	require.Equal(t, k1, k2)
	require.Len(t, k1, 32)
}

func TestKeyFromToken_DiffersByTokenAndSalt(t *testing.T) {
	salt := common.GenerateRandByteArray(32)
	otherSalt := common.GenerateRandByteArray(32)

	base := KeyFromToken("tok-abc", salt)
	require.NotEqual(t, base, KeyFromToken("tok-xyz", salt))
	require.NotEqual(t, base, KeyFromToken("tok-abc", otherSalt))
}

func TestSealOpen_RoundTrip(t *testing.T) {
	key := KeyFromToken("tok-abc", common.GenerateRandByteArray(32))
	plaintext := []byte("hunter2")

	ciphertext, nonce, err := Seal(plaintext, key)
	require.NoError(t, err)
	require.NotEqual(t, plaintext, ciphertext)

	got, err := Open(ciphertext, nonce, key)
	require.NoError(t, err)
	require.Equal(t, plaintext, got)
}

func TestOpen_WrongKeyFails(t *testing.T) {
	salt := common.GenerateRandByteArray(32)
	key := KeyFromToken("tok-abc", salt)
	otherKey := KeyFromToken("tok-rotated", salt)

	ciphertext, nonce, err := Seal([]byte("secret"), key)
	require.NoError(t, err)

	_, err = Open(ciphertext, nonce, otherKey)
	require.Error(t, err)
}

func TestOpen_TamperedCiphertextFails(t *testing.T) {
	key := KeyFromToken("tok-abc", common.GenerateRandByteArray(32))

	ciphertext, nonce, err := Seal([]byte("secret"), key)
	require.NoError(t, err)

	ciphertext[0] ^= 0xff
	_, err = Open(ciphertext, nonce, key)
	require.Error(t, err)
}

func TestSeal_FreshNoncePerCall(t *testing.T) {
	key := KeyFromToken("tok-abc", common.GenerateRandByteArray(32))

	_, n1, err := Seal([]byte("x"), key)
	require.NoError(t, err)
	_, n2, err := Seal([]byte("x"), key)
	require.NoError(t, err)
	require.NotEqual(t, n1, n2)
}
