package eip2335

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCryptCTRIsSelfInverse(t *testing.T) {
	dk := make([]byte, 32)
	for i := range dk {
		dk[i] = byte(i + 1)
	}
	iv := make([]byte, 16)
	for i := range iv {
		iv[i] = byte(i)
	}
	plaintext := []byte("thirty-two byte secret material!")
	require.Len(t, plaintext, 32)

	ciphertext, err := CryptCTR(dk, iv, plaintext)
	require.NoError(t, err)
	require.False(t, bytes.Equal(ciphertext, plaintext))

	decrypted, err := CryptCTR(dk, iv, ciphertext)
	require.NoError(t, err)
	require.Equal(t, plaintext, decrypted)
}

func TestCryptCTRRejectsBadIVLength(t *testing.T) {
	dk := make([]byte, 32)
	_, err := CryptCTR(dk, []byte{1, 2, 3}, []byte("data"))
	requireKind(t, err, MissingCipherParams)
}
