package pipeline

import (
	"testing"

	"github.com/prysmaticlabs/prysm-keystore-convert/internal/eip2335"
	"github.com/stretchr/testify/require"
)

// buildKeystoreBytes encrypts secret under password using pbkdf2 with small,
// test-only parameters and returns the serialized EIP-2335 envelope bytes.
func buildKeystoreBytes(t *testing.T, password, secret []byte) []byte {
	t.Helper()

	salt := make([]byte, 32)
	for i := range salt {
		salt[i] = byte(i + 1)
	}
	iv := make([]byte, 16)
	for i := range iv {
		iv[i] = byte(i + 2)
	}

	params := &eip2335.Pbkdf2Params{Dklen: 32, C: 4, Prf: "hmac-sha256", Salt: eip2335.EncodeHex(salt)}
	processed, err := eip2335.PreprocessPassword(password)
	require.NoError(t, err)

	dk, err := params.Derive(processed)
	require.NoError(t, err)

	ciphertext, err := eip2335.CryptCTR(dk, iv, secret)
	require.NoError(t, err)

	checksum, err := eip2335.ComputeChecksum(dk, ciphertext)
	require.NoError(t, err)

	env := &eip2335.Envelope{
		Crypto: eip2335.Crypto{
			Kdf:      eip2335.Kdf{Function: eip2335.KdfPbkdf2, Params: params},
			Checksum: eip2335.Checksum{Function: "sha256", Message: eip2335.EncodeHex(checksum)},
			Cipher:   eip2335.Cipher{Function: "aes-128-ctr", IV: eip2335.EncodeHex(iv), Message: eip2335.EncodeHex(ciphertext)},
		},
		Pubkey:  "ab",
		Path:    "m/12381/3600/0/0/0",
		UUID:    "00000000-0000-4000-8000-000000000000",
		Version: 4,
	}

	serialized, err := env.Serialize()
	require.NoError(t, err)
	return serialized
}
