package eip2335

import (
	"crypto/aes"
	"crypto/cipher"
)

// ivLen is the fixed AES-CTR counter length EIP-2335 requires.
const ivLen = 16

// aesKeyLen is dk[0:16], the AES-128 key half of the derived key.
const aesKeyLen = 16

// CryptCTR runs AES-128-CTR with key dk[0:16] and the given iv over data.
// CTR is its own inverse, so this same function both encrypts the plaintext
// secret and decrypts the stored ciphertext; the pipeline picks the
// direction by what it passes in.
func CryptCTR(dk, iv, data []byte) ([]byte, error) {
	if len(dk) < minDerivedKeyLen {
		return nil, Errorf(DerivedKeyTooShort, "derived key is %d bytes, need at least %d", len(dk), minDerivedKeyLen)
	}
	if len(iv) != ivLen {
		return nil, Errorf(MissingCipherParams, "iv is %d bytes, want %d", len(iv), ivLen)
	}

	block, err := aes.NewCipher(dk[:aesKeyLen])
	if err != nil {
		return nil, NewError(InvalidKdfParameters, err)
	}

	out := make([]byte, len(data))
	stream := cipher.NewCTR(block, iv)
	stream.XORKeyStream(out, data)
	return out, nil
}
