package eip2335

import (
	"crypto/sha256"
	"crypto/subtle"
)

// checksumLen is the fixed length of checksum.message per EIP-2335.
const checksumLen = 32

// VerifyChecksum recomputes SHA-256(dk[16:32] || cipherMessage) and compares
// it, constant-time, against the stored checksum. A mismatch always means
// "wrong password", never "corrupt keystore": the checksum's only job in
// EIP-2335 is password validation.
func VerifyChecksum(dk, cipherMessage, storedChecksum []byte) error {
	if len(dk) < minDerivedKeyLen {
		return Errorf(DerivedKeyTooShort, "derived key is %d bytes, need at least %d", len(dk), minDerivedKeyLen)
	}
	if len(storedChecksum) != checksumLen {
		return Errorf(InvalidChecksumLength, "checksum message is %d bytes, want %d", len(storedChecksum), checksumLen)
	}

	preimage := append(append([]byte{}, dk[16:32]...), cipherMessage...)
	defer Zero(preimage)
	computed := sha256.Sum256(preimage)

	if subtle.ConstantTimeCompare(computed[:], storedChecksum) != 1 {
		return NewError(BadPassword, nil)
	}
	return nil
}

// ComputeChecksum computes SHA-256(dk[16:32] || cipherMessage) for a freshly
// re-encrypted envelope.
func ComputeChecksum(dk, cipherMessage []byte) ([]byte, error) {
	if len(dk) < minDerivedKeyLen {
		return nil, Errorf(DerivedKeyTooShort, "derived key is %d bytes, need at least %d", len(dk), minDerivedKeyLen)
	}
	preimage := append(append([]byte{}, dk[16:32]...), cipherMessage...)
	defer Zero(preimage)
	sum := sha256.Sum256(preimage)
	return sum[:], nil
}
