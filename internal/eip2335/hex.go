package eip2335

import "encoding/hex"

// EncodeHex lower-cases and hex-encodes b, with no "0x" prefix.
func EncodeHex(b []byte) string {
	return hex.EncodeToString(b)
}

// DecodeHex hex-decodes s, accepting either case, and fails with InvalidHex
// on odd length or non-hex characters.
func DecodeHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, NewError(InvalidHex, err)
	}
	return b, nil
}
