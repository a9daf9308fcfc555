package eip2335

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// PreprocessPassword canonicalizes raw password-file bytes per EIP-2335:
// NFKD-normalize, then strip every C0, Delete and C1 control code point.
// Leading/trailing whitespace is intentionally left untouched.
func PreprocessPassword(raw []byte) ([]byte, error) {
	if !utf8.Valid(raw) {
		return nil, Errorf(BadPasswordEncoding, "password is not valid utf-8")
	}

	normalized := norm.NFKD.String(string(raw))

	cleaned := make([]rune, 0, len(normalized))
	for _, r := range normalized {
		if isControlCodePoint(r) {
			continue
		}
		cleaned = append(cleaned, r)
	}

	return []byte(string(cleaned)), nil
}

// isControlCodePoint reports whether r falls in the C0, Delete or C1 ranges
// that EIP-2335 requires stripped from the normalized password.
func isControlCodePoint(r rune) bool {
	switch {
	case r >= 0x00 && r <= 0x1F: // C0
		return true
	case r == 0x7F: // Delete
		return true
	case r >= 0x80 && r <= 0x9F: // C1
		return true
	default:
		return false
	}
}
