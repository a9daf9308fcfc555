// Package eip2335 implements the EIP-2335 BLS12-381 keystore format: password
// preprocessing, KDF dispatch, checksum verification and AES-128-CTR
// encryption/decryption of the wrapped secret key.
package eip2335

import "github.com/pkg/errors"

// Kind classifies an eip2335 failure so callers can report it without
// parsing error strings.
type Kind int

const (
	// Unknown is the zero value and should never be returned by this package.
	Unknown Kind = iota
	// InvalidHex is returned when a hex field fails to decode.
	InvalidHex
	// BadPasswordEncoding is returned when a password file is not valid UTF-8.
	BadPasswordEncoding
	// MalformedJSON is returned when the keystore envelope fails to parse.
	MalformedJSON
	// UnsupportedKeystoreVersion is returned for any version other than 4.
	UnsupportedKeystoreVersion
	// UnsupportedKdfFunction is returned for any kdf.function other than scrypt/pbkdf2.
	UnsupportedKdfFunction
	// UnsupportedCipherFunction is returned for any cipher.function other than aes-128-ctr.
	UnsupportedCipherFunction
	// UnsupportedChecksumFunction is returned for any checksum.function other than sha256.
	UnsupportedChecksumFunction
	// MissingKdfParams is returned when a required kdf parameter is absent.
	MissingKdfParams
	// MissingCipherParams is returned when a required cipher parameter is absent
	// or the IV is not 16 bytes.
	MissingCipherParams
	// InvalidKdfParameters is returned when kdf parameters fail their range
	// checks, and when the decoded cipher message is not 32 bytes.
	InvalidKdfParameters
	// DerivedKeyTooShort is returned when dklen is below the 32-byte minimum.
	DerivedKeyTooShort
	// BadPassword is returned when checksum verification fails.
	BadPassword
	// InvalidChecksumLength is returned when the checksum message is not 32 bytes.
	InvalidChecksumLength
)

// String names the error kind, used in log fields and wrapped error messages.
func (k Kind) String() string {
	switch k {
	case InvalidHex:
		return "InvalidHex"
	case BadPasswordEncoding:
		return "BadPasswordEncoding"
	case MalformedJSON:
		return "MalformedJson"
	case UnsupportedKeystoreVersion:
		return "UnsupportedKeystoreVersion"
	case UnsupportedKdfFunction:
		return "UnsupportedKdfFunction"
	case UnsupportedCipherFunction:
		return "UnsupportedCipherFunction"
	case UnsupportedChecksumFunction:
		return "UnsupportedChecksumFunction"
	case MissingKdfParams:
		return "MissingKdfParams"
	case MissingCipherParams:
		return "MissingCipherParams"
	case InvalidKdfParameters:
		return "InvalidKdfParameters"
	case DerivedKeyTooShort:
		return "DerivedKeyTooShort"
	case BadPassword:
		return "BadPassword"
	case InvalidChecksumLength:
		return "InvalidChecksumLength"
	default:
		return "Unknown"
	}
}

// Error wraps a Kind with the underlying cause, the way
// validator/keymanager.Kind pairs an enum with a String() method, extended
// here with an error so callers can classify failures with errors.As.
type Error struct {
	Kind  Kind
	cause error
}

// NewError builds an Error of the given kind wrapping cause.
func NewError(kind Kind, cause error) *Error {
	return &Error{Kind: kind, cause: cause}
}

// Errorf builds an Error of the given kind from a format string.
func Errorf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, cause: errors.Errorf(format, args...)}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.cause.Error()
}

// Unwrap exposes the underlying cause for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.cause
}
