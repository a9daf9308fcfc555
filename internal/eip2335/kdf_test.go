package eip2335

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPbkdf2DeriveLength(t *testing.T) {
	p := &Pbkdf2Params{Dklen: 32, C: 4, Prf: "hmac-sha256", Salt: EncodeHex([]byte("salt1234salt1234"))}
	dk, err := p.Derive([]byte("password"))
	require.NoError(t, err)
	require.Len(t, dk, 32)
}

func TestPbkdf2RejectsBadPrf(t *testing.T) {
	p := &Pbkdf2Params{Dklen: 32, C: 4, Prf: "hmac-sha512", Salt: EncodeHex([]byte("salt"))}
	_, err := p.Derive([]byte("password"))
	requireKind(t, err, InvalidKdfParameters)
}

func TestPbkdf2RejectsZeroIterations(t *testing.T) {
	p := &Pbkdf2Params{Dklen: 32, C: 0, Prf: "hmac-sha256", Salt: EncodeHex([]byte("salt"))}
	_, err := p.Derive([]byte("password"))
	requireKind(t, err, InvalidKdfParameters)
}

func TestPbkdf2RejectsShortDklen(t *testing.T) {
	p := &Pbkdf2Params{Dklen: 16, C: 4, Prf: "hmac-sha256", Salt: EncodeHex([]byte("salt"))}
	_, err := p.Derive([]byte("password"))
	requireKind(t, err, DerivedKeyTooShort)
}

func TestScryptDeriveLength(t *testing.T) {
	p := &ScryptParams{Dklen: 32, N: 8, R: 1, P: 1, Salt: EncodeHex([]byte("salt1234salt1234"))}
	dk, err := p.Derive([]byte("password"))
	require.NoError(t, err)
	require.Len(t, dk, 32)
}

func TestScryptRejectsNonPowerOfTwoN(t *testing.T) {
	p := &ScryptParams{Dklen: 32, N: 6, R: 1, P: 1, Salt: EncodeHex([]byte("salt"))}
	_, err := p.Derive([]byte("password"))
	requireKind(t, err, InvalidKdfParameters)
}

func TestScryptRejectsNTooSmall(t *testing.T) {
	p := &ScryptParams{Dklen: 32, N: 1, R: 1, P: 1, Salt: EncodeHex([]byte("salt"))}
	_, err := p.Derive([]byte("password"))
	requireKind(t, err, InvalidKdfParameters)
}

func TestScryptRejectsShortDklen(t *testing.T) {
	p := &ScryptParams{Dklen: 31, N: 8, R: 1, P: 1, Salt: EncodeHex([]byte("salt"))}
	_, err := p.Derive([]byte("password"))
	requireKind(t, err, DerivedKeyTooShort)
}

func TestDeriveIsDeterministicInSaltAndPassword(t *testing.T) {
	salt := EncodeHex([]byte("fixed-salt-16byt"))
	p1 := &Pbkdf2Params{Dklen: 32, C: 8, Prf: "hmac-sha256", Salt: salt}
	p2 := &Pbkdf2Params{Dklen: 32, C: 8, Prf: "hmac-sha256", Salt: salt}

	dk1, err := p1.Derive([]byte("same password"))
	require.NoError(t, err)
	dk2, err := p2.Derive([]byte("same password"))
	require.NoError(t, err)
	require.True(t, bytes.Equal(dk1, dk2))
}

func requireKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, kind, e.Kind)
}
