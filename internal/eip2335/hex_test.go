package eip2335

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHexRoundTrip(t *testing.T) {
	cases := [][]byte{
		{},
		{0x00},
		{0xde, 0xad, 0xbe, 0xef},
		make([]byte, 32),
	}
	for _, b := range cases {
		s := EncodeHex(b)
		decoded, err := DecodeHex(s)
		require.NoError(t, err)
		require.Equal(t, b, decoded)
	}
}

func TestDecodeHexCaseInsensitive(t *testing.T) {
	lower, err := DecodeHex("deadbeef")
	require.NoError(t, err)
	upper, err := DecodeHex("DEADBEEF")
	require.NoError(t, err)
	require.Equal(t, lower, upper)
	require.Equal(t, "deadbeef", EncodeHex(upper))
}

func TestDecodeHexInvalid(t *testing.T) {
	_, err := DecodeHex("abc")
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, InvalidHex, e.Kind)

	_, err = DecodeHex("zz")
	require.Error(t, err)
}
