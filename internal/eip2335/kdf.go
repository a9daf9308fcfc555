package eip2335

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

// KdfFunction names one of the two KDFs EIP-2335 allows.
type KdfFunction string

const (
	// KdfPbkdf2 selects PBKDF2-HMAC-SHA256.
	KdfPbkdf2 KdfFunction = "pbkdf2"
	// KdfScrypt selects scrypt.
	KdfScrypt KdfFunction = "scrypt"
)

// minDerivedKeyLen is the downstream split's requirement: 16 bytes of AES-128
// key followed by 16 bytes of checksum key.
const minDerivedKeyLen = 32

// KdfParams is the sum type over {Pbkdf2Params, ScryptParams}. It is modeled
// as an interface rather than an all-fields-optional struct so the two
// parameter sets stay disjoint, per the "KDF variant" design note: an
// untagged merge would let a malformed envelope mix pbkdf2 and scrypt
// fields and still parse.
type KdfParams interface {
	// Function reports which KDF this parameter set belongs to.
	Function() KdfFunction
	// Derive runs the KDF over password, returning a DklenBytes()-length key.
	Derive(password []byte) ([]byte, error)
	// DklenBytes returns the configured output length.
	DklenBytes() uint32
	// SaltHex returns the raw hex-encoded salt as stored in the envelope.
	SaltHex() string
}

// Pbkdf2Params is the `crypto.kdf.params` shape when function == "pbkdf2".
type Pbkdf2Params struct {
	Dklen uint32
	C     uint32
	Prf   string
	Salt  string
}

// Function implements KdfParams.
func (p *Pbkdf2Params) Function() KdfFunction { return KdfPbkdf2 }

// DklenBytes implements KdfParams.
func (p *Pbkdf2Params) DklenBytes() uint32 { return p.Dklen }

// SaltHex implements KdfParams.
func (p *Pbkdf2Params) SaltHex() string { return p.Salt }

// Derive implements KdfParams for PBKDF2-HMAC-SHA256.
func (p *Pbkdf2Params) Derive(password []byte) ([]byte, error) {
	if p.Prf != "hmac-sha256" {
		return nil, Errorf(InvalidKdfParameters, "unsupported prf %q", p.Prf)
	}
	if p.C < 1 {
		return nil, Errorf(InvalidKdfParameters, "pbkdf2 iteration count must be >= 1, got %d", p.C)
	}
	if p.Dklen < minDerivedKeyLen {
		return nil, Errorf(DerivedKeyTooShort, "pbkdf2 dklen %d is below the required %d bytes", p.Dklen, minDerivedKeyLen)
	}
	salt, err := DecodeHex(p.Salt)
	if err != nil {
		return nil, err
	}
	return pbkdf2.Key(password, salt, int(p.C), int(p.Dklen), sha256.New), nil
}

// ScryptParams is the `crypto.kdf.params` shape when function == "scrypt".
type ScryptParams struct {
	Dklen uint32
	N     uint32
	R     uint32
	P     uint32
	Salt  string
}

// Function implements KdfParams.
func (p *ScryptParams) Function() KdfFunction { return KdfScrypt }

// DklenBytes implements KdfParams.
func (p *ScryptParams) DklenBytes() uint32 { return p.Dklen }

// SaltHex implements KdfParams.
func (p *ScryptParams) SaltHex() string { return p.Salt }

// Derive implements KdfParams for scrypt.
func (p *ScryptParams) Derive(password []byte) ([]byte, error) {
	if p.N < 2 || !isPowerOfTwo(p.N) {
		return nil, Errorf(InvalidKdfParameters, "scrypt n must be a power of two >= 2, got %d", p.N)
	}
	if p.R < 1 {
		return nil, Errorf(InvalidKdfParameters, "scrypt r must be >= 1, got %d", p.R)
	}
	if p.P < 1 {
		return nil, Errorf(InvalidKdfParameters, "scrypt p must be >= 1, got %d", p.P)
	}
	if p.Dklen < minDerivedKeyLen {
		return nil, Errorf(DerivedKeyTooShort, "scrypt dklen %d is below the required %d bytes", p.Dklen, minDerivedKeyLen)
	}
	salt, err := DecodeHex(p.Salt)
	if err != nil {
		return nil, err
	}
	dk, err := scrypt.Key(password, salt, int(p.N), int(p.R), int(p.P), int(p.Dklen))
	if err != nil {
		return nil, NewError(InvalidKdfParameters, err)
	}
	return dk, nil
}

func isPowerOfTwo(n uint32) bool {
	return n != 0 && n&(n-1) == 0
}
