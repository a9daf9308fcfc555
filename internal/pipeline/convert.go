package pipeline

import (
	"crypto/rand"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-keystore-convert/internal/eip2335"
)

// ErrMissingKeystoreFile is returned when a pair's keystore file cannot be read.
var ErrMissingKeystoreFile = errors.New("missing keystore file")

// ErrMissingPasswordFile is returned when a pair's password file cannot be read.
var ErrMissingPasswordFile = errors.New("missing password file")

// ErrReadFailed wraps any other I/O failure while reading a pair's inputs.
var ErrReadFailed = errors.New("read failed")

// ErrWriteFailed wraps any I/O failure while writing a converted keystore.
var ErrWriteFailed = errors.New("write failed")

const saltLen = 32

// ConvertKeystore runs the full transaction described in SPEC_FULL.md/§4.7
// over a single (keystore, password) byte pair and returns the
// re-encrypted envelope's serialized bytes. The preprocessed password, both
// derived keys, the checksum preimages and the decrypted secret are zeroized
// before this function returns, on every exit path, per the secret-hygiene
// design note. The string and rune copies PreprocessPassword builds while
// normalizing are not wiped, and passwordBytes itself is left to the caller.
func ConvertKeystore(keystoreBytes, passwordBytes []byte, cfg Config) ([]byte, error) {
	env, err := eip2335.ParseEnvelope(keystoreBytes)
	if err != nil {
		return nil, err
	}

	pw, err := eip2335.PreprocessPassword(passwordBytes)
	if err != nil {
		return nil, err
	}
	defer eip2335.Zero(pw)

	dk, err := env.Crypto.Kdf.Params.Derive(pw)
	if err != nil {
		return nil, err
	}
	defer eip2335.Zero(dk)

	cipherMessage, err := env.DecodedCipherMessage()
	if err != nil {
		return nil, err
	}
	checksum, err := env.DecodedChecksum()
	if err != nil {
		return nil, err
	}
	if err := eip2335.VerifyChecksum(dk, cipherMessage, checksum); err != nil {
		return nil, err
	}

	iv, err := env.DecodedCipherIV()
	if err != nil {
		return nil, err
	}
	secret, err := eip2335.CryptCTR(dk, iv, cipherMessage)
	if err != nil {
		return nil, err
	}
	defer eip2335.Zero(secret)

	newEnv, err := reencrypt(env, pw, secret, cfg)
	if err != nil {
		return nil, err
	}

	return newEnv.Serialize()
}

func reencrypt(env *eip2335.Envelope, pw, secret []byte, cfg Config) (*eip2335.Envelope, error) {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, errors.Wrap(err, "could not generate salt")
	}
	iv := make([]byte, ivLen)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, errors.Wrap(err, "could not generate iv")
	}

	newParams := cfg.newKdfParams(eip2335.EncodeHex(salt))
	dk, err := newParams.Derive(pw)
	if err != nil {
		return nil, err
	}
	defer eip2335.Zero(dk)

	ciphertext, err := eip2335.CryptCTR(dk, iv, secret)
	if err != nil {
		return nil, err
	}
	checksum, err := eip2335.ComputeChecksum(dk, ciphertext)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return nil, errors.Wrap(err, "could not generate uuid")
	}

	return &eip2335.Envelope{
		Crypto: eip2335.Crypto{
			Kdf: eip2335.Kdf{
				Function: newParams.Function(),
				Params:   newParams,
				Message:  "",
			},
			Checksum: eip2335.Checksum{
				Function: "sha256",
				Message:  eip2335.EncodeHex(checksum),
			},
			Cipher: eip2335.Cipher{
				Function: "aes-128-ctr",
				IV:       eip2335.EncodeHex(iv),
				Message:  eip2335.EncodeHex(ciphertext),
			},
		},
		Description: env.Description,
		Pubkey:      env.Pubkey,
		Path:        env.Path,
		UUID:        id.String(),
		Version:     4,
	}, nil
}

const ivLen = 16

// readPairInputs reads the keystore and password files for a pair,
// classifying not-found errors per the Input error kinds in SPEC_FULL.md/§7.
func readPairInputs(keystorePath, passwordPath string) (keystoreBytes, passwordBytes []byte, err error) {
	keystoreBytes, err = os.ReadFile(keystorePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.Wrapf(ErrMissingKeystoreFile, "%s", keystorePath)
		}
		return nil, nil, errors.Wrapf(ErrReadFailed, "%s: %v", keystorePath, err)
	}

	passwordBytes, err = os.ReadFile(passwordPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.Wrapf(ErrMissingPasswordFile, "%s", passwordPath)
		}
		return nil, nil, errors.Wrapf(ErrReadFailed, "%s: %v", passwordPath, err)
	}

	return keystoreBytes, passwordBytes, nil
}
