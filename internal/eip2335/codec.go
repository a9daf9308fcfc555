package eip2335

import "encoding/json"

// keystoreVersion is the only version this package accepts.
const keystoreVersion = 4

// secretLen is the fixed length of the wrapped BLS12-381 secret key.
const secretLen = 32

// Envelope is the EIP-2335 keystore JSON document (§3), generalizing the
// teacher's `validator/keymanager.Keystore` (whose `Crypto` field is a bare
// `map[string]interface{}`) into named, typed fields so the pipeline can
// rebuild and re-serialize an envelope instead of only reading it.
type Envelope struct {
	Crypto      Crypto `json:"crypto"`
	Description string `json:"description,omitempty"`
	Pubkey      string `json:"pubkey"`
	Path        string `json:"path"`
	UUID        string `json:"uuid"`
	Version     uint   `json:"version"`
}

// Crypto is the `crypto` subrecord (§3).
type Crypto struct {
	Kdf      Kdf      `json:"kdf"`
	Checksum Checksum `json:"checksum"`
	Cipher   Cipher   `json:"cipher"`
}

// Kdf is the `crypto.kdf` record, carrying the scrypt|pbkdf2 variant.
type Kdf struct {
	Function KdfFunction
	Params   KdfParams
	Message  string
}

type kdfWire struct {
	Function string          `json:"function"`
	Params   json.RawMessage `json:"params"`
	Message  string          `json:"message"`
}

// UnmarshalJSON reads `function` first, then projects `params` into the
// matching parameter struct, per the "KDF variant" design note in SPEC_FULL.md.
func (k *Kdf) UnmarshalJSON(data []byte) error {
	var wire kdfWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return Errorf(MalformedJSON, "crypto.kdf: %v", err)
	}

	var paramsMap map[string]interface{}
	if len(wire.Params) > 0 {
		if err := json.Unmarshal(wire.Params, &paramsMap); err != nil {
			return Errorf(MalformedJSON, "crypto.kdf.params: %v", err)
		}
	}

	switch KdfFunction(wire.Function) {
	case KdfPbkdf2:
		p, err := parsePbkdf2Params(paramsMap)
		if err != nil {
			return err
		}
		k.Params = p
	case KdfScrypt:
		p, err := parseScryptParams(paramsMap)
		if err != nil {
			return err
		}
		k.Params = p
	default:
		return Errorf(UnsupportedKdfFunction, "unsupported kdf function %q", wire.Function)
	}

	k.Function = KdfFunction(wire.Function)
	k.Message = wire.Message
	return nil
}

// MarshalJSON serializes the Kdf back to its wire shape, projecting the
// concrete KdfParams implementation into a params object.
func (k Kdf) MarshalJSON() ([]byte, error) {
	var params map[string]interface{}
	switch p := k.Params.(type) {
	case *Pbkdf2Params:
		params = map[string]interface{}{
			"dklen": p.Dklen,
			"c":     p.C,
			"prf":   p.Prf,
			"salt":  p.Salt,
		}
	case *ScryptParams:
		params = map[string]interface{}{
			"dklen": p.Dklen,
			"n":     p.N,
			"r":     p.R,
			"p":     p.P,
			"salt":  p.Salt,
		}
	default:
		return nil, Errorf(UnsupportedKdfFunction, "kdf has no recognized params")
	}
	return json.Marshal(kdfWire{
		Function: string(k.Function),
		Params:   mustMarshal(params),
		Message:  k.Message,
	})
}

func mustMarshal(v interface{}) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		// params are always built from plain maps of strings/uints above;
		// a marshal failure here would indicate a programming error.
		panic(err)
	}
	return b
}

func paramString(m map[string]interface{}, key string) (string, error) {
	if m == nil {
		return "", Errorf(MissingKdfParams, "missing kdf param %q", key)
	}
	v, ok := m[key]
	if !ok {
		return "", Errorf(MissingKdfParams, "missing kdf param %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", Errorf(MissingKdfParams, "kdf param %q is not a string", key)
	}
	return s, nil
}

func paramUint(m map[string]interface{}, key string) (uint32, error) {
	if m == nil {
		return 0, Errorf(MissingKdfParams, "missing kdf param %q", key)
	}
	v, ok := m[key]
	if !ok {
		return 0, Errorf(MissingKdfParams, "missing kdf param %q", key)
	}
	f, ok := v.(float64)
	if !ok {
		return 0, Errorf(MissingKdfParams, "kdf param %q is not a number", key)
	}
	if f < 0 {
		return 0, Errorf(InvalidKdfParameters, "kdf param %q must be non-negative", key)
	}
	return uint32(f), nil
}

func parsePbkdf2Params(m map[string]interface{}) (*Pbkdf2Params, error) {
	dklen, err := paramUint(m, "dklen")
	if err != nil {
		return nil, err
	}
	c, err := paramUint(m, "c")
	if err != nil {
		return nil, err
	}
	prf, err := paramString(m, "prf")
	if err != nil {
		return nil, err
	}
	salt, err := paramString(m, "salt")
	if err != nil {
		return nil, err
	}
	return &Pbkdf2Params{Dklen: dklen, C: c, Prf: prf, Salt: salt}, nil
}

func parseScryptParams(m map[string]interface{}) (*ScryptParams, error) {
	dklen, err := paramUint(m, "dklen")
	if err != nil {
		return nil, err
	}
	n, err := paramUint(m, "n")
	if err != nil {
		return nil, err
	}
	r, err := paramUint(m, "r")
	if err != nil {
		return nil, err
	}
	p, err := paramUint(m, "p")
	if err != nil {
		return nil, err
	}
	salt, err := paramString(m, "salt")
	if err != nil {
		return nil, err
	}
	return &ScryptParams{Dklen: dklen, N: n, R: r, P: p, Salt: salt}, nil
}

// Checksum is the `crypto.checksum` record. `params` is always the unit
// value `{}` on the wire; it carries no Go-visible fields.
type Checksum struct {
	Function string
	Message  string
}

type checksumWire struct {
	Function string                 `json:"function"`
	Params   map[string]interface{} `json:"params"`
	Message  string                 `json:"message"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Checksum) UnmarshalJSON(data []byte) error {
	var wire checksumWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return Errorf(MalformedJSON, "crypto.checksum: %v", err)
	}
	if wire.Function != "sha256" {
		return Errorf(UnsupportedChecksumFunction, "unsupported checksum function %q", wire.Function)
	}
	c.Function = wire.Function
	c.Message = wire.Message
	return nil
}

// MarshalJSON implements json.Marshaler, always emitting an empty params object.
func (c Checksum) MarshalJSON() ([]byte, error) {
	return json.Marshal(checksumWire{
		Function: c.Function,
		Params:   map[string]interface{}{},
		Message:  c.Message,
	})
}

// Cipher is the `crypto.cipher` record.
type Cipher struct {
	Function string
	IV       string
	Message  string
}

type cipherWire struct {
	Function string                 `json:"function"`
	Params   map[string]interface{} `json:"params"`
	Message  string                 `json:"message"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Cipher) UnmarshalJSON(data []byte) error {
	var wire cipherWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return Errorf(MalformedJSON, "crypto.cipher: %v", err)
	}
	if wire.Function != "aes-128-ctr" {
		return Errorf(UnsupportedCipherFunction, "unsupported cipher function %q", wire.Function)
	}
	iv, err := paramString(wire.Params, "iv")
	if err != nil {
		return Errorf(MissingCipherParams, "missing cipher param %q", "iv")
	}
	c.Function = wire.Function
	c.IV = iv
	c.Message = wire.Message
	return nil
}

// MarshalJSON implements json.Marshaler.
func (c Cipher) MarshalJSON() ([]byte, error) {
	return json.Marshal(cipherWire{
		Function: c.Function,
		Params:   map[string]interface{}{"iv": c.IV},
		Message:  c.Message,
	})
}

// ParseEnvelope decodes and validates an EIP-2335 keystore document.
func ParseEnvelope(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		if ee, ok := err.(*Error); ok {
			return nil, ee
		}
		return nil, Errorf(MalformedJSON, "%v", err)
	}
	if err := env.Validate(); err != nil {
		return nil, err
	}
	return &env, nil
}

// Validate checks the invariants in SPEC_FULL.md/§3 that must hold before any
// crypto step touches the envelope.
func (e *Envelope) Validate() error {
	if e.Version != keystoreVersion {
		return Errorf(UnsupportedKeystoreVersion, "unsupported keystore version %d, want %d", e.Version, keystoreVersion)
	}

	checksum, err := DecodeHex(e.Crypto.Checksum.Message)
	if err != nil {
		return err
	}
	if len(checksum) != checksumLen {
		return Errorf(InvalidChecksumLength, "checksum message is %d bytes, want %d", len(checksum), checksumLen)
	}

	iv, err := DecodeHex(e.Crypto.Cipher.IV)
	if err != nil {
		return err
	}
	if len(iv) != ivLen {
		return Errorf(MissingCipherParams, "cipher iv is %d bytes, want %d", len(iv), ivLen)
	}

	cipherMessage, err := DecodeHex(e.Crypto.Cipher.Message)
	if err != nil {
		return err
	}
	if len(cipherMessage) != secretLen {
		return Errorf(InvalidKdfParameters, "cipher message is %d bytes, want %d", len(cipherMessage), secretLen)
	}

	if _, err := DecodeHex(e.Crypto.Kdf.Params.SaltHex()); err != nil {
		return err
	}

	return nil
}

// DecodedChecksum returns the hex-decoded checksum message.
func (e *Envelope) DecodedChecksum() ([]byte, error) {
	return DecodeHex(e.Crypto.Checksum.Message)
}

// DecodedCipherIV returns the hex-decoded cipher IV.
func (e *Envelope) DecodedCipherIV() ([]byte, error) {
	return DecodeHex(e.Crypto.Cipher.IV)
}

// DecodedCipherMessage returns the hex-decoded cipher ciphertext.
func (e *Envelope) DecodedCipherMessage() ([]byte, error) {
	return DecodeHex(e.Crypto.Cipher.Message)
}

// Serialize renders the envelope back to its canonical JSON form.
func (e *Envelope) Serialize() ([]byte, error) {
	b, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return nil, Errorf(MalformedJSON, "%v", err)
	}
	return b, nil
}
