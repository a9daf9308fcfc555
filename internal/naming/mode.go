// Package naming resolves the on-disk naming convention used to pair a
// keystore file with its password file, the way
// validator/keymanager.Kind resolves a keymanager kind from a CLI string.
package naming

import (
	"strings"

	"github.com/pkg/errors"
)

// Mode selects one of the two on-disk naming conventions this tool supports.
type Mode int

const (
	// Web3Signer lays out one keystore file and one password file per pair:
	// <src>/<pk>.json and <passwords>/<pk>.txt.
	Web3Signer Mode = iota
	// Nimbus lays out one subdirectory per pair: <src>/<pk>/keystore.json
	// and <passwords>/<pk>.
	Nimbus
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case Web3Signer:
		return "WEB3SIGNER"
	case Nimbus:
		return "NIMBUS"
	default:
		return "UNKNOWN"
	}
}

// ParseMode parses the --mode flag value, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(s) {
	case "WEB3SIGNER":
		return Web3Signer, nil
	case "NIMBUS":
		return Nimbus, nil
	default:
		return 0, errors.Errorf("%q is not a supported naming mode", s)
	}
}
