package naming

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "naming")

// Pair is one (keystore, password) pair yielded by Resolve, identified by
// its opaque pk (the file stem under WEB3SIGNER, the subdirectory name
// under NIMBUS).
type Pair struct {
	Pk           string
	KeystorePath string
	PasswordPath string
}

// Resolve enumerates srcDir according to mode and yields the matching
// (keystore, password) pairs, mirroring the non-recursive directory-entry
// loop in tools/keystores/main.go's decrypt command.
func Resolve(mode Mode, srcDir, passwordDir string) ([]Pair, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, errors.Wrap(err, "could not read source directory")
	}

	var pairs []Pair
	for _, entry := range entries {
		switch mode {
		case Web3Signer:
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
				log.WithField("entry", entry.Name()).Debug("skipping non-keystore entry")
				continue
			}
			pk := strings.TrimSuffix(entry.Name(), ".json")
			pairs = append(pairs, Pair{
				Pk:           pk,
				KeystorePath: filepath.Join(srcDir, entry.Name()),
				PasswordPath: filepath.Join(passwordDir, pk+".txt"),
			})
		case Nimbus:
			if !entry.IsDir() {
				log.WithField("entry", entry.Name()).Debug("skipping non-directory entry")
				continue
			}
			pk := entry.Name()
			pairs = append(pairs, Pair{
				Pk:           pk,
				KeystorePath: filepath.Join(srcDir, pk, "keystore.json"),
				PasswordPath: filepath.Join(passwordDir, pk),
			})
		default:
			return nil, errors.Errorf("unknown naming mode %d", mode)
		}
	}

	if len(pairs) == 0 {
		log.Warn("source directory contained no keystores for the selected mode")
	}

	return pairs, nil
}

// DestPath returns the path a converted keystore for pk should be written to
// under destDir, following the same naming convention it was read under.
func DestPath(mode Mode, destDir, pk string) string {
	switch mode {
	case Nimbus:
		return filepath.Join(destDir, pk, "keystore.json")
	default:
		return filepath.Join(destDir, pk+".json")
	}
}
