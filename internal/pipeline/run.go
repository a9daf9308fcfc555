package pipeline

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-keystore-convert/internal/eip2335"
	"github.com/prysmaticlabs/prysm-keystore-convert/internal/naming"
	"github.com/prysmaticlabs/prysm-keystore-convert/internal/pathutil"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "pipeline")

// Result is the outcome of converting a single pair, identified by its pk,
// per the propagation policy in SPEC_FULL.md/§7: one pair's failure never
// aborts the run, but is reported against that pair's identifier.
type Result struct {
	Pk  string
	Err error
}

// Summary tallies a run's outcomes.
type Summary struct {
	Converted int
	Failed    int
}

// Run resolves every (keystore, password) pair under srcDir/passwordDir per
// mode, converts each independently, and writes the results under destDir.
// Directory-level errors abort the run before any pair is processed;
// per-pair errors are collected into the returned results and do not stop
// the run.
func Run(mode naming.Mode, srcDir, passwordDir, destDir string, cfg Config) (Summary, []Result, error) {
	if err := pathutil.ValidateSourceDir(srcDir); err != nil {
		return Summary{}, nil, err
	}
	if err := pathutil.ValidatePasswordDir(passwordDir); err != nil {
		return Summary{}, nil, err
	}
	if err := pathutil.ValidateAndPrepareDestDir(destDir); err != nil {
		return Summary{}, nil, err
	}

	pairs, err := naming.Resolve(mode, srcDir, passwordDir)
	if err != nil {
		return Summary{}, nil, err
	}

	var summary Summary
	results := make([]Result, 0, len(pairs))
	for _, pair := range pairs {
		err := convertAndWritePair(mode, pair, destDir, cfg)
		if err != nil {
			log.WithError(err).WithField("pk", pair.Pk).Error("could not convert keystore")
			summary.Failed++
		} else {
			log.WithField("pk", pair.Pk).Info("converted keystore")
			summary.Converted++
		}
		results = append(results, Result{Pk: pair.Pk, Err: err})
	}

	return summary, results, nil
}

func convertAndWritePair(mode naming.Mode, pair naming.Pair, destDir string, cfg Config) error {
	keystoreBytes, passwordBytes, err := readPairInputs(pair.KeystorePath, pair.PasswordPath)
	if err != nil {
		return err
	}
	defer eip2335.Zero(passwordBytes)

	converted, err := ConvertKeystore(keystoreBytes, passwordBytes, cfg)
	if err != nil {
		return err
	}

	destPath := naming.DestPath(mode, destDir, pair.Pk)
	if err := writeAtomic(destPath, converted); err != nil {
		return errors.Wrap(ErrWriteFailed, err.Error())
	}
	return nil
}

// writeAtomic writes data to a temp file in path's directory, then renames
// it into place, so a failure partway through never leaves a partial
// keystore at path, per the "no partial output" propagation policy.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, pathutil.DirectoryPermissions); err != nil {
		return err
	}

	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.New().String()+".tmp")
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
