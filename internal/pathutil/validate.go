// Package pathutil validates and prepares the source, password and
// destination directories the converter operates on, the way
// validator/accounts/v2's inputDirectory prompts validate wallet directories
// before any account work begins.
package pathutil

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// DirectoryPermissions matches the mode validator/accounts/v2 creates wallet
// and passwords directories with.
const DirectoryPermissions = 0700

// ErrInvalidSourceDirectory is returned when the source directory does not
// exist or is not readable.
var ErrInvalidSourceDirectory = errors.New("invalid source directory")

// ErrInvalidPasswordDirectory is returned when the password directory does
// not exist or is not readable.
var ErrInvalidPasswordDirectory = errors.New("invalid password directory")

// ErrInvalidDestinationDirectory is returned when the destination directory
// cannot be created or is not writable.
var ErrInvalidDestinationDirectory = errors.New("invalid destination directory")

// ValidateSourceDir checks that dir exists, is readable, and is a directory.
func ValidateSourceDir(dir string) error {
	if err := validateReadableDir(dir); err != nil {
		return errors.Wrap(ErrInvalidSourceDirectory, err.Error())
	}
	return nil
}

// ValidatePasswordDir checks that dir exists, is readable, and is a directory.
func ValidatePasswordDir(dir string) error {
	if err := validateReadableDir(dir); err != nil {
		return errors.Wrap(ErrInvalidPasswordDirectory, err.Error())
	}
	return nil
}

func validateReadableDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return errors.Errorf("%s is not a directory", dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	_ = entries
	return nil
}

// ValidateAndPrepareDestDir creates dir (with parents) if missing, then
// verifies write permission by creating and removing a uniquely-named probe
// file, mirroring os.MkdirAll(path, DirectoryPermissions) in
// validator/accounts/v2/accounts_import.go.
func ValidateAndPrepareDestDir(dir string) error {
	if err := os.MkdirAll(dir, DirectoryPermissions); err != nil {
		return errors.Wrap(ErrInvalidDestinationDirectory, err.Error())
	}

	probe := filepath.Join(dir, probeFileName())
	if err := os.WriteFile(probe, []byte{}, 0600); err != nil {
		return errors.Wrap(ErrInvalidDestinationDirectory, err.Error())
	}
	if err := os.Remove(probe); err != nil {
		return errors.Wrap(ErrInvalidDestinationDirectory, err.Error())
	}
	return nil
}

func probeFileName() string {
	return ".keystore-convert-write-probe-" + uuid.New().String()
}
