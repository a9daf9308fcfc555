package pathutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateSourceDirOK(t *testing.T) {
	require.NoError(t, ValidateSourceDir(t.TempDir()))
}

func TestValidateSourceDirMissing(t *testing.T) {
	err := ValidateSourceDir(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidSourceDirectory)
}

func TestValidatePasswordDirMissing(t *testing.T) {
	err := ValidatePasswordDir(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidPasswordDirectory)
}

func TestValidateAndPrepareDestDirCreatesMissingDir(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "nested", "dest")
	require.NoError(t, ValidateAndPrepareDestDir(dest))

	info, err := os.Stat(dest)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestValidateAndPrepareDestDirLeavesNoProbeFile(t *testing.T) {
	dest := t.TempDir()
	require.NoError(t, ValidateAndPrepareDestDir(dest))

	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	require.Empty(t, entries)
}
