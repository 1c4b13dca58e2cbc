package filesystem_test

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repo-bootstrap/internal/filesystem"
)

func TestOSFileSystemRoundTrip(testInstance *testing.T) {
	fileSystem := filesystem.OSFileSystem{}
	temporaryDirectory := testInstance.TempDir()
	targetPath := filepath.Join(temporaryDirectory, ".gitignore")

	_, missingError := fileSystem.Stat(targetPath)
	require.True(testInstance, errors.Is(missingError, fs.ErrNotExist))

	require.NoError(testInstance, fileSystem.WriteFile(targetPath, []byte("*.log\n"), 0o644))

	fileInfo, statError := fileSystem.Stat(targetPath)
	require.NoError(testInstance, statError)
	require.False(testInstance, fileInfo.IsDir())
	require.EqualValues(testInstance, len("*.log\n"), fileInfo.Size())

	absolutePath, absError := fileSystem.Abs(temporaryDirectory)
	require.NoError(testInstance, absError)
	require.True(testInstance, filepath.IsAbs(absolutePath))
}
