package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lc/ox/internal/config"
	"github.com/lc/ox/internal/filesys"
	"github.com/lc/ox/internal/mocks"
)

func TestSaveThenLoadDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ox.yaml")

	require.NoError(t, config.Save(filesys.OS(), path, config.Default(), false))

	cfg, status := config.Load(path)
	require.Equal(t, config.StatusSuccess, status.Kind, status.Diagnostic)
	require.Equal(t, config.Default(), cfg)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestSaveExpandsPathOnce(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("OX_SAVE_DIR", filepath.Join(dir, "${OX_SAVE_SUB}"))
	t.Setenv("OX_SAVE_SUB", "wrong")

	require.NoError(t, config.Save(filesys.OS(), "$OX_SAVE_DIR/ox.yaml", config.Default(), false))

	_, err := os.Stat(filepath.Join(dir, "${OX_SAVE_SUB}", "ox.yaml"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "wrong"))
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSaveRefusesToOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ox.yaml")
	require.NoError(t, os.WriteFile(path, []byte("keep me"), 0o644))

	err := config.Save(filesys.OS(), path, config.Default(), false)
	require.ErrorIs(t, err, config.ErrFileExists)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "keep me", string(data))

	require.NoError(t, config.Save(filesys.OS(), path, config.Default(), true))
	_, status := config.Load(path)
	require.True(t, status.OK(), status.String())
}

func TestSaveDirectoryError(t *testing.T) {
	fsys := new(mocks.MockFS)
	fsys.On("Stat", "/ro/ox.yaml").Return(nil, os.ErrNotExist)
	fsys.On("MkdirAll", "/ro", mock.Anything).Return(errors.New("read-only file system"))

	err := config.Save(fsys, "/ro/ox.yaml", config.Default(), false)

	require.Error(t, err)
	require.Contains(t, err.Error(), "creating config directory")
	fsys.AssertExpectations(t)
}
