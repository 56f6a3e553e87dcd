package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/lc/ox/internal/filesys"
)

// Save writes cfg to path in the format implied by its extension. The
// parent directory is created if needed and the file is replaced
// atomically. An existing file is only replaced when overwrite is set.
func Save(fsys filesys.FileOps, path string, cfg *Config, overwrite bool) error {
	path = ExpandPath(path)

	if !overwrite {
		_, err := fsys.Stat(path)
		if err == nil {
			return fmt.Errorf("%w: %s", ErrFileExists, path)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking config file: %w", err)
		}
	}

	data, err := Marshal(cfg, FormatFor(path))
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := filesys.AtomicWrite(fsys, path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
