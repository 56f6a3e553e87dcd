package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/lc/ox/internal/log"
)

// ExpandPath expands environment variables and a leading ~ in path.
// Expansion failure is not an error: an undefined variable or an
// unresolvable home directory leaves path unchanged.
func ExpandPath(path string) string {
	expanded, err := expandEnv(path)
	if err != nil {
		log.Debug("path expansion failed, using path as given", "path", path, "error", err)
		return path
	}
	expanded, err = homedir.Expand(expanded)
	if err != nil {
		log.Debug("home expansion failed, using path as given", "path", path, "error", err)
		return path
	}
	return expanded
}

// expandEnv is os.ExpandEnv that fails on undefined variables instead of
// substituting an empty string.
func expandEnv(s string) (string, error) {
	var missing []string
	out := os.Expand(s, func(name string) string {
		v, ok := os.LookupEnv(name)
		if !ok {
			missing = append(missing, name)
		}
		return v
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("undefined variable %s", strings.Join(missing, ", "))
	}
	return out, nil
}
