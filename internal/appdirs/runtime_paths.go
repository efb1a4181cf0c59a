package appdirs

import (
	"path/filepath"
	"strings"
)

const dbFileName = "buzzy.db"

func DBPathFor(paths Paths) string {
	return filepath.Join(normalizeDataDir(paths.DataDir), dbFileName)
}

func ResolveDBPath() (string, error) {
	paths, err := Resolve()
	if err != nil {
		return "", err
	}
	return DBPathFor(paths), nil
}

func ResolveLogDir() (string, error) {
	paths, err := Resolve()
	if err != nil {
		return "", err
	}
	return paths.LogDir, nil
}

// ResolveTempRoot returns the scratch root for job working directories.
// Empty means the OS default temp dir.
func ResolveTempRoot() (string, error) {
	paths, err := Resolve()
	if err != nil {
		return "", err
	}
	return paths.TempDir, nil
}

func normalizeDataDir(dataDir string) string {
	cleaned := strings.TrimSpace(dataDir)
	if cleaned == "" {
		return "data"
	}
	return filepath.Clean(cleaned)
}
