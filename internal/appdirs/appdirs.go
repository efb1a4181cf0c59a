// Package appdirs resolves where the service keeps its config, logs and
// data. Portable mode anchors everything next to the executable; Windows
// installs use the user profile dirs; everything else stays relative to the
// working directory.
package appdirs

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	PortableEnv = "BUZZY_PORTABLE"

	appName        = "Buzzy"
	configFileName = "config.toml"
)

type Paths struct {
	Portable   bool
	ConfigDir  string
	ConfigFile string
	LogDir     string
	DataDir    string
	TempDir    string
}

type resolveDeps struct {
	goos          string
	getenv        func(string) string
	executable    func() (string, error)
	userConfigDir func() (string, error)
	userCacheDir  func() (string, error)
}

func Resolve() (Paths, error) {
	return resolve(resolveDeps{
		goos:          runtime.GOOS,
		getenv:        os.Getenv,
		executable:    os.Executable,
		userConfigDir: os.UserConfigDir,
		userCacheDir:  os.UserCacheDir,
	})
}

func resolve(rawDeps resolveDeps) (Paths, error) {
	deps := withDefaults(rawDeps)
	if isPortableEnabled(deps.getenv(PortableEnv)) {
		return resolvePortable(deps)
	}
	if deps.goos == "windows" {
		return resolveWindows(deps)
	}
	return defaultNonWindowsPaths(), nil
}

func withDefaults(deps resolveDeps) resolveDeps {
	if deps.goos == "" {
		deps.goos = runtime.GOOS
	}
	if deps.getenv == nil {
		deps.getenv = os.Getenv
	}
	if deps.executable == nil {
		deps.executable = os.Executable
	}
	if deps.userConfigDir == nil {
		deps.userConfigDir = os.UserConfigDir
	}
	if deps.userCacheDir == nil {
		deps.userCacheDir = os.UserCacheDir
	}
	return deps
}

func resolvePortable(deps resolveDeps) (Paths, error) {
	executablePath, err := deps.executable()
	if err != nil {
		return Paths{}, err
	}

	rootDir := filepath.Join(filepath.Dir(executablePath), "data")
	configDir := filepath.Join(rootDir, "config")
	return Paths{
		Portable:   true,
		ConfigDir:  configDir,
		ConfigFile: filepath.Join(configDir, configFileName),
		LogDir:     filepath.Join(rootDir, "logs"),
		DataDir:    filepath.Join(rootDir, "db"),
		TempDir:    filepath.Join(rootDir, "tmp"),
	}, nil
}

func resolveWindows(deps resolveDeps) (Paths, error) {
	configRoot, err := deps.userConfigDir()
	if err != nil {
		return Paths{}, err
	}
	if strings.TrimSpace(configRoot) == "" {
		return Paths{}, errors.New("user config dir is empty")
	}

	cacheRoot, err := deps.userCacheDir()
	if err != nil {
		return Paths{}, err
	}
	if strings.TrimSpace(cacheRoot) == "" {
		return Paths{}, errors.New("user cache dir is empty")
	}

	configDir := filepath.Join(configRoot, appName)
	cacheBaseDir := filepath.Join(cacheRoot, appName)
	return Paths{
		ConfigDir:  configDir,
		ConfigFile: filepath.Join(configDir, configFileName),
		LogDir:     filepath.Join(cacheBaseDir, "logs"),
		DataDir:    filepath.Join(cacheBaseDir, "db"),
		TempDir:    filepath.Join(cacheBaseDir, "tmp"),
	}, nil
}

func defaultNonWindowsPaths() Paths {
	configDir := "config"
	return Paths{
		ConfigDir:  configDir,
		ConfigFile: filepath.Join(configDir, configFileName),
		LogDir:     "logs",
		DataDir:    "data",
		TempDir:    "",
	}
}

func isPortableEnabled(value string) bool {
	normalized := strings.TrimSpace(strings.ToLower(value))
	return normalized == "1" || normalized == "true"
}
