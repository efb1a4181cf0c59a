package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
)

func TestLoadOrCreateConfigMissingCreatesDefault(t *testing.T) {
	tmp := t.TempDir()

	configPath := filepath.Join(tmp, "config", "config.toml")
	old := resolveConfigPath
	resolveConfigPath = func() (string, error) { return configPath, nil }
	t.Cleanup(func() { resolveConfigPath = old })

	// Ensure missing
	if _, err := os.Stat(configPath); err == nil {
		t.Fatalf("expected config file to be missing")
	}

	created, err := LoadOrCreateConfig()
	if err != nil {
		t.Fatalf("LoadOrCreateConfig() error: %v", err)
	}
	if !created {
		t.Fatalf("LoadOrCreateConfig() created=false, want true")
	}

	if _, err := os.Stat(configPath); err != nil {
		t.Fatalf("expected config file to be created: %v", err)
	}

	var got Config
	if _, err := toml.DecodeFile(configPath, &got); err != nil {
		t.Fatalf("decode created config: %v", err)
	}
	if got.Server.Host != "127.0.0.1" {
		t.Fatalf("default server host = %q, want %q", got.Server.Host, "127.0.0.1")
	}
	if got.Server.Port != 8888 {
		t.Fatalf("default server port = %d, want %d", got.Server.Port, 8888)
	}
	if got.Subtitle.MinEntryDurationMs != 50 {
		t.Fatalf("default min entry duration = %d, want 50", got.Subtitle.MinEntryDurationMs)
	}
}

func TestLoadOrCreateConfigLoadsExisting(t *testing.T) {
	tmp := t.TempDir()

	configPath := filepath.Join(tmp, "config.toml")
	old := resolveConfigPath
	resolveConfigPath = func() (string, error) { return configPath, nil }
	t.Cleanup(func() { resolveConfigPath = old })

	Conf = defaultConfig()
	Conf.Server.Host = "0.0.0.0"
	Conf.Server.Port = 9999
	if err := SaveConfig(); err != nil {
		t.Fatalf("SaveConfig() error: %v", err)
	}

	Conf = Config{}

	created, err := LoadOrCreateConfig()
	if err != nil {
		t.Fatalf("LoadOrCreateConfig() error: %v", err)
	}
	if created {
		t.Fatal("expected created=false when config file exists")
	}
	if Conf.Server.Host != "0.0.0.0" {
		t.Fatalf("loaded server host = %q, want %q", Conf.Server.Host, "0.0.0.0")
	}
	if Conf.Server.Port != 9999 {
		t.Fatalf("loaded server port = %d, want %d", Conf.Server.Port, 9999)
	}
}

func TestSaveConfigCreatesParentDirs(t *testing.T) {
	tmp := t.TempDir()

	configPath := filepath.Join(tmp, "deep", "nest", "config.toml")
	old := resolveConfigPath
	resolveConfigPath = func() (string, error) { return configPath, nil }
	t.Cleanup(func() { resolveConfigPath = old })

	Conf = defaultConfig()
	Conf.Server.Port = 9999

	if err := SaveConfig(); err != nil {
		t.Fatalf("SaveConfig() error: %v", err)
	}

	if _, err := os.Stat(filepath.Dir(configPath)); err != nil {
		t.Fatalf("expected parent directories to exist: %v", err)
	}

	var got Config
	if _, err := toml.DecodeFile(configPath, &got); err != nil {
		t.Fatalf("decode saved config: %v", err)
	}
	if got.Server.Port != 9999 {
		t.Fatalf("saved server port = %d, want %d", got.Server.Port, 9999)
	}
}

func TestCheckConfig(t *testing.T) {
	Conf = defaultConfig()
	Conf.Appwrite.Endpoint = "https://cloud.appwrite.io/v1"
	Conf.Appwrite.Project = "buzzy"
	Conf.Appwrite.ApiKey = "secret"

	if err := CheckConfig(); err != nil {
		t.Fatalf("CheckConfig() error: %v", err)
	}
	if Conf.Storage.Provider != "appwrite" {
		t.Fatalf("provider = %q, want appwrite", Conf.Storage.Provider)
	}

	Conf.Storage.Provider = "oss"
	if err := CheckConfig(); err == nil {
		t.Fatal("expected error for oss provider without credentials")
	}

	Conf.Storage.Provider = "ftp"
	if err := CheckConfig(); err == nil {
		t.Fatal("expected error for unknown provider")
	}

	Conf = defaultConfig()
	if err := CheckConfig(); err == nil {
		t.Fatal("expected error when appwrite credentials are missing")
	}
}
