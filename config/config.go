// Package config loads and validates the service configuration from
// a TOML file, creating a commented default on first run.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"buzzy/internal/appdirs"
	"buzzy/log"
)

type Server struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type App struct {
	TempDir             string `toml:"temp_dir"`              // scratch space for downloaded videos and cut clips
	FfmpegPath          string `toml:"ffmpeg_path"`           // empty = resolve from PATH
	FfprobePath         string `toml:"ffprobe_path"`          // empty = resolve from PATH
	SubprocessTimeoutMs int64  `toml:"subprocess_timeout_ms"` // watchdog budget per transcoder invocation
	DeleteSourceVideo   bool   `toml:"delete_source_video"`   // reclaim blob space after a successful job
}

type Appwrite struct {
	Endpoint string `toml:"endpoint"`
	Project  string `toml:"project"`
	ApiKey   string `toml:"api_key"`

	DatabaseId          string `toml:"database_id"`
	VideosCollectionId  string `toml:"videos_collection_id"`
	ClipsCollectionId   string `toml:"clips_collection_id"`
	VideosBucketId      string `toml:"videos_bucket_id"`
	ClipsBucketId       string `toml:"clips_bucket_id"`
	ThumbnailsBucketId  string `toml:"thumbnails_bucket_id"`
	TranscriptsBucketId string `toml:"transcripts_bucket_id"`
}

type OssStorage struct {
	AccessKeyId     string `toml:"access_key_id"`
	AccessKeySecret string `toml:"access_key_secret"`
	Region          string `toml:"region"`
	Endpoint        string `toml:"endpoint"`
}

type Storage struct {
	Provider string     `toml:"provider"` // appwrite | oss
	Oss      OssStorage `toml:"oss"`
}

type Llm struct {
	BaseUrl string `toml:"base_url"`
	ApiKey  string `toml:"api_key"`
	Model   string `toml:"model"`

	MinClipDuration int `toml:"min_clip_duration"` // seconds, analysis target range
	MaxClipDuration int `toml:"max_clip_duration"`
}

type Queue struct {
	RedisAddr     string `toml:"redis_addr"` // empty = async trigger path disabled
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	Concurrency   int    `toml:"concurrency"`
}

type Subtitle struct {
	MinEntryDurationMs int64  `toml:"min_entry_duration_ms"` // drop cropped slivers below this
	FontFile           string `toml:"font_file"`
}

type Config struct {
	Server   Server   `toml:"server"`
	App      App      `toml:"app"`
	Appwrite Appwrite `toml:"appwrite"`
	Storage  Storage  `toml:"storage"`
	Llm      Llm      `toml:"llm"`
	Queue    Queue    `toml:"queue"`
	Subtitle Subtitle `toml:"subtitle"`
	DB       DB       `toml:"db"`
}

type DB struct {
	Path string `toml:"path"`
}

var Conf Config

// resolveConfigPath is a var so tests can point at a temp location.
var resolveConfigPath = func() (string, error) {
	paths, err := appdirs.Resolve()
	if err != nil {
		return "", err
	}
	return paths.ConfigFile, nil
}

func ResolveConfigPath() (string, error) {
	return resolveConfigPath()
}

func defaultConfig() Config {
	return Config{
		Server: Server{
			Host: "127.0.0.1",
			Port: 8888,
		},
		App: App{
			TempDir:             os.TempDir(),
			SubprocessTimeoutMs: 5 * 60 * 1000,
			DeleteSourceVideo:   false,
		},
		Appwrite: Appwrite{
			DatabaseId:          "buzzy",
			VideosCollectionId:  "videos",
			ClipsCollectionId:   "clips",
			VideosBucketId:      "videos",
			ClipsBucketId:       "clips",
			ThumbnailsBucketId:  "thumbnails",
			TranscriptsBucketId: "transcripts",
		},
		Storage: Storage{
			Provider: "appwrite",
		},
		Llm: Llm{
			Model:           "gpt-4o-mini",
			MinClipDuration: 50,
			MaxClipDuration: 180,
		},
		Queue: Queue{
			Concurrency: 3,
		},
		Subtitle: Subtitle{
			MinEntryDurationMs: 50,
			FontFile:           "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		},
		DB: DB{
			Path: filepath.Join("data", "buzzy.db"),
		},
	}
}

// LoadOrCreateConfig reads config.toml, writing the defaults first when the
// file does not exist yet. Returns created=true when a fresh file was written.
func LoadOrCreateConfig() (bool, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return false, fmt.Errorf("LoadOrCreateConfig resolve path error: %w", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		Conf = defaultConfig()
		if err := SaveConfig(); err != nil {
			return false, fmt.Errorf("LoadOrCreateConfig write default config error: %w", err)
		}
		return true, nil
	}

	if _, err := toml.DecodeFile(path, &Conf); err != nil {
		return false, fmt.Errorf("LoadOrCreateConfig decode error: %w", err)
	}
	return false, nil
}

// LoadConfig is the boot-time wrapper: it logs instead of returning an error
// and reports whether the process should continue.
func LoadConfig() bool {
	created, err := LoadOrCreateConfig()
	if err != nil {
		log.GetLogger().Error("failed to load config", zap.Error(err))
		return false
	}
	if created {
		path, _ := ResolveConfigPath()
		log.GetLogger().Info("wrote default config, fill in credentials before first job", zap.String("path", path))
	}
	return true
}

// SaveConfig writes the current Conf to the config path, creating parent dirs.
func SaveConfig() error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("SaveConfig mkdir error: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("SaveConfig create error: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(Conf); err != nil {
		return fmt.Errorf("SaveConfig encode error: %w", err)
	}
	return nil
}

// CheckConfig validates the fields a job run cannot proceed without.
func CheckConfig() error {
	if Conf.Appwrite.Endpoint == "" || Conf.Appwrite.Project == "" || Conf.Appwrite.ApiKey == "" {
		return fmt.Errorf("appwrite endpoint, project and api_key are required")
	}
	switch Conf.Storage.Provider {
	case "", "appwrite":
		Conf.Storage.Provider = "appwrite"
	case "oss":
		if Conf.Storage.Oss.AccessKeyId == "" || Conf.Storage.Oss.AccessKeySecret == "" {
			return fmt.Errorf("oss storage provider requires access_key_id and access_key_secret")
		}
	default:
		return fmt.Errorf("unknown storage provider: %s", Conf.Storage.Provider)
	}
	if Conf.App.SubprocessTimeoutMs <= 0 {
		Conf.App.SubprocessTimeoutMs = 5 * 60 * 1000
	}
	if Conf.Subtitle.MinEntryDurationMs < 0 {
		return fmt.Errorf("subtitle min_entry_duration_ms must not be negative")
	}
	if Conf.App.TempDir == "" {
		Conf.App.TempDir = os.TempDir()
	}
	return nil
}
