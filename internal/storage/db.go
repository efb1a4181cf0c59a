package storage

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"buzzy/config"
	"buzzy/internal/appdirs"
	"buzzy/log"
)

var DB *gorm.DB

// dbPathResolver is a var so tests can point the database at a temp location.
var dbPathResolver = func() (string, error) {
	if path := config.Conf.DB.Path; path != "" {
		return path, nil
	}
	return appdirs.ResolveDBPath()
}

func InitDB() {
	dbPath, err := dbPathResolver()
	if err != nil {
		log.GetLogger().Fatal("failed to resolve database path", zap.Error(err))
	}

	dir := filepath.Dir(dbPath)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		log.GetLogger().Fatal("failed to create database directory", zap.String("dir", dir), zap.Error(err))
	}

	DB, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.GetLogger().Fatal("failed to connect database", zap.Error(err))
	}

	if err = DB.AutoMigrate(&JobRun{}); err != nil {
		log.GetLogger().Fatal("failed to migrate database", zap.Error(err))
	}

	log.GetLogger().Info("Database initialized successfully", zap.String("path", dbPath))
}
