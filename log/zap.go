package log

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"buzzy/internal/appdirs"
)

var Logger *zap.Logger

const logFileName = "app.log"

// logDirResolver is a var so tests can redirect log output.
var logDirResolver = func() (string, error) {
	if dir := strings.TrimSpace(os.Getenv("BUZZY_LOG_DIR")); dir != "" {
		return dir, nil
	}
	return appdirs.ResolveLogDir()
}

func InitLogger() {
	logDir, err := ResolveLogDir()
	if err != nil {
		panic("failed to resolve log directory: " + err.Error())
	}

	if err = os.MkdirAll(logDir, 0o755); err != nil {
		panic("failed to create log directory: " + err.Error())
	}

	logFilePath := filepath.Join(logDir, logFileName)
	file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		panic("failed to open log file: " + err.Error())
	}

	fileSyncer := zapcore.AddSync(file)
	consoleSyncer := zapcore.AddSync(os.Stdout)

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), fileSyncer, zap.DebugLevel),      // file sink (JSON)
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), consoleSyncer, zap.InfoLevel), // console sink
	)

	Logger = zap.New(core, zap.AddCaller())
}

func ResolveLogDir() (string, error) {
	dir, err := logDirResolver()
	if err != nil {
		return "", err
	}

	dir = strings.TrimSpace(dir)
	if dir == "" {
		return ".", nil
	}
	return dir, nil
}

func ResolveLogFilePath() (string, error) {
	logDir, err := ResolveLogDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(logDir, logFileName), nil
}

func GetLogger() *zap.Logger {
	return Logger
}
