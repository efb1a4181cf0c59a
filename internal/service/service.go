package service

import (
	"time"

	"go.uber.org/zap"

	"buzzy/pkg/appwrite"
	"buzzy/pkg/openai"

	"buzzy/config"
	"buzzy/internal/blob"
	"buzzy/internal/deps"
	"buzzy/internal/ffmpeg"
	"buzzy/internal/types"
	"buzzy/log"
)

type Service struct {
	Blob          types.BlobStore
	Docs          types.DocumentStore
	Mailer        types.Mailer
	ChatCompleter types.ChatCompleter
	Extractor     types.MediaExtractor
}

func NewService() *Service {
	appwriteClient := appwrite.NewClient(
		config.Conf.Appwrite.Endpoint,
		config.Conf.Appwrite.Project,
		config.Conf.Appwrite.ApiKey,
	)

	blobStore, err := blob.NewStore(config.Conf, appwriteClient)
	if err != nil {
		log.GetLogger().Error("NewService blob store init failed", zap.Error(err))
		return nil
	}
	log.GetLogger().Info("NewService storage provider selected",
		zap.String("provider", config.Conf.Storage.Provider))

	ffmpegPath, ffprobePath, err := deps.ResolveMediaBinaries()
	if err != nil {
		log.GetLogger().Error("NewService media binaries unavailable", zap.Error(err))
		return nil
	}

	extractor := ffmpeg.NewExtractor(
		ffmpegPath,
		ffprobePath,
		config.Conf.Subtitle.FontFile,
		time.Duration(config.Conf.App.SubprocessTimeoutMs)*time.Millisecond,
	)

	return &Service{
		Blob:          blobStore,
		Docs:          appwriteClient,
		Mailer:        appwriteClient,
		ChatCompleter: openai.NewClient(config.Conf.Llm.BaseUrl, config.Conf.Llm.ApiKey, config.Conf.Llm.Model),
		Extractor:     extractor,
	}
}
