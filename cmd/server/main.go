package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"buzzy/config"
	"buzzy/internal/deps"
	"buzzy/internal/queue"
	"buzzy/internal/router"
	"buzzy/internal/service"
	"buzzy/internal/storage"
	"buzzy/internal/taskrunner"
	"buzzy/log"
)

func main() {
	log.InitLogger()
	defer log.GetLogger().Sync()

	created, err := config.LoadOrCreateConfig()
	if err != nil {
		log.GetLogger().Error("Failed to load config", zap.Error(err))
		return
	}
	if created {
		log.GetLogger().Info("Created default config, fill in credentials and restart")
		return
	}
	if err = config.CheckConfig(); err != nil {
		log.GetLogger().Error("Invalid config", zap.Error(err))
		return
	}

	storage.InitDB()

	// Interrupted runs from a previous process are terminal failures.
	if count, err := storage.MarkStaleRuns(); err != nil {
		log.GetLogger().Warn("Failed to mark stale runs", zap.Error(err))
	} else if count > 0 {
		log.GetLogger().Info("Marked stale runs as failed", zap.Int64("count", count))
	}

	states := deps.ResolveDependencyInventory()
	log.GetLogger().Info("Dependency report:\n" + deps.FormatDependencyReport(states))

	svc := service.NewService()
	if svc == nil {
		log.GetLogger().Error("Service initialization failed")
		os.Exit(1)
	}

	var (
		q      *queue.Queue
		runner *taskrunner.Runner
	)
	if config.Conf.Queue.RedisAddr != "" {
		q = queue.NewQueue(queue.ConfigFromApp())
		defer q.Close()
	} else {
		runner = taskrunner.New(svc, taskrunner.DefaultConfig())
		defer runner.Close()
	}

	engine := gin.Default()
	router.SetupRouter(engine, svc, q, runner)

	addr := fmt.Sprintf("%s:%d", config.Conf.Server.Host, config.Conf.Server.Port)

	var g errgroup.Group
	g.Go(func() error {
		log.GetLogger().Info("HTTP server listening", zap.String("addr", addr))
		return engine.Run(addr)
	})
	if q != nil {
		g.Go(func() error {
			return queue.StartWorker(q, svc)
		})
	}
	if err = g.Wait(); err != nil {
		log.GetLogger().Error("Server exited", zap.Error(err))
		os.Exit(1)
	}
}
