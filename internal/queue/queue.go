// Package queue provides background job processing using Asynq. Process jobs
// enqueued here survive restarts and retry with exponential backoff.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"buzzy/config"
	"buzzy/internal/dto"
	"buzzy/log"
)

const TypeProcessJob = "clips:process"

// QueueConfig holds Redis connection settings for Asynq.
type QueueConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Concurrency   int
}

// ConfigFromApp builds the queue configuration from the loaded app config.
func ConfigFromApp() QueueConfig {
	cfg := QueueConfig{
		RedisAddr:     config.Conf.Queue.RedisAddr,
		RedisPassword: config.Conf.Queue.RedisPassword,
		RedisDB:       config.Conf.Queue.RedisDB,
		Concurrency:   config.Conf.Queue.Concurrency,
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 3
	}
	return cfg
}

// Queue manages job enqueueing and worker processing.
type Queue struct {
	client *asynq.Client
	server *asynq.Server
	config QueueConfig
}

func NewQueue(cfg QueueConfig) *Queue {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}

	client := asynq.NewClient(redisOpt)

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: cfg.Concurrency,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			RetryDelayFunc: func(n int, e error, t *asynq.Task) time.Duration {
				// Exponential backoff: 10s, 20s, 40s, 80s, ...
				return time.Duration(10<<uint(n)) * time.Second
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.GetLogger().Error("Task failed",
					zap.String("type", task.Type()),
					zap.ByteString("payload", task.Payload()),
					zap.Error(err))
			}),
		},
	)

	return &Queue{
		client: client,
		server: server,
		config: cfg,
	}
}

// EnqueueProcessJob adds a clip extraction job to the queue and returns the
// queue-assigned task id.
func (q *Queue) EnqueueProcessJob(payload dto.ProcessJobPayload) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	task := asynq.NewTask(TypeProcessJob, data,
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Minute),
		asynq.Queue("default"),
	)

	info, err := q.client.Enqueue(task)
	if err != nil {
		return "", fmt.Errorf("failed to enqueue task: %w", err)
	}

	log.GetLogger().Info("Process job enqueued",
		zap.String("transcript_id", payload.Id),
		zap.String("video_id", payload.VideoId),
		zap.String("queue_id", info.ID),
		zap.String("queue", info.Queue))

	return info.ID, nil
}

// Close gracefully shuts down the queue.
func (q *Queue) Close() error {
	if err := q.client.Close(); err != nil {
		return err
	}
	q.server.Shutdown()
	return nil
}

func (q *Queue) Client() *asynq.Client {
	return q.client
}

func (q *Queue) Server() *asynq.Server {
	return q.server
}
