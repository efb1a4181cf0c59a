package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"buzzy/internal/dto"
	"buzzy/internal/service"
	"buzzy/log"
)

// TaskHandlers routes queued tasks to the service layer.
type TaskHandlers struct {
	service *service.Service
}

func NewTaskHandlers(svc *service.Service) *TaskHandlers {
	return &TaskHandlers{service: svc}
}

// HandleProcessJob runs one clip extraction job. The service reports business
// failures inside the result; only infrastructure errors are returned so
// Asynq retries transient faults and not malformed payloads.
func (h *TaskHandlers) HandleProcessJob(ctx context.Context, t *asynq.Task) error {
	var payload dto.ProcessJobPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	log.GetLogger().Info("[Queue] Processing clip job",
		zap.String("transcript_id", payload.Id),
		zap.String("video_id", payload.VideoId))

	result := h.service.ProcessJob(ctx, payload)
	if !result.Success && result.Error != "" {
		return fmt.Errorf("process job failed: %s", result.Error)
	}

	log.GetLogger().Info("[Queue] Clip job finished",
		zap.String("transcript_id", payload.Id),
		zap.Bool("success", result.Success),
		zap.Int("clips", len(result.ClipIds)))

	return nil
}

func (h *TaskHandlers) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeProcessJob, h.HandleProcessJob)
}

// StartWorker starts the Asynq worker with registered handlers. Blocks until
// the server shuts down.
func StartWorker(q *Queue, svc *service.Service) error {
	handlers := NewTaskHandlers(svc)

	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	log.GetLogger().Info("[Queue] Starting worker",
		zap.String("redis_addr", q.config.RedisAddr),
		zap.Int("concurrency", q.config.Concurrency))

	return q.server.Run(mux)
}
