// Package taskrunner executes process jobs with in-memory workers. It backs
// the async trigger path when Redis is not configured, trading durability for
// zero external infrastructure.
package taskrunner

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"buzzy/internal/dto"
	"buzzy/internal/service"
	"buzzy/log"
	"buzzy/pkg/util"
)

const (
	defaultQueueSize   = 128
	defaultConcurrency = 2
)

var (
	ErrRunnerStopped = errors.New("task runner stopped")
	ErrQueueFull     = errors.New("task queue is full")
)

// Config controls in-process runner behavior.
type Config struct {
	QueueSize   int
	Concurrency int
}

func DefaultConfig() Config {
	return Config{
		QueueSize:   defaultQueueSize,
		Concurrency: defaultConcurrency,
	}
}

type queuedJob struct {
	taskId  string
	payload dto.ProcessJobPayload
}

// Runner executes queued process jobs with in-memory workers. Queued jobs do
// not survive a process restart.
type Runner struct {
	service *service.Service
	config  Config

	queue  chan queuedJob
	ctx    context.Context
	cancel context.CancelFunc

	workerWg sync.WaitGroup
	closed   atomic.Bool
}

// New creates and starts a task runner.
func New(svc *service.Service, cfg Config) *Runner {
	if svc == nil {
		svc = service.NewService()
	}

	cfg = normalizeConfig(cfg)
	ctx, cancel := context.WithCancel(context.Background())

	runner := &Runner{
		service: svc,
		config:  cfg,
		queue:   make(chan queuedJob, cfg.QueueSize),
		ctx:     ctx,
		cancel:  cancel,
	}

	for i := 0; i < cfg.Concurrency; i++ {
		runner.workerWg.Add(1)
		go runner.worker(i + 1)
	}

	return runner
}

func normalizeConfig(cfg Config) Config {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	return cfg
}

// SubmitProcessJob queues a clip extraction job and returns its task id.
func (r *Runner) SubmitProcessJob(payload dto.ProcessJobPayload) (string, error) {
	if r.closed.Load() {
		return "", ErrRunnerStopped
	}

	job := queuedJob{taskId: util.GenerateRandStringWithUpperLowerNum(16), payload: payload}
	select {
	case <-r.ctx.Done():
		return "", ErrRunnerStopped
	case r.queue <- job:
		log.GetLogger().Info("[TaskRunner] job submitted",
			zap.String("task_id", job.taskId),
			zap.String("transcript_id", payload.Id),
			zap.String("video_id", payload.VideoId))
		return job.taskId, nil
	default:
		return "", ErrQueueFull
	}
}

func (r *Runner) worker(workerID int) {
	defer r.workerWg.Done()

	for {
		select {
		case <-r.ctx.Done():
			return
		default:
		}

		select {
		case <-r.ctx.Done():
			return
		case job := <-r.queue:
			r.processJob(workerID, job)
		}
	}
}

func (r *Runner) processJob(workerID int, job queuedJob) {
	result := r.service.ProcessJob(r.ctx, job.payload)
	if !result.Success && result.Error != "" {
		log.GetLogger().Error("[TaskRunner] job failed",
			zap.Int("worker_id", workerID),
			zap.String("task_id", job.taskId),
			zap.String("error", result.Error))
		return
	}

	log.GetLogger().Info("[TaskRunner] job completed",
		zap.Int("worker_id", workerID),
		zap.String("task_id", job.taskId),
		zap.Bool("success", result.Success),
		zap.Int("clips", len(result.ClipIds)))
}

// Close stops workers and rejects new jobs.
func (r *Runner) Close() {
	if !r.closed.CompareAndSwap(false, true) {
		return
	}

	r.cancel()
	r.workerWg.Wait()
}

// Pending returns the number of queued jobs waiting for workers.
func (r *Runner) Pending() int {
	return len(r.queue)
}
