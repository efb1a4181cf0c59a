package handler

import (
	"buzzy/internal/queue"
	"buzzy/internal/service"
	"buzzy/internal/taskrunner"
)

// Handler carries the wired service layer and the async job path. Queue is
// the durable Redis-backed path; Runner is the in-process fallback used when
// Redis is not configured. Both nil disables the enqueue endpoint.
type Handler struct {
	Service *service.Service
	Queue   *queue.Queue
	Runner  *taskrunner.Runner
}

func NewHandler(svc *service.Service, q *queue.Queue, r *taskrunner.Runner) Handler {
	return Handler{Service: svc, Queue: q, Runner: r}
}
