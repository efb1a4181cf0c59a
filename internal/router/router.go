package router

import (
	"github.com/gin-gonic/gin"

	"buzzy/internal/handler"
	"buzzy/internal/queue"
	"buzzy/internal/service"
	"buzzy/internal/taskrunner"
)

func SetupRouter(r *gin.Engine, svc *service.Service, q *queue.Queue, runner *taskrunner.Runner) {
	r.GET("/ping", func(c *gin.Context) {
		c.String(200, "Pong")
	})

	hdl := handler.NewHandler(svc, q, runner)
	api := r.Group("/api")
	{
		api.POST("/clips/process", hdl.ProcessClips)
		api.POST("/clips/enqueue", hdl.EnqueueClips)
		api.POST("/clips/analyze", hdl.AnalyzeTranscript)
		api.GET("/jobs", hdl.GetJobHistory)
		api.GET("/jobs/:runId", hdl.GetJob)
	}
}
