package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"buzzy/internal/dto"
	"buzzy/internal/response"
	"buzzy/internal/storage"
	"buzzy/log"
	apperrors "buzzy/pkg/errors"
)

// ProcessClips runs a clip extraction job inline and returns its result
// verbatim. The result body carries success/failure itself, so the endpoint
// always answers 200 once the payload binds.
func (h Handler) ProcessClips(c *gin.Context) {
	var req dto.ProcessJobPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		log.GetLogger().Error("ProcessClips ShouldBindJSON err", zap.Error(err))
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid parameters", err))
		return
	}

	result := h.Service.ProcessJob(c.Request.Context(), req)
	response.R(c, result)
}

// EnqueueClips submits a clip extraction job to the background queue.
func (h Handler) EnqueueClips(c *gin.Context) {
	var req dto.EnqueueJobReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.GetLogger().Error("EnqueueClips ShouldBindJSON err", zap.Error(err))
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid parameters", err))
		return
	}

	var (
		taskId string
		err    error
	)
	switch {
	case h.Queue != nil:
		taskId, err = h.Queue.EnqueueProcessJob(req.ProcessJobPayload)
	case h.Runner != nil:
		taskId, err = h.Runner.SubmitProcessJob(req.ProcessJobPayload)
	default:
		response.Error(c, apperrors.CodeInvalidParams, "Async processing is not configured")
		return
	}
	if err != nil {
		log.GetLogger().Error("EnqueueClips enqueue err", zap.Error(err))
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeUnknown, "Failed to enqueue job", err))
		return
	}
	response.Success(c, dto.EnqueueJobResData{TaskId: taskId})
}

// AnalyzeTranscript asks the LLM for highlight windows over a transcript.
func (h Handler) AnalyzeTranscript(c *gin.Context) {
	var req dto.AnalyzeTranscriptReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.GetLogger().Error("AnalyzeTranscript ShouldBindJSON err", zap.Error(err))
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid parameters", err))
		return
	}

	data, err := h.Service.AnalyzeTranscript(req)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, data)
}

// GetJobHistory lists recent job runs, newest first.
func (h Handler) GetJobHistory(c *gin.Context) {
	runs, err := storage.GetJobRunHistory(50)
	if err != nil {
		log.GetLogger().Error("GetJobHistory err", zap.Error(err))
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeUnknown, "Failed to load job history", err))
		return
	}
	response.Success(c, runs)
}

// GetJob returns one job run by its run id.
func (h Handler) GetJob(c *gin.Context) {
	runId := c.Param("runId")
	run, err := storage.GetJobRun(runId)
	if err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeNotFound, "Job run not found", err))
		return
	}
	response.Success(c, run)
}
