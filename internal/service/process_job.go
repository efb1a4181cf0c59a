package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appErrors "buzzy/pkg/errors"
	"buzzy/pkg/util"

	"buzzy/config"
	"buzzy/internal/appdirs"
	"buzzy/internal/dto"
	"buzzy/internal/storage"
	"buzzy/internal/subtitle"
	"buzzy/internal/types"
	"buzzy/log"
)

// ProcessJob drives one clip extraction job end to end. It always returns a
// structured result; no payload, collaborator failure or panic escapes to
// the caller as an exception.
func (s *Service) ProcessJob(ctx context.Context, payload dto.ProcessJobPayload) (result dto.ProcessJobResult) {
	defer func() {
		if r := recover(); r != nil {
			log.GetLogger().Error("ProcessJob panic recovered", zap.Any("panic", r))
			result = dto.NewFailedResult(fmt.Errorf("internal error: %v", r))
		}
	}()

	doc, ok := payload.Normalize()
	if !ok {
		log.GetLogger().Warn("ProcessJob no document in payload")
		return dto.NewSkippedResult(appErrors.ErrNoDocument.Message)
	}

	runId := uuid.NewString()
	run := &storage.JobRun{
		RunId:        runId,
		VideoId:      doc.VideoId,
		UserId:       doc.UserId,
		TranscriptId: doc.Id,
	}

	// A transcript without candidate windows is a normal outcome, reported
	// and recorded but never treated as a fault.
	if strings.TrimSpace(doc.ClipsTimestamps) == "" {
		log.GetLogger().Info("ProcessJob no clips timestamps to process",
			zap.String("transcriptId", doc.Id),
			zap.String("videoId", doc.VideoId))
		if doc.UserId != "" {
			s.sendNoClipsEmail(ctx, doc.UserId, doc.VideoId)
		}
		run.Status = storage.JobRunStatusSkipped
		saveRun(run)
		return dto.NewSkippedResult(appErrors.ErrNoClipWindows.Message)
	}

	windows, badWindowMsg := parseClipWindows(doc.ClipsTimestamps)
	if badWindowMsg != "" {
		log.GetLogger().Error("ProcessJob malformed clip windows",
			zap.String("transcriptId", doc.Id),
			zap.String("clipsTimestamps", util.TruncateForLog(doc.ClipsTimestamps, 512)),
			zap.String("reason", badWindowMsg))
		run.Status = storage.JobRunStatusFailed
		run.FailReason = badWindowMsg
		saveRun(run)
		return dto.NewSkippedResult(badWindowMsg)
	}

	if len(windows) == 0 {
		log.GetLogger().Info("ProcessJob empty clip window list",
			zap.String("transcriptId", doc.Id))
		if doc.UserId != "" {
			s.sendNoClipsEmail(ctx, doc.UserId, doc.VideoId)
		}
		run.Status = storage.JobRunStatusSkipped
		saveRun(run)
		return dto.NewSkippedResult(appErrors.ErrNoClipWindows.Message)
	}

	run.Status = storage.JobRunStatusProcessing
	run.TotalClips = len(windows)
	saveRun(run)

	log.GetLogger().Info("ProcessJob starting",
		zap.String("runId", runId),
		zap.String("videoId", doc.VideoId),
		zap.Int("windows", len(windows)))

	res, err := s.runJob(ctx, doc, windows)
	if err != nil {
		log.GetLogger().Error("ProcessJob failed",
			zap.String("runId", runId),
			zap.String("videoId", doc.VideoId),
			zap.Error(err))
		if doc.UserId != "" {
			s.sendProcessingFailedEmail(ctx, doc.UserId, doc.VideoId, err.Error())
		}
		run.Status = storage.JobRunStatusFailed
		run.FailReason = err.Error()
		saveRun(run)
		return dto.NewFailedResult(err)
	}

	run.Status = storage.JobRunStatusCompleted
	run.ProcessedClips = len(res.clipIds)
	saveRun(run)
	return dto.NewProcessedResult(
		fmt.Sprintf("Processed %d clips successfully", len(res.clipIds)),
		len(res.clipIds), len(windows), res.clipIds)
}

type jobOutcome struct {
	clipIds     []string
	thumbnailId string
}

// runJob covers the fallible middle of the job: fetch, probe, orchestrate,
// persist. Errors returned here put the job in the failed state.
func (s *Service) runJob(ctx context.Context, doc types.TranscriptDoc, windows []types.ClipWindow) (jobOutcome, error) {
	cfg := config.Conf.Appwrite

	videoDoc, err := s.getVideoDocument(ctx, doc.VideoId)
	if err != nil {
		return jobOutcome{}, err
	}
	s.updateVideoDocument(ctx, doc.VideoId, map[string]any{"status": types.VideoStatusProcessing})

	tempDir, err := os.MkdirTemp(tempRoot(), "job_"+util.SanitizeFileName(doc.VideoId)+"_*")
	if err != nil {
		return jobOutcome{}, fmt.Errorf("runJob temp dir error: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(tempDir); err != nil {
			log.GetLogger().Warn("runJob temp cleanup error",
				zap.String("tempDir", tempDir), zap.Error(err))
		}
	}()

	// Fetch the source binary. Blob missing decides the whole job.
	videoFileId := videoDoc.BucketFileId
	if videoFileId == "" {
		videoFileId = doc.VideoId
	}
	videoBytes, err := s.Blob.Download(ctx, cfg.VideosBucketId, videoFileId)
	if err != nil {
		s.updateVideoDocument(ctx, doc.VideoId, map[string]any{"status": types.VideoStatusFailed})
		return jobOutcome{}, fmt.Errorf("failed to download video: %w", err)
	}
	sourcePath := filepath.Join(tempDir, "original_"+util.SanitizeFileName(videoFileId)+".mp4")
	if err = os.WriteFile(sourcePath, videoBytes, 0o644); err != nil {
		return jobOutcome{}, fmt.Errorf("runJob write source error: %w", err)
	}

	dims, err := s.Extractor.Probe(ctx, sourcePath)
	if err != nil {
		s.updateVideoDocument(ctx, doc.VideoId, map[string]any{"status": types.VideoStatusFailed})
		return jobOutcome{}, err
	}
	log.GetLogger().Info("runJob source video ready",
		zap.String("videoId", doc.VideoId),
		zap.Int("width", dims.Width),
		zap.Int("height", dims.Height),
		zap.Int("sizeBytes", len(videoBytes)))

	thumbnailId := s.generateVideoThumbnail(ctx, doc.VideoId, sourcePath, tempDir)

	entries, err := s.loadCaptionEntries(ctx, doc)
	if err != nil {
		s.updateVideoDocument(ctx, doc.VideoId, map[string]any{"status": types.VideoStatusFailed})
		return jobOutcome{}, err
	}

	clipIds := s.processClips(ctx, windows, doc, sourcePath, dims, entries, tempDir)

	fields := map[string]any{
		"status":  types.VideoStatusCompleted,
		"clipIds": clipIds,
	}
	if thumbnailId != "" {
		fields["thumbnailId"] = thumbnailId
	}
	if _, err = s.Docs.UpdateDocument(ctx, cfg.DatabaseId, cfg.VideosCollectionId, doc.VideoId, fields); err != nil {
		return jobOutcome{}, fmt.Errorf("failed to update video document: %w", err)
	}

	// Reclaim blob space once clips exist. Deletion failure never fails the job.
	if config.Conf.App.DeleteSourceVideo && len(clipIds) > 0 {
		if err = s.Blob.Delete(ctx, cfg.VideosBucketId, videoFileId); err != nil {
			log.GetLogger().Warn("runJob source video delete failed",
				zap.String("videoId", doc.VideoId), zap.Error(err))
		}
	}

	if doc.UserId != "" {
		s.sendProcessingCompleteEmail(ctx, doc.UserId, doc.VideoId, len(clipIds), len(windows), thumbnailId)
	}
	return jobOutcome{clipIds: clipIds, thumbnailId: thumbnailId}, nil
}

func (s *Service) getVideoDocument(ctx context.Context, videoId string) (types.SourceVideo, error) {
	cfg := config.Conf.Appwrite
	raw, err := s.Docs.GetDocument(ctx, cfg.DatabaseId, cfg.VideosCollectionId, videoId)
	if err != nil {
		return types.SourceVideo{}, fmt.Errorf("failed to get video document: %w", err)
	}
	video := types.SourceVideo{Id: videoId}
	if v, ok := raw["$id"].(string); ok {
		video.Id = v
	}
	if v, ok := raw["fileName"].(string); ok {
		video.FileName = v
	}
	if v, ok := raw["bucketFileId"].(string); ok {
		video.BucketFileId = v
	}
	if v, ok := raw["status"].(string); ok {
		video.Status = v
	}
	return video, nil
}

// updateVideoDocument is the best-effort variant used for transitional
// status writes. The terminal completed update stays fallible.
func (s *Service) updateVideoDocument(ctx context.Context, videoId string, fields map[string]any) {
	cfg := config.Conf.Appwrite
	if _, err := s.Docs.UpdateDocument(ctx, cfg.DatabaseId, cfg.VideosCollectionId, videoId, fields); err != nil {
		log.GetLogger().Warn("updateVideoDocument error",
			zap.String("videoId", videoId), zap.Error(err))
	}
}

func (s *Service) generateVideoThumbnail(ctx context.Context, videoId, sourcePath, tempDir string) string {
	thumbPath := filepath.Join(tempDir, "video_thumb.jpg")
	if err := s.Extractor.GenerateThumbnail(ctx, sourcePath, thumbPath, thumbnailTimestamp); err != nil {
		log.GetLogger().Warn("generateVideoThumbnail grab failed",
			zap.String("videoId", videoId), zap.Error(err))
		return ""
	}
	id, err := s.Blob.Upload(ctx, config.Conf.Appwrite.ThumbnailsBucketId, uuid.NewString(), thumbPath, util.SanitizeFileName(videoId)+"_thumb.jpg")
	if err != nil {
		log.GetLogger().Warn("generateVideoThumbnail upload failed",
			zap.String("videoId", videoId), zap.Error(err))
		return ""
	}
	return id
}

// loadCaptionEntries resolves the caption track for the job. A full SRT in
// the transcripts bucket wins; the legacy sentence-level JSON transcript is
// the fallback. No caption source at all is fine, clips just cut plain.
func (s *Service) loadCaptionEntries(ctx context.Context, doc types.TranscriptDoc) ([]types.SubtitleEntry, error) {
	if doc.TranscriptFileId != "" {
		data, err := s.Blob.Download(ctx, config.Conf.Appwrite.TranscriptsBucketId, doc.TranscriptFileId)
		if err != nil {
			return nil, fmt.Errorf("failed to download transcript: %w", err)
		}
		entries, err := subtitle.Parse(string(data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse transcript: %w", err)
		}
		log.GetLogger().Info("loadCaptionEntries parsed subtitle track",
			zap.String("transcriptFileId", doc.TranscriptFileId),
			zap.Int("entries", len(entries)))
		return entries, nil
	}

	if strings.TrimSpace(doc.SentimentAnalysis) != "" {
		var sentences []types.SentimentSentence
		if err := json.Unmarshal([]byte(doc.SentimentAnalysis), &sentences); err != nil {
			log.GetLogger().Warn("loadCaptionEntries sentence transcript unparseable, cutting plain",
				zap.Error(err))
			return nil, nil
		}
		entries := subtitle.EntriesFromSentences(sentences)
		log.GetLogger().Info("loadCaptionEntries built entries from sentence transcript",
			zap.Int("sentences", len(sentences)),
			zap.Int("entries", len(entries)))
		return entries, nil
	}
	return nil, nil
}

// parseClipWindows decodes the candidate windows. Only unparseable JSON is
// fatal here; windows with bad time values are left in and skipped one by
// one by the orchestrator so the rest of the batch still runs.
func parseClipWindows(clipsTimestamps string) ([]types.ClipWindow, string) {
	var windows []types.ClipWindow
	if err := json.Unmarshal([]byte(clipsTimestamps), &windows); err != nil {
		return nil, appErrors.ErrMalformedPayload.Message
	}
	return windows, ""
}

func tempRoot() string {
	if config.Conf.App.TempDir != "" {
		return config.Conf.App.TempDir
	}
	if dir, err := appdirs.ResolveTempRoot(); err == nil && dir != "" {
		return dir
	}
	return os.TempDir()
}

func saveRun(run *storage.JobRun) {
	if err := storage.SaveJobRun(run); err != nil {
		log.GetLogger().Warn("saveRun bookkeeping error",
			zap.String("runId", run.RunId), zap.Error(err))
	}
}
