package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"buzzy/pkg/util"

	"buzzy/config"
	"buzzy/internal/subtitle"
	"buzzy/internal/types"
	"buzzy/log"
)

// thumbnailTimestamp is where single-frame grabs are taken, one second in.
// Frame zero is often black or a fade-in.
const thumbnailTimestamp = "00:00:01.000"

// processClips runs the per-window pipeline sequentially and returns the ids
// of the clips that made it all the way to a metadata document. A failed
// window is logged and skipped; it never aborts the batch. Window order is
// preserved in the returned ids.
func (s *Service) processClips(ctx context.Context, windows []types.ClipWindow, doc types.TranscriptDoc, sourcePath string, dims types.VideoDimensions, entries []types.SubtitleEntry, tempDir string) []string {
	processedClipIds := make([]string, 0, len(windows))

	for i, window := range windows {
		if err := s.processWindow(ctx, i, window, doc, sourcePath, dims, entries, tempDir, &processedClipIds); err != nil {
			log.GetLogger().Error("processClips window failed",
				zap.Int("window", i+1),
				zap.Int64("startMs", window.Start),
				zap.Int64("endMs", window.End),
				zap.Error(err))
		}
	}

	log.GetLogger().Info("processClips batch finished",
		zap.String("videoId", doc.VideoId),
		zap.Int("processed", len(processedClipIds)),
		zap.Int("total", len(windows)))
	return processedClipIds
}

func (s *Service) processWindow(ctx context.Context, i int, window types.ClipWindow, doc types.TranscriptDoc, sourcePath string, dims types.VideoDimensions, entries []types.SubtitleEntry, tempDir string, processedClipIds *[]string) error {
	durationMs := window.Duration()
	if window.Start < 0 || durationMs <= 0 {
		return fmt.Errorf("invalid clip window: start=%dms end=%dms", window.Start, window.End)
	}

	clipId := uuid.NewString()
	safeName := util.SanitizeFileName(fmt.Sprintf("clip_%s_%d_%d", doc.VideoId, i+1, time.Now().UnixMilli()))
	clipFileName := safeName + ".mp4"
	clipPath := filepath.Join(tempDir, clipFileName)
	thumbPath := filepath.Join(tempDir, safeName+"_thumb.jpg")

	// Window-scoped temp files go regardless of outcome.
	defer func() {
		removeIfExists(clipPath)
		removeIfExists(thumbPath)
	}()

	captioned := false
	if len(entries) > 0 {
		sliced, err := subtitle.Slice(entries, window.Start, window.End, subtitle.SliceOptions{
			CropToWindow:  true,
			ShiftToZero:   true,
			MinDurationMs: config.Conf.Subtitle.MinEntryDurationMs,
		})
		switch {
		case err != nil:
			log.GetLogger().Warn("processWindow subtitle slice failed, cutting plain",
				zap.Int("window", i+1), zap.Error(err))
		case len(sliced) == 0:
			log.GetLogger().Info("processWindow no captions overlap window, cutting plain",
				zap.Int("window", i+1))
		default:
			if err = s.Extractor.ExtractWithCaptions(ctx, sourcePath, window.Start, durationMs, clipPath, sliced, dims); err != nil {
				log.GetLogger().Warn("processWindow caption burn failed, falling back to plain cut",
					zap.Int("window", i+1), zap.Error(err))
				removeIfExists(clipPath)
			} else {
				captioned = true
			}
		}
	}

	if !captioned {
		if err := s.Extractor.ExtractPlain(ctx, sourcePath, window.Start, durationMs, clipPath); err != nil {
			return fmt.Errorf("processWindow extract error: %w", err)
		}
	}

	info, err := os.Stat(clipPath)
	if err != nil {
		return fmt.Errorf("processWindow clip file was not created: %w", err)
	}

	// Per-clip thumbnail is best-effort; the clip survives without one.
	// Very short clips have no frame at the default offset, grab mid-clip.
	thumbTimestamp := thumbnailTimestamp
	if durationMs < 2000 {
		thumbTimestamp = util.FormatThumbnailTimestamp(durationMs / 2)
	}
	thumbnailId := ""
	if err = s.Extractor.GenerateThumbnail(ctx, clipPath, thumbPath, thumbTimestamp); err != nil {
		log.GetLogger().Warn("processWindow clip thumbnail failed",
			zap.Int("window", i+1), zap.Error(err))
	} else {
		id, uploadErr := s.Blob.Upload(ctx, config.Conf.Appwrite.ThumbnailsBucketId, uuid.NewString(), thumbPath, safeName+"_thumb.jpg")
		if uploadErr != nil {
			log.GetLogger().Warn("processWindow clip thumbnail upload failed",
				zap.Int("window", i+1), zap.Error(uploadErr))
		} else {
			thumbnailId = id
		}
	}

	bucketFileId, err := s.Blob.Upload(ctx, config.Conf.Appwrite.ClipsBucketId, clipId, clipPath, clipFileName)
	if err != nil {
		return fmt.Errorf("processWindow clip upload error: %w", err)
	}

	clip := types.Clip{
		UserId:       doc.UserId,
		VideoId:      doc.VideoId,
		FileName:     clipFileName,
		StartTime:    window.Start,
		EndTime:      window.End,
		Duration:     durationMs,
		Text:         window.Text,
		SizeBytes:    info.Size(),
		MimeType:     types.ClipMimeType,
		BucketFileId: bucketFileId,
		ThumbnailId:  thumbnailId,
	}
	if _, err = s.Docs.CreateDocument(ctx, config.Conf.Appwrite.DatabaseId, config.Conf.Appwrite.ClipsCollectionId, clipId, clipFields(clip)); err != nil {
		return fmt.Errorf("processWindow clip document error: %w", err)
	}

	*processedClipIds = append(*processedClipIds, clipId)
	log.GetLogger().Info("processWindow clip processed",
		zap.Int("window", i+1),
		zap.String("clipId", clipId),
		zap.Bool("captioned", captioned),
		zap.Int64("sizeBytes", info.Size()))
	return nil
}

func clipFields(clip types.Clip) map[string]any {
	fields := map[string]any{
		"userId":       clip.UserId,
		"videoId":      clip.VideoId,
		"fileName":     clip.FileName,
		"startTime":    clip.StartTime,
		"endTime":      clip.EndTime,
		"duration":     clip.Duration,
		"text":         clip.Text,
		"sizeBytes":    clip.SizeBytes,
		"mimeType":     clip.MimeType,
		"bucketFileId": clip.BucketFileId,
	}
	if clip.ThumbnailId != "" {
		fields["thumbnailId"] = clip.ThumbnailId
	}
	return fields
}

func removeIfExists(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.GetLogger().Warn("removeIfExists cleanup error",
			zap.String("path", path),
			zap.Error(err))
	}
}
