package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"buzzy/config"
	"buzzy/internal/types"
	"buzzy/log"
)

// All notifications are best-effort. A user without a reachable inbox never
// affects the pipeline outcome.

func (s Service) sendProcessingCompleteEmail(ctx context.Context, userId, videoId string, processedClips, totalClips int, thumbnailId string) {
	html := fmt.Sprintf(`
      <h2>Video Processing Complete</h2>
      <p>Hello,</p>
      <p>Your video clip processing has been completed successfully.</p>
      <p><strong>Video ID:</strong> %s</p>
      <p><strong>Clips Processed:</strong> %d of %d</p>
      <p>You can now access your clips in the application.</p>
      <p>Best regards,<br>The Buzzler Team</p>
    `, videoId, processedClips, totalClips)

	msg := types.EmailMessage{
		UserId:  userId,
		Subject: "Your video clips are ready",
		Html:    html,
	}
	if thumbnailId != "" {
		msg.Attachments = []string{fmt.Sprintf("%s:%s", config.Conf.Appwrite.ThumbnailsBucketId, thumbnailId)}
	}
	if err := s.Mailer.SendEmail(ctx, msg); err != nil {
		log.GetLogger().Warn("sendProcessingCompleteEmail send error",
			zap.String("userId", userId),
			zap.Error(err))
	}
}

func (s Service) sendProcessingFailedEmail(ctx context.Context, userId, videoId, errorMessage string) {
	if videoId == "" {
		videoId = "Unknown"
	}
	html := fmt.Sprintf(`
      <h2>Video Processing Failed</h2>
      <p>Hello,</p>
      <p>We're sorry, but your video clip processing has failed.</p>
      <p><strong>Video ID:</strong> %s</p>
      <p><strong>Error:</strong> %s</p>
      <p>Please try again or contact support if the problem persists.</p>
      <p>Best regards,<br>The Buzzler Team</p>
    `, videoId, errorMessage)

	err := s.Mailer.SendEmail(ctx, types.EmailMessage{
		UserId:  userId,
		Subject: "Video Clip Processing Failed",
		Html:    html,
	})
	if err != nil {
		log.GetLogger().Warn("sendProcessingFailedEmail send error",
			zap.String("userId", userId),
			zap.Error(err))
	}
}

func (s Service) sendNoClipsEmail(ctx context.Context, userId, videoId string) {
	html := fmt.Sprintf(`
      <h2>No Clip Timestamps Found</h2>
      <p>Hello,</p>
      <p>We received a transcript for your video, but no clip timestamps were provided.</p>
      <p><strong>Video ID:</strong> %s</p>
      <p>No clips were processed as a result.</p>
      <p>Best regards,<br>The Buzzler Team</p>
    `, videoId)

	err := s.Mailer.SendEmail(ctx, types.EmailMessage{
		UserId:  userId,
		Subject: "No Clip Timestamps Found",
		Html:    html,
	})
	if err != nil {
		log.GetLogger().Warn("sendNoClipsEmail send error",
			zap.String("userId", userId),
			zap.Error(err))
	}
}
