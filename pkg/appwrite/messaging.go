package appwrite

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"buzzy/internal/types"
	"buzzy/log"
)

// SendEmail creates and immediately sends an email message to one user via
// Appwrite messaging. Attachments are bucket file references in the
// "bucketId:fileId" form.
func (c *Client) SendEmail(ctx context.Context, msg types.EmailMessage) error {
	body := map[string]any{
		"messageId": uuid.NewString(),
		"subject":   msg.Subject,
		"content":   msg.Html,
		"users":     []string{msg.UserId},
		"html":      true,
		"draft":     false,
	}
	if len(msg.Attachments) > 0 {
		body["attachments"] = msg.Attachments
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post("/v1/messaging/messages/email")
	if err != nil {
		return fmt.Errorf("SendEmail request error: %w", err)
	}
	if err = c.checkResponse(resp, "SendEmail"); err != nil {
		return err
	}
	log.GetLogger().Info("SendEmail queued",
		zap.String("userId", msg.UserId),
		zap.String("subject", msg.Subject))
	return nil
}
