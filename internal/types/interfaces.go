package types

import "context"

// BlobStore is the binary object storage the pipeline reads sources from and
// writes clips/thumbnails to.
type BlobStore interface {
	Download(ctx context.Context, bucket, fileId string) ([]byte, error)
	// Upload stores the file at path under fileId and returns the stored id.
	Upload(ctx context.Context, bucket, fileId, path, fileName string) (string, error)
	Delete(ctx context.Context, bucket, fileId string) error
}

// DocumentStore is the metadata document database.
type DocumentStore interface {
	GetDocument(ctx context.Context, db, collection, id string) (map[string]any, error)
	CreateDocument(ctx context.Context, db, collection, id string, fields map[string]any) (map[string]any, error)
	UpdateDocument(ctx context.Context, db, collection, id string, fields map[string]any) (map[string]any, error)
}

// EmailMessage is one outbound notification.
type EmailMessage struct {
	UserId      string
	Subject     string
	Html        string
	Attachments []string // "bucketId:fileId" refs
}

// Mailer sends user notifications. Callers treat failures as log-only.
type Mailer interface {
	SendEmail(ctx context.Context, msg EmailMessage) error
}

// ChatCompleter is the LLM used by the highlight analyzer.
type ChatCompleter interface {
	ChatCompletion(prompt string) (string, error)
}

// MediaExtractor wraps the external transcoder. All times are milliseconds.
type MediaExtractor interface {
	ExtractPlain(ctx context.Context, sourcePath string, startMs, durationMs int64, destPath string) error
	ExtractWithCaptions(ctx context.Context, sourcePath string, startMs, durationMs int64, destPath string, entries []SubtitleEntry, dims VideoDimensions) error
	// GenerateThumbnail grabs a single frame; timestamp format HH:MM:SS.mmm.
	GenerateThumbnail(ctx context.Context, sourcePath, destPath, timestamp string) error
	Probe(ctx context.Context, sourcePath string) (VideoDimensions, error)
}
