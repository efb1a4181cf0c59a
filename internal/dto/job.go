package dto

import (
	"buzzy/internal/types"
)

// ProcessJobPayload is the raw trigger payload. Document-store events deliver
// the transcript document either flat or wrapped under "document"; Normalize
// collapses both shapes so nothing downstream branches on payload shape again.
type ProcessJobPayload struct {
	types.TranscriptDoc
	Document *types.TranscriptDoc `json:"document,omitempty"`
}

// Normalize returns the transcript document regardless of payload shape.
// ok=false means neither shape carried a document id.
func (p ProcessJobPayload) Normalize() (types.TranscriptDoc, bool) {
	if p.TranscriptDoc.Id != "" {
		return p.TranscriptDoc, true
	}
	if p.Document != nil && p.Document.Id != "" {
		return *p.Document, true
	}
	return types.TranscriptDoc{}, false
}

// ProcessJobResult is the structured result every invocation returns,
// terminal state included. The caller never sees an unhandled error.
type ProcessJobResult struct {
	Success        bool     `json:"success"`
	Message        string   `json:"message,omitempty"`
	ProcessedClips *int     `json:"processedClips,omitempty"`
	TotalClips     *int     `json:"totalClips,omitempty"`
	ClipIds        []string `json:"clipIds,omitempty"`
	Error          string   `json:"error,omitempty"`
}

func NewProcessedResult(message string, processed, total int, clipIds []string) ProcessJobResult {
	return ProcessJobResult{
		Success:        true,
		Message:        message,
		ProcessedClips: &processed,
		TotalClips:     &total,
		ClipIds:        clipIds,
	}
}

func NewSkippedResult(message string) ProcessJobResult {
	return ProcessJobResult{Success: false, Message: message}
}

func NewFailedResult(err error) ProcessJobResult {
	return ProcessJobResult{Success: false, Error: err.Error()}
}

// AnalyzeTranscriptReq asks the analyzer for viral highlight windows.
// Sentences are optional; when present the LLM's quoted excerpts are snapped
// to sentence boundaries.
type AnalyzeTranscriptReq struct {
	VideoId    string                    `json:"videoId"`
	Transcript string                    `json:"transcript"`
	Sentences  []types.SentimentSentence `json:"sentences,omitempty"`
}

type AnalyzeTranscriptResData struct {
	VideoId string             `json:"videoId"`
	Clips   []types.ClipWindow `json:"clips"`
}

// EnqueueJobReq submits a process job to the async queue instead of running
// it inline.
type EnqueueJobReq struct {
	ProcessJobPayload
}

type EnqueueJobResData struct {
	TaskId string `json:"taskId"`
}
