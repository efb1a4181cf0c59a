package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SourceVideo lifecycle statuses.
const (
	VideoStatusUploaded   = "uploaded"
	VideoStatusProcessing = "processing"
	VideoStatusCompleted  = "completed"
	VideoStatusFailed     = "failed"
)

const ClipMimeType = "video/mp4"

// ClipWindow is one candidate highlight window produced by the upstream
// analysis step. Times are absolute milliseconds within the source video.
type ClipWindow struct {
	Start int64  `json:"start"`
	End   int64  `json:"end"`
	Text  string `json:"text,omitempty"`
}

// UnmarshalJSON tolerates string-typed start/end, which the upstream
// generator has been observed to emit.
func (w *ClipWindow) UnmarshalJSON(data []byte) error {
	var raw struct {
		Start json.Number `json:"start"`
		End   json.Number `json:"end"`
		Text  string      `json:"text"`
	}
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	start, err := parseFlexibleMs(raw.Start)
	if err != nil {
		return fmt.Errorf("clip window start: %w", err)
	}
	end, err := parseFlexibleMs(raw.End)
	if err != nil {
		return fmt.Errorf("clip window end: %w", err)
	}

	w.Start = start
	w.End = end
	w.Text = raw.Text
	return nil
}

func parseFlexibleMs(n json.Number) (int64, error) {
	s := strings.TrimSpace(n.String())
	if s == "" {
		return 0, fmt.Errorf("missing value")
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return int64(f), nil
}

// Duration returns the window length in milliseconds.
func (w ClipWindow) Duration() int64 {
	return w.End - w.Start
}

// SubtitleEntry is one caption block of a time-coded track.
// Start/End are milliseconds; for a sliced track they are clip-relative.
type SubtitleEntry struct {
	Index int
	Start int64
	End   int64
	Lines []string
}

// Text joins the entry's lines with a space for single-line overlay rendering.
func (e SubtitleEntry) Text() string {
	return strings.Join(e.Lines, " ")
}

// SentimentSentence is one sentence of the legacy sentence-level transcript
// (the sentimentAnalysis payload field).
type SentimentSentence struct {
	Text      string `json:"text"`
	Start     int64  `json:"start"`
	End       int64  `json:"end"`
	Sentiment string `json:"sentiment,omitempty"`
}

// SourceVideo mirrors the videos collection document.
type SourceVideo struct {
	Id           string   `json:"$id"`
	UserId       string   `json:"userId"`
	Title        string   `json:"title"`
	FileName     string   `json:"fileName"`
	BucketFileId string   `json:"bucketFileId"`
	Status       string   `json:"status"`
	ClipIds      []string `json:"clipIds"`
	ThumbnailId  string   `json:"thumbnailId,omitempty"`
}

// TranscriptDoc is the normalized triggering record: one transcript document
// carrying the candidate clip windows for one source video.
type TranscriptDoc struct {
	Id                string `json:"$id"`
	VideoId           string `json:"videoId"`
	UserId            string `json:"userId"`
	Transcript        string `json:"transcript,omitempty"`
	TranscriptFileId  string `json:"transcriptFileId,omitempty"`
	ClipsTimestamps   string `json:"clipsTimestamps"`
	SentimentAnalysis string `json:"sentimentAnalysis,omitempty"`
}

// Clip is the metadata document created for each successfully cut clip.
// StartTime/EndTime/Duration stay in full-video milliseconds, not re-based.
type Clip struct {
	UserId       string `json:"userId"`
	VideoId      string `json:"videoId"`
	FileName     string `json:"fileName"`
	StartTime    int64  `json:"startTime"`
	EndTime      int64  `json:"endTime"`
	Duration     int64  `json:"duration"`
	Text         string `json:"text"`
	SizeBytes    int64  `json:"sizeBytes"`
	MimeType     string `json:"mimeType"`
	BucketFileId string `json:"bucketFileId"`
	ThumbnailId  string `json:"thumbnailId,omitempty"`
}

// VideoDimensions holds the probed pixel size of a video stream.
type VideoDimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// IsPortrait reports whether the video is taller than wide; portrait clips
// get a larger caption font scale.
func (d VideoDimensions) IsPortrait() bool {
	return d.Height > d.Width
}
