// Package ffmpeg wraps the ffmpeg/ffprobe binaries behind the media
// extraction interface: stream-copy cuts, caption-burning re-encodes,
// single-frame thumbnails and stream probing.
package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	appErrors "buzzy/pkg/errors"
	"buzzy/pkg/util"

	"buzzy/internal/types"
	"buzzy/log"
)

// Extractor runs ffmpeg and ffprobe as subprocesses.
type Extractor struct {
	FfmpegPath  string
	FfprobePath string
	FontFile    string
	Timeout     time.Duration
}

func NewExtractor(ffmpegPath, ffprobePath, fontFile string, timeout time.Duration) *Extractor {
	return &Extractor{
		FfmpegPath:  ffmpegPath,
		FfprobePath: ffprobePath,
		FontFile:    fontFile,
		Timeout:     timeout,
	}
}

// ExtractPlain cuts [startMs, startMs+durationMs) out of the source with
// stream copy. No re-encode, so cuts snap to keyframes but finish in
// near-constant time regardless of clip length.
func (e *Extractor) ExtractPlain(ctx context.Context, sourcePath string, startMs, durationMs int64, destPath string) error {
	args := []string{
		"-ss", util.FormatSeconds(startMs),
		"-i", sourcePath,
		"-t", util.FormatSeconds(durationMs),
		"-c", "copy",
		"-avoid_negative_ts", "make_zero",
		"-fflags", "+genpts",
		"-movflags", "+faststart",
		destPath,
		"-y",
	}
	log.GetLogger().Info("ExtractPlain cutting clip",
		zap.String("source", sourcePath),
		zap.Int64("startMs", startMs),
		zap.Int64("durationMs", durationMs))
	if _, err := Run(ctx, e.FfmpegPath, args, e.Timeout); err != nil {
		return err
	}
	return verifyOutput(destPath)
}

// ExtractWithCaptions cuts the window and burns the supplied subtitle
// entries into the video stream. Entries must be re-based to the clip
// timeline. Audio is stream-copied; only video re-encodes.
func (e *Extractor) ExtractWithCaptions(ctx context.Context, sourcePath string, startMs, durationMs int64, destPath string, entries []types.SubtitleEntry, dims types.VideoDimensions) error {
	if len(entries) == 0 {
		return e.ExtractPlain(ctx, sourcePath, startMs, durationMs, destPath)
	}
	filter := BuildDrawtextFilter(entries, dims, e.FontFile)
	args := []string{
		"-ss", util.FormatSeconds(startMs),
		"-i", sourcePath,
		"-t", util.FormatSeconds(durationMs),
		"-vf", filter,
		"-c:a", "copy",
		"-avoid_negative_ts", "make_zero",
		"-fflags", "+genpts",
		"-movflags", "+faststart",
		destPath,
		"-y",
	}
	log.GetLogger().Info("ExtractWithCaptions cutting captioned clip",
		zap.String("source", sourcePath),
		zap.Int64("startMs", startMs),
		zap.Int64("durationMs", durationMs),
		zap.Int("entries", len(entries)))
	if _, err := Run(ctx, e.FfmpegPath, args, e.Timeout); err != nil {
		return err
	}
	return verifyOutput(destPath)
}

// GenerateThumbnail grabs one frame at the given HH:MM:SS.mmm timestamp.
func (e *Extractor) GenerateThumbnail(ctx context.Context, sourcePath, destPath, timestamp string) error {
	args := []string{
		"-i", sourcePath,
		"-ss", timestamp,
		"-vframes", "1",
		destPath,
		"-y",
	}
	if _, err := Run(ctx, e.FfmpegPath, args, e.Timeout); err != nil {
		return err
	}
	return verifyOutput(destPath)
}

type probeResult struct {
	Streams []struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"streams"`
}

// Probe returns the pixel dimensions of the first video stream.
func (e *Extractor) Probe(ctx context.Context, sourcePath string) (types.VideoDimensions, error) {
	args := []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-of", "json",
		sourcePath,
	}
	out, err := Run(ctx, e.FfprobePath, args, e.Timeout)
	if err != nil {
		return types.VideoDimensions{}, appErrors.Wrap(appErrors.CodeProbeFailed, "ffprobe failed", err)
	}

	var result probeResult
	if err = json.Unmarshal([]byte(out), &result); err != nil {
		return types.VideoDimensions{}, appErrors.Wrap(appErrors.CodeProbeFailed, "ffprobe output unparseable", err)
	}
	if len(result.Streams) == 0 || result.Streams[0].Width <= 0 || result.Streams[0].Height <= 0 {
		return types.VideoDimensions{}, appErrors.New(appErrors.CodeProbeFailed, "no video stream dimensions")
	}
	dims := types.VideoDimensions{Width: result.Streams[0].Width, Height: result.Streams[0].Height}
	log.GetLogger().Debug("Probe video dimensions",
		zap.String("source", sourcePath),
		zap.Int("width", dims.Width),
		zap.Int("height", dims.Height))
	return dims, nil
}

// verifyOutput guards against ffmpeg exiting 0 while writing nothing, which
// happens with some container/codec mismatches.
func verifyOutput(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return appErrors.Wrap(appErrors.CodeOutputMissing, fmt.Sprintf("output file %s missing", path), err)
	}
	if info.Size() == 0 {
		return appErrors.New(appErrors.CodeOutputMissing, fmt.Sprintf("output file %s is empty", path))
	}
	return nil
}
