package service

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/texttheater/golang-levenshtein/levenshtein"
	"go.uber.org/zap"

	appErrors "buzzy/pkg/errors"
	"buzzy/pkg/util"

	"buzzy/config"
	"buzzy/internal/dto"
	"buzzy/internal/types"
	"buzzy/log"
)

const (
	defaultMinClipDurationSec = 50
	defaultMaxClipDurationSec = 180
)

// highlightSegment is the shape the LLM is asked to return: segments
// anchored by quoted transcript sentences rather than timestamps, which
// models quote far more reliably than they compute times.
type highlightSegment struct {
	StartText string `json:"startText"`
	EndText   string `json:"endText"`
	Text      string `json:"text"`
}

// AnalyzeTranscript asks the LLM for viral highlight segments and snaps the
// quoted sentence anchors onto the sentence timeline, yielding concrete clip
// windows ready for a process job.
func (s *Service) AnalyzeTranscript(req dto.AnalyzeTranscriptReq) (*dto.AnalyzeTranscriptResData, error) {
	if len(req.Sentences) == 0 {
		return nil, appErrors.Wrap(appErrors.CodeInvalidParams, "sentences with timings are required", nil)
	}

	transcript := req.Transcript
	if strings.TrimSpace(transcript) == "" {
		texts := lo.Map(req.Sentences, func(sen types.SentimentSentence, _ int) string {
			return sen.Text
		})
		transcript = strings.Join(texts, " ")
	}

	minDur := config.Conf.Llm.MinClipDuration
	if minDur <= 0 {
		minDur = defaultMinClipDurationSec
	}
	maxDur := config.Conf.Llm.MaxClipDuration
	if maxDur <= 0 {
		maxDur = defaultMaxClipDurationSec
	}

	prompt := fmt.Sprintf(types.HighlightAnalysisPrompt, minDur, maxDur, transcript)
	reply, err := s.ChatCompleter.ChatCompletion(prompt)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.CodeAnalysisFailed, "LLM analysis failed", err)
	}

	var segments []highlightSegment
	jsonStr := util.ExtractJsonFromText(reply)
	if err = json.Unmarshal([]byte(jsonStr), &segments); err != nil {
		log.GetLogger().Error("AnalyzeTranscript failed to parse LLM JSON",
			zap.String("response", util.TruncateForLog(reply, 1024)),
			zap.Error(err))
		return nil, appErrors.Wrap(appErrors.CodeAnalysisFailed, "failed to parse AI response", err)
	}

	windows := make([]types.ClipWindow, 0, len(segments))
	for i, seg := range segments {
		startSentence := closestSentence(req.Sentences, seg.StartText)
		endSentence := closestSentence(req.Sentences, seg.EndText)
		if startSentence == nil || endSentence == nil {
			log.GetLogger().Warn("AnalyzeTranscript segment anchors unmatched",
				zap.Int("segment", i+1))
			continue
		}
		window := types.ClipWindow{
			Start: startSentence.Start,
			End:   endSentence.End,
			Text:  seg.Text,
		}
		if window.Start < 0 || window.End <= window.Start {
			log.GetLogger().Warn("AnalyzeTranscript segment yields invalid window",
				zap.Int("segment", i+1),
				zap.Int64("startMs", window.Start),
				zap.Int64("endMs", window.End))
			continue
		}
		windows = append(windows, window)
	}
	sort.Slice(windows, func(i, j int) bool { return windows[i].Start < windows[j].Start })

	log.GetLogger().Info("AnalyzeTranscript done",
		zap.String("videoId", req.VideoId),
		zap.Int("segments", len(segments)),
		zap.Int("windows", len(windows)))
	return &dto.AnalyzeTranscriptResData{
		VideoId: req.VideoId,
		Clips:   windows,
	}, nil
}

// closestSentence finds the sentence most similar to the quoted anchor text.
// Levenshtein similarity absorbs the small paraphrases models introduce when
// quoting. Matches below half similarity are treated as unmatched.
func closestSentence(sentences []types.SentimentSentence, quoted string) *types.SentimentSentence {
	quoted = strings.ToLower(strings.TrimSpace(quoted))
	if quoted == "" {
		return nil
	}

	var best *types.SentimentSentence
	bestRatio := 0.5
	for i := range sentences {
		candidate := strings.ToLower(strings.TrimSpace(sentences[i].Text))
		if candidate == "" {
			continue
		}
		ratio := levenshtein.RatioForStrings([]rune(quoted), []rune(candidate), levenshtein.DefaultOptions)
		if ratio > bestRatio {
			bestRatio = ratio
			best = &sentences[i]
		}
	}
	return best
}
