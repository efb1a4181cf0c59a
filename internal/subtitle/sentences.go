package subtitle

import (
	"strings"

	"github.com/samber/lo"

	"buzzy/internal/types"
)

// minSentenceDurationMs keeps sentence-level captions on screen long enough
// to read. Sentence transcripts often carry word-precise end times that are
// too tight for display.
const minSentenceDurationMs = 500

// EntriesFromSentences converts a sentence-level transcript into subtitle
// entries, stretching each sentence to at least the minimum display duration
// without running into the next sentence.
func EntriesFromSentences(sentences []types.SentimentSentence) []types.SubtitleEntry {
	kept := lo.Filter(sentences, func(s types.SentimentSentence, _ int) bool {
		return strings.TrimSpace(s.Text) != "" && s.End > s.Start
	})

	entries := make([]types.SubtitleEntry, 0, len(kept))
	for i, s := range kept {
		end := s.End
		if end-s.Start < minSentenceDurationMs {
			end = s.Start + minSentenceDurationMs
			if i+1 < len(kept) && end > kept[i+1].Start {
				end = kept[i+1].Start
			}
			if end <= s.Start {
				end = s.End
			}
		}
		entries = append(entries, types.SubtitleEntry{
			Index: len(entries) + 1,
			Start: s.Start,
			End:   end,
			Lines: []string{strings.TrimSpace(s.Text)},
		})
	}
	return entries
}
