package subtitle

import (
	"github.com/samber/lo"

	appErrors "buzzy/pkg/errors"

	"buzzy/internal/types"
)

// SliceOptions controls how a window of subtitles is cut out of the full
// transcript. The zero value keeps entries untouched apart from filtering.
type SliceOptions struct {
	// CropToWindow clamps entry boundaries to the window instead of keeping
	// partial overlaps at their original extent.
	CropToWindow bool
	// ShiftToZero re-bases timestamps so the window start becomes 0, which is
	// what a clip cut from the window needs for burned-in captions.
	ShiftToZero bool
	// MinDurationMs drops entries that end up shorter than this after
	// cropping. Sub-frame slivers render as flicker.
	MinDurationMs int64
}

// Slice returns the subtitle entries overlapping [startMs, endMs), reindexed
// from 1. An entry overlaps when it ends after the window opens and starts
// before it closes, so entries touching the window only at a boundary are
// excluded.
func Slice(entries []types.SubtitleEntry, startMs, endMs int64, opts SliceOptions) ([]types.SubtitleEntry, error) {
	if endMs <= startMs || startMs < 0 {
		return nil, appErrors.ErrInvalidWindow
	}

	overlapping := lo.Filter(entries, func(e types.SubtitleEntry, _ int) bool {
		return e.End > startMs && e.Start < endMs
	})

	sliced := lo.FilterMap(overlapping, func(e types.SubtitleEntry, _ int) (types.SubtitleEntry, bool) {
		if opts.CropToWindow {
			if e.Start < startMs {
				e.Start = startMs
			}
			if e.End > endMs {
				e.End = endMs
			}
		}
		if opts.MinDurationMs > 0 && e.End-e.Start < opts.MinDurationMs {
			return types.SubtitleEntry{}, false
		}
		if opts.ShiftToZero {
			e.Start -= startMs
			e.End -= startMs
		}
		return e, true
	})

	for i := range sliced {
		sliced[i].Index = i + 1
	}
	return sliced, nil
}
