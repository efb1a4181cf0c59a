package ffmpeg

import (
	"fmt"
	"strings"

	"buzzy/internal/types"
	"buzzy/pkg/util"
)

// Caption layout tuning. The text sits centered near the bottom edge on a
// translucent box; font size scales with frame width so portrait and
// landscape clips read the same.
const (
	captionBottomMarginPx = 25
	captionBoxBorderPx    = 10
	captionBoxColor       = "black@0.6"
	portraitFontDivisor   = 15
	landscapeFontDivisor  = 25
)

// EscapeDrawtext sanitizes caption text for ffmpeg's drawtext filter.
// Backslash goes first so later escapes are not double-escaped. Plain
// apostrophes would terminate the quoted text value even escaped through
// two parser layers, so they are swapped for the typographic apostrophe.
func EscapeDrawtext(text string) string {
	text = strings.ReplaceAll(text, `\`, `\\`)
	text = strings.ReplaceAll(text, `'`, "’")
	text = strings.ReplaceAll(text, `:`, `\:`)
	text = strings.ReplaceAll(text, `%`, `\%`)
	text = strings.ReplaceAll(text, `,`, `\,`)
	return text
}

// CaptionFontSize returns the drawtext font size for the given frame.
func CaptionFontSize(dims types.VideoDimensions) int {
	if dims.IsPortrait() {
		return dims.Width / portraitFontDivisor
	}
	return dims.Width / landscapeFontDivisor
}

// BuildDrawtextFilter renders clip-relative subtitle entries into a chained
// drawtext filtergraph, one drawtext per entry gated by between(t,...).
// Entries must already be re-based to the clip's own timeline.
func BuildDrawtextFilter(entries []types.SubtitleEntry, dims types.VideoDimensions, fontFile string) string {
	fontSize := CaptionFontSize(dims)
	filters := make([]string, 0, len(entries))
	for _, e := range entries {
		filters = append(filters, fmt.Sprintf(
			"drawtext=fontfile='%s':text='%s':fontsize=%d:fontcolor=white:box=1:boxcolor=%s:boxborderw=%d:x=(w-text_w)/2:y=h-th-%d:enable='between(t,%s,%s)'",
			fontFile,
			EscapeDrawtext(e.Text()),
			fontSize,
			captionBoxColor,
			captionBoxBorderPx,
			captionBottomMarginPx,
			util.FormatSeconds(e.Start),
			util.FormatSeconds(e.End),
		))
	}
	return strings.Join(filters, ",")
}
