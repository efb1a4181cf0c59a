package subtitle

import (
	"fmt"
	"strconv"
	"strings"

	"buzzy/internal/types"
)

// Parse reads SubRip text into entries. Real transcripts are messy, so the
// parser tolerates CRLF line endings, blank-line runs between blocks and
// blocks whose numeric index line is missing. Blocks without a valid
// timing line are skipped rather than failing the whole file.
func Parse(content string) ([]types.SubtitleEntry, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimPrefix(content, "\ufeff")

	var entries []types.SubtitleEntry
	for _, block := range strings.Split(content, "\n\n") {
		lines := nonEmptyLines(block)
		if len(lines) == 0 {
			continue
		}
		// Optional index line before the timing line.
		if _, err := strconv.Atoi(strings.TrimSpace(lines[0])); err == nil {
			lines = lines[1:]
			if len(lines) == 0 {
				continue
			}
		}
		start, end, err := parseTimingLine(lines[0])
		if err != nil {
			continue
		}
		text := lines[1:]
		if len(text) == 0 {
			continue
		}
		entries = append(entries, types.SubtitleEntry{
			Index: len(entries) + 1,
			Start: start,
			End:   end,
			Lines: text,
		})
	}
	return entries, nil
}

// Format renders entries back to SubRip text with CRLF block separators
// understood by every player.
func Format(entries []types.SubtitleEntry) string {
	var sb strings.Builder
	for i, e := range entries {
		idx := e.Index
		if idx == 0 {
			idx = i + 1
		}
		sb.WriteString(strconv.Itoa(idx))
		sb.WriteString("\n")
		sb.WriteString(FormatTimestamp(e.Start))
		sb.WriteString(" --> ")
		sb.WriteString(FormatTimestamp(e.End))
		sb.WriteString("\n")
		sb.WriteString(strings.Join(e.Lines, "\n"))
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// FormatTimestamp renders milliseconds as the SubRip HH:MM:SS,mmm form.
func FormatTimestamp(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	h := ms / 3600000
	m := ms % 3600000 / 60000
	s := ms % 60000 / 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms%1000)
}

// ParseTimestamp accepts HH:MM:SS,mmm and the period variant some tools emit.
func ParseTimestamp(ts string) (int64, error) {
	ts = strings.TrimSpace(strings.ReplaceAll(ts, ".", ","))
	var h, m, s, msec int64
	if _, err := fmt.Sscanf(ts, "%d:%d:%d,%d", &h, &m, &s, &msec); err != nil {
		return 0, fmt.Errorf("ParseTimestamp invalid timestamp %q: %w", ts, err)
	}
	return h*3600000 + m*60000 + s*1000 + msec, nil
}

func parseTimingLine(line string) (int64, int64, error) {
	parts := strings.Split(line, "-->")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("parseTimingLine not a timing line: %q", line)
	}
	start, err := ParseTimestamp(parts[0])
	if err != nil {
		return 0, 0, err
	}
	end, err := ParseTimestamp(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func nonEmptyLines(block string) []string {
	var lines []string
	for _, line := range strings.Split(block, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
