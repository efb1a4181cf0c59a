package subtitle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buzzy/internal/types"
)

func TestParseBasic(t *testing.T) {
	content := "1\n00:00:00,000 --> 00:00:02,000\nhello world\n\n2\n00:00:02,500 --> 00:00:04,000\nsecond line\nwraps here\n"
	entries, err := Parse(content)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, 1, entries[0].Index)
	assert.Equal(t, int64(0), entries[0].Start)
	assert.Equal(t, int64(2000), entries[0].End)
	assert.Equal(t, "hello world", entries[0].Text())

	assert.Equal(t, 2, entries[1].Index)
	assert.Equal(t, int64(2500), entries[1].Start)
	assert.Equal(t, []string{"second line", "wraps here"}, entries[1].Lines)
}

func TestParseCRLFAndMissingIndex(t *testing.T) {
	content := "00:00:01,000 --> 00:00:02,000\r\nno index here\r\n\r\n7\r\n00:00:03,000 --> 00:00:04,000\r\nindexed\r\n"
	entries, err := Parse(content)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "no index here", entries[0].Text())
	assert.Equal(t, int64(1000), entries[0].Start)
	// Entries are reindexed sequentially regardless of source indices.
	assert.Equal(t, 2, entries[1].Index)
	assert.Equal(t, "indexed", entries[1].Text())
}

func TestParseSkipsGarbageBlocks(t *testing.T) {
	content := "not a subtitle block\n\n1\n00:00:00,000 --> 00:00:01,000\nok\n\n2\n00:00:05,000 --> 00:00:06,000\n"
	entries, err := Parse(content)
	require.NoError(t, err)
	// The garbage block and the textless block are dropped.
	require.Len(t, entries, 1)
	assert.Equal(t, "ok", entries[0].Text())
}

func TestFormatRoundTrip(t *testing.T) {
	entries := []types.SubtitleEntry{
		{Index: 1, Start: 0, End: 2000, Lines: []string{"first"}},
		{Index: 2, Start: 3661500, End: 3662250, Lines: []string{"one hour in", "two lines"}},
	}
	parsed, err := Parse(Format(entries))
	require.NoError(t, err)
	assert.Equal(t, entries, parsed)
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "00:00:00,000", FormatTimestamp(0))
	assert.Equal(t, "00:01:10,500", FormatTimestamp(70500))
	assert.Equal(t, "01:01:01,001", FormatTimestamp(3661001))
	assert.Equal(t, "00:00:00,000", FormatTimestamp(-5))
}

func TestParseTimestamp(t *testing.T) {
	ms, err := ParseTimestamp("00:01:10,500")
	require.NoError(t, err)
	assert.Equal(t, int64(70500), ms)

	ms, err = ParseTimestamp(" 01:00:00.250 ")
	require.NoError(t, err)
	assert.Equal(t, int64(3600250), ms)

	_, err = ParseTimestamp("nonsense")
	assert.Error(t, err)
}
