package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRandStringWithUpperLowerNum(t *testing.T) {
	s := GenerateRandStringWithUpperLowerNum(8)
	assert.Len(t, s, 8)

	// Two draws colliding would mean a broken generator
	assert.NotEqual(t, GenerateRandStringWithUpperLowerNum(16), GenerateRandStringWithUpperLowerNum(16))
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "clip_abc_1", SanitizeFileName("clip/abc 1"))
	assert.Equal(t, "already_safe-name_1", SanitizeFileName("already_safe-name_1"))
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "70.500", FormatSeconds(70500))
	assert.Equal(t, "0.000", FormatSeconds(0))
	assert.Equal(t, "-1.250", FormatSeconds(-1250))
}

func TestFormatThumbnailTimestamp(t *testing.T) {
	assert.Equal(t, "00:00:01.000", FormatThumbnailTimestamp(1000))
	assert.Equal(t, "01:02:03.456", FormatThumbnailTimestamp(3723456))
	assert.Equal(t, "00:00:00.000", FormatThumbnailTimestamp(-50))
}

func TestExtractJsonFromText(t *testing.T) {
	fenced := "Here you go:\n```json\n[{\"start\": 0}]\n```\nenjoy"
	assert.Equal(t, `[{"start": 0}]`, ExtractJsonFromText(fenced))

	bare := `prefix [{"start": 1}, {"start": 2}] suffix`
	assert.Equal(t, `[{"start": 1}, {"start": 2}]`, ExtractJsonFromText(bare))

	noJSON := "nothing here"
	assert.Equal(t, noJSON, ExtractJsonFromText(noJSON))
}
