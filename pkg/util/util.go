package util

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
)

const randStringCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var unsafeFileNameChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// GenerateRandStringWithUpperLowerNum returns a random alphanumeric string of length n.
func GenerateRandStringWithUpperLowerNum(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = randStringCharset[rand.Intn(len(randStringCharset))]
	}
	return string(b)
}

// SanitizeFileName replaces characters that are unsafe in file names
// or storage object keys with underscores.
func SanitizeFileName(name string) string {
	return unsafeFileNameChars.ReplaceAllString(name, "_")
}

// FormatThumbnailTimestamp renders milliseconds as HH:MM:SS.mmm, the
// seek format ffmpeg expects for single-frame grabs.
func FormatThumbnailTimestamp(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	h := ms / 3600000
	m := (ms % 3600000) / 60000
	s := (ms % 60000) / 1000
	millis := ms % 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, millis)
}

// FormatSeconds renders milliseconds as fractional seconds for ffmpeg
// -ss/-t arguments, e.g. 70500 -> "70.500".
func FormatSeconds(ms int64) string {
	sign := ""
	if ms < 0 {
		sign = "-"
		ms = -ms
	}
	return fmt.Sprintf("%s%d.%03d", sign, ms/1000, ms%1000)
}

// TruncateForLog shortens long blobs (subtitle content, LLM replies) for log fields.
func TruncateForLog(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.TrimSpace(s[:max]) + "..."
}
