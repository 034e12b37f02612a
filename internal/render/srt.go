package render

import (
	"fmt"
	"math"
	"strings"

	"caption-studio/internal/types"
)

// FormatSrtTime renders seconds as an SRT timecode (HH:MM:SS,mmm).
func FormatSrtTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalMs := int64(math.Round(seconds * 1000))
	hours := totalMs / 3600000
	minutes := (totalMs % 3600000) / 60000
	secs := (totalMs % 60000) / 1000
	ms := totalMs % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, ms)
}

// BuildSrt emits one cue per word timestamp. The speed offset uniformly
// shifts every cue; shifted times are clamped at zero, never negative.
// A word with no end time gets a 0.3s display window.
func BuildSrt(words []types.WordTimestamp, speedOffset float64) string {
	var builder strings.Builder
	for index, word := range words {
		end := word.End
		if end <= word.Start {
			end = word.Start + 0.3
		}
		start := word.Start + speedOffset
		end += speedOffset
		if start < 0 {
			start = 0
		}
		if end < 0 {
			end = 0
		}

		builder.WriteString(fmt.Sprintf("%d\n", index+1))
		builder.WriteString(fmt.Sprintf("%s --> %s\n", FormatSrtTime(start), FormatSrtTime(end)))
		builder.WriteString(word.Word)
		builder.WriteString("\n\n")
	}
	return builder.String()
}
