package feed

import (
	"strings"
)

// TruncationMarker divides the head and tail slices of truncated text.
const TruncationMarker = "\n\n[...TRUNCATED...]\n\n"

// Truncate bounds text to maxChars characters, keeping 70% from the head and
// 30% from the tail. Articles tend to carry key facts in the lede and the
// conclusion, so both ends survive truncation. Counting is in runes so
// multi-byte text is never split mid-character.
func Truncate(text string, maxChars int) string {
	text = strings.TrimSpace(text)

	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}

	head := runes[:int(float64(maxChars)*0.7)]
	tail := runes[len(runes)-int(float64(maxChars)*0.3):]

	return string(head) + TruncationMarker + string(tail)
}
