// Package typewriter reveals text one rune at a time.
package typewriter

import "time"

// DefaultInterval is the delay between runes.
const DefaultInterval = 100 * time.Millisecond

// Visible returns the prefix of text shown after elapsed and whether the whole
// text is shown. A non-positive interval shows everything at once.
func Visible(text string, elapsed, interval time.Duration) (string, bool) {
	runes := []rune(text)
	if interval <= 0 {
		return text, true
	}
	if elapsed < 0 {
		elapsed = 0
	}
	n := int(elapsed / interval)
	if n >= len(runes) {
		return text, true
	}
	return string(runes[:n]), false
}

// CaretOn reports whether a blinking caret is lit after elapsed for the given period.
func CaretOn(elapsed, period time.Duration) bool {
	if period < 2 {
		return true
	}
	if elapsed < 0 {
		elapsed = 0
	}
	return (elapsed/(period/2))%2 == 0
}
