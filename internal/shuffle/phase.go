package shuffle

import (
	"fmt"
	"strings"
)

// Direction selects the order in which characters resolve.
type Direction int

const (
	// LeftToRight resolves the first character first.
	LeftToRight Direction = iota
	// RightToLeft resolves the last character first.
	RightToLeft
)

// String returns the config spelling of d.
func (d Direction) String() string {
	switch d {
	case LeftToRight:
		return "left-to-right"
	case RightToLeft:
		return "right-to-left"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection accepts "left-to-right", "right-to-left" and the short forms "ltr", "rtl".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "left-to-right", "ltr":
		return LeftToRight, nil
	case "right-to-left", "rtl":
		return RightToLeft, nil
	default:
		return LeftToRight, fmt.Errorf("%w: unknown direction %q", ErrInvalidConfiguration, s)
	}
}

// CharPhase is where a character sits in its activation window.
type CharPhase int

const (
	// Pending characters have not been reached and show their original glyph.
	Pending CharPhase = iota
	// Shuffling characters always show a random glyph.
	Shuffling
	// Resolving characters flicker between random and original glyphs.
	Resolving
	// Resolved characters show their original glyph.
	Resolved
)

func (p CharPhase) String() string {
	switch p {
	case Pending:
		return "pending"
	case Shuffling:
		return "shuffling"
	case Resolving:
		return "resolving"
	case Resolved:
		return "resolved"
	default:
		return fmt.Sprintf("CharPhase(%d)", int(p))
	}
}

// Window returns the eased-progress interval during which character i of n is active.
func Window(i, n int, dir Direction) (start, end float64) {
	fn := float64(n)
	if dir == RightToLeft {
		return float64(n-i-1) / fn, float64(n-i) / fn
	}
	return float64(i) / fn, float64(i+1) / fn
}

// Phase classifies character i of n at eased progress and returns its local
// progress within the window. Local progress is 0 outside Shuffling and Resolving.
// Reaching the window start exactly still counts as Pending.
func Phase(i, n int, eased float64, dir Direction) (CharPhase, float64) {
	start, end := Window(i, n, dir)
	switch {
	case eased <= start:
		return Pending, 0
	case eased >= end:
		return Resolved, 0
	}
	local := (eased - start) / (end - start)
	if local < resolveThreshold {
		return Shuffling, local
	}
	return Resolving, local
}

// Envelope returns the phase of every character of text at eased progress.
// Spaces are always Resolved.
func Envelope(text string, eased float64, dir Direction) []CharPhase {
	runes := []rune(text)
	out := make([]CharPhase, len(runes))
	for i, r := range runes {
		if r == ' ' {
			out[i] = Resolved
			continue
		}
		out[i], _ = Phase(i, len(runes), eased, dir)
	}
	return out
}
