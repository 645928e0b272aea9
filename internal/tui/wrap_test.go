package tui

import (
	"reflect"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestWrapTextAtSpaces(t *testing.T) {
	got := wrapText("Developer by day, gamer by night.", 12)
	want := []string{"Developer by", "day, gamer", "by night."}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("wrapText = %q, want %q", got, want)
	}
}

func TestWrapTextHardBreaksLongWords(t *testing.T) {
	got := wrapText("abcdefghij xy", 4)
	want := []string{"abcd", "efgh", "ij", "xy"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("wrapText = %q, want %q", got, want)
	}
}

func TestWrapTextRespectsWidth(t *testing.T) {
	text := "When I'm not coding, you'll find me exploring virtual worlds, pushing pixels, and chasing that perfect balance."
	for _, line := range wrapText(text, 20) {
		if runewidth.StringWidth(line) > 20 {
			t.Fatalf("line too wide: %q", line)
		}
	}
}

func TestWrapTextEmpty(t *testing.T) {
	if got := wrapText("", 10); len(got) != 1 || got[0] != "" {
		t.Fatalf("expected one empty line, got %q", got)
	}
}

func TestCutColumns(t *testing.T) {
	cases := []struct {
		in           string
		start, width int
		want         string
	}{
		{"abcdef", 2, 3, "cde"},
		{"abc", 1, 5, "bc"},
		{"a日b", 2, 2, " b"},
		{"a日b", 0, 2, "a "},
		{"abc", 5, 2, ""},
	}
	for _, tc := range cases {
		if got := cutColumns(tc.in, tc.start, tc.width); got != tc.want {
			t.Fatalf("cutColumns(%q,%d,%d) = %q, want %q", tc.in, tc.start, tc.width, got, tc.want)
		}
	}
}
