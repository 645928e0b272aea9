package typewriter

import (
	"testing"
	"time"
)

func TestVisibleTypesOneRunePerInterval(t *testing.T) {
	const text = "Developer • Gamer"
	cases := []struct {
		elapsed time.Duration
		want    string
		done    bool
	}{
		{0, "", false},
		{99 * time.Millisecond, "", false},
		{100 * time.Millisecond, "D", false},
		{1100 * time.Millisecond, "Developer •", false},
		{10 * time.Second, text, true},
	}
	for _, tc := range cases {
		got, done := Visible(text, tc.elapsed, DefaultInterval)
		if got != tc.want || done != tc.done {
			t.Fatalf("Visible at %s = (%q, %v), want (%q, %v)", tc.elapsed, got, done, tc.want, tc.done)
		}
	}
}

func TestVisibleWithoutInterval(t *testing.T) {
	if got, done := Visible("abc", 0, 0); got != "abc" || !done {
		t.Fatalf("expected full text, got (%q, %v)", got, done)
	}
}

func TestCaretBlinks(t *testing.T) {
	if !CaretOn(0, time.Second) {
		t.Fatalf("expected caret lit at start")
	}
	if CaretOn(600*time.Millisecond, time.Second) {
		t.Fatalf("expected caret dark in second half of period")
	}
	if !CaretOn(1100*time.Millisecond, time.Second) {
		t.Fatalf("expected caret lit in next period")
	}
}

func TestCaretOnTinyPeriod(t *testing.T) {
	for _, period := range []time.Duration{-time.Second, 0, 1} {
		if !CaretOn(5*time.Millisecond, period) {
			t.Fatalf("expected caret lit for period %v", period)
		}
	}
}
