package tui

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tnesh/folio/internal/model"
	"github.com/tnesh/folio/internal/scroll"
	"github.com/tnesh/folio/internal/shuffle"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) time.Time {
	c.t = c.t.Add(d)
	return c.t
}

type recordingSink struct {
	visits   []model.Visit
	sections [][]model.SectionStats
	err      error
}

func (s *recordingSink) InsertVisit(_ context.Context, visit model.Visit, sections []model.SectionStats) (int64, error) {
	s.visits = append(s.visits, visit)
	s.sections = append(s.sections, sections)
	return int64(len(s.visits)), s.err
}

func testOptions(t *testing.T, clock *fakeClock, sink VisitSink) Options {
	t.Helper()
	shuffleOpts := shuffle.DefaultOptions()
	shuffleOpts.Rand = rand.New(rand.NewSource(1))
	return Options{
		Portfolio:   defaultPortfolio(t),
		ContentRef:  "default",
		Shuffle:     shuffleOpts,
		FPS:         60,
		GlidePerRow: scroll.DefaultGlidePerUnit,
		GlideMax:    scroll.DefaultGlideMax,
		Sink:        sink,
		Now:         clock.now,
	}
}

func newTestModel(t *testing.T, clock *fakeClock, sink VisitSink) *Model {
	t.Helper()
	m, err := NewModel(testOptions(t, clock, sink))
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func navX(m *Model, s sectionID) int {
	for _, item := range m.navItems() {
		if item.section == s {
			return item.x
		}
	}
	return -1
}

func TestNewModelRejectsInvalidShuffleOptions(t *testing.T) {
	opts := testOptions(t, newClock(), nil)
	opts.Shuffle.Alphabet = ""
	if _, err := NewModel(opts); !errors.Is(err, shuffle.ErrInvalidConfiguration) {
		t.Fatalf("expected shuffle.ErrInvalidConfiguration, got %v", err)
	}
}

func TestNewModelRejectsBadFPS(t *testing.T) {
	opts := testOptions(t, newClock(), nil)
	opts.FPS = maxFPS + 1
	if _, err := NewModel(opts); !errors.Is(err, ErrInvalidOptions) {
		t.Fatalf("expected ErrInvalidOptions, got %v", err)
	}
}

func TestZeroGlidePerRowJumpsInstantly(t *testing.T) {
	clock := newClock()
	opts := testOptions(t, clock, nil)
	opts.GlidePerRow = 0
	opts.GlideMax = time.Second
	m, err := NewModel(opts)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.opts.GlidePerRow != 0 {
		t.Fatalf("GlidePerRow = %s, want 0", m.opts.GlidePerRow)
	}

	m.Update(runeKey("3"))
	if m.glide != nil {
		t.Fatalf("expected no glide in flight, duration %s", m.glide.Duration())
	}
	if want := float64(m.page.anchor(sectionProjects, m.viewportHeight())); m.scrollY != want {
		t.Fatalf("scrollY = %f, want %f", m.scrollY, want)
	}
}

func TestHoverShufflesNavItem(t *testing.T) {
	clock := newClock()
	m := newTestModel(t, clock, nil)
	id := targetID{nav: true, section: sectionAbout}

	m.Update(tea.MouseMsg{X: navX(m, sectionAbout) + 1, Y: 0, Action: tea.MouseActionMotion})
	if !m.effects[id].Active() {
		t.Fatalf("expected hover to start the nav shuffle")
	}

	m.Update(frameMsg(clock.advance(200 * time.Millisecond)))
	shown, ok := m.display[id]
	if !ok {
		t.Fatalf("expected a shuffled label mid-run")
	}
	if utf8.RuneCountInString(shown) != utf8.RuneCountInString("About") {
		t.Fatalf("shuffled label %q changed length", shown)
	}

	m.Update(tea.MouseMsg{X: 0, Y: 5, Action: tea.MouseActionMotion})
	if m.effects[id].Active() {
		t.Fatalf("expected leaving to cancel the shuffle")
	}
	if _, ok := m.display[id]; ok {
		t.Fatalf("expected original label after leave")
	}
	if m.recorder.shuffles[sectionAbout] != 1 {
		t.Fatalf("shuffles = %d, want 1", m.recorder.shuffles[sectionAbout])
	}
}

func TestHoverWithinTargetDoesNotRestart(t *testing.T) {
	clock := newClock()
	m := newTestModel(t, clock, nil)
	x := navX(m, sectionSkills)
	m.Update(tea.MouseMsg{X: x, Y: 0, Action: tea.MouseActionMotion})
	clock.advance(100 * time.Millisecond)
	m.Update(tea.MouseMsg{X: x + 2, Y: 0, Action: tea.MouseActionMotion})
	if m.recorder.shuffles[sectionSkills] != 1 {
		t.Fatalf("moving inside a label should not count a new shuffle")
	}
}

func TestShuffleResolvesAfterDuration(t *testing.T) {
	clock := newClock()
	m := newTestModel(t, clock, nil)
	id := targetID{nav: true, section: sectionContact}
	m.Update(tea.MouseMsg{X: navX(m, sectionContact), Y: 0, Action: tea.MouseActionMotion})

	m.Update(frameMsg(clock.advance(shuffle.DefaultDuration + time.Millisecond)))
	if m.effects[id].Active() {
		t.Fatalf("expected the shuffle to finish")
	}
	if _, ok := m.display[id]; ok {
		t.Fatalf("expected the label to settle on its original text")
	}
	if !strings.Contains(m.renderNav(), "Contact") {
		t.Fatalf("nav should show the original label: %q", m.renderNav())
	}
}

func TestFocusCyclesHeadings(t *testing.T) {
	clock := newClock()
	m := newTestModel(t, clock, nil)
	hero := targetID{section: sectionHero}
	about := targetID{section: sectionAbout}

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != int(sectionHero) || !m.effects[hero].Active() {
		t.Fatalf("expected focus on hero heading, focus=%d", m.focus)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != int(sectionAbout) {
		t.Fatalf("focus = %d, want about", m.focus)
	}
	if m.effects[hero].Active() || !m.effects[about].Active() {
		t.Fatalf("expected focus change to move the shuffle")
	}
	if m.glide == nil || m.glide.Target() != float64(m.page.anchor(sectionAbout, m.viewportHeight())) {
		t.Fatalf("expected a glide to the about section")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.focus != -1 || m.effects[about].Active() {
		t.Fatalf("expected esc to clear focus and cancel the shuffle")
	}
}

func TestShiftTabWrapsToLastSection(t *testing.T) {
	m := newTestModel(t, newClock(), nil)
	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != int(sectionContact) {
		t.Fatalf("focus = %d, want contact", m.focus)
	}
}

func TestJumpKeyGlidesToSection(t *testing.T) {
	clock := newClock()
	m := newTestModel(t, clock, nil)
	m.Update(runeKey("3"))
	if m.glide == nil {
		t.Fatalf("expected a glide")
	}
	want := float64(m.page.anchor(sectionProjects, m.viewportHeight()))
	m.Update(frameMsg(clock.advance(m.glide.Duration() / 2)))
	if m.scrollY <= 0 || m.scrollY >= want {
		t.Fatalf("mid-glide scroll = %f, want between 0 and %f", m.scrollY, want)
	}
	m.Update(frameMsg(clock.advance(m.opts.GlideMax)))
	if m.scrollY != want || m.glide != nil {
		t.Fatalf("scroll = %f glide=%v, want %f and no glide", m.scrollY, m.glide, want)
	}
}

func TestManualScrollCancelsGlide(t *testing.T) {
	m := newTestModel(t, newClock(), nil)
	m.Update(runeKey("5"))
	m.Update(runeKey("j"))
	if m.glide != nil {
		t.Fatalf("expected manual scroll to cancel the glide")
	}
	if m.scrollY != 1 {
		t.Fatalf("scrollY = %f, want 1", m.scrollY)
	}
}

func TestScrollClampsToPage(t *testing.T) {
	m := newTestModel(t, newClock(), nil)
	m.Update(runeKey("k"))
	if m.scrollY != 0 {
		t.Fatalf("scrollY = %f, want 0", m.scrollY)
	}
	for i := 0; i < m.page.height; i++ {
		m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	}
	if want := float64(m.page.maxScroll(m.viewportHeight())); m.scrollY != want {
		t.Fatalf("scrollY = %f, want %f", m.scrollY, want)
	}
}

func TestClickNavGlides(t *testing.T) {
	m := newTestModel(t, newClock(), nil)
	m.Update(tea.MouseMsg{X: navX(m, sectionSkills), Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.glide == nil || m.glide.Target() != float64(m.page.anchor(sectionSkills, m.viewportHeight())) {
		t.Fatalf("expected click to glide to skills")
	}
}

func TestHeroFadesOnScroll(t *testing.T) {
	clock := newClock()
	m := newTestModel(t, clock, nil)
	if got := m.frames[sectionHero].opacity; got != 1 {
		t.Fatalf("hero opacity at top = %f, want 1", got)
	}
	m.scrollY = float64(m.page.sections[sectionHero].height) / 2
	m.Update(frameMsg(clock.advance(time.Millisecond)))
	if got := m.frames[sectionHero].opacity; got != 0 {
		t.Fatalf("hero opacity half way = %f, want 0", got)
	}
}

func TestSectionRevealsOnce(t *testing.T) {
	clock := newClock()
	m := newTestModel(t, clock, nil)
	if !m.revealedAt[sectionAbout].IsZero() {
		t.Fatalf("about should not be revealed at the top")
	}
	m.scrollY = float64(m.page.sections[sectionAbout].top)
	first := clock.advance(time.Millisecond)
	m.Update(frameMsg(first))
	if !m.revealedAt[sectionAbout].Equal(first) {
		t.Fatalf("about revealedAt = %v, want %v", m.revealedAt[sectionAbout], first)
	}
	m.Update(frameMsg(clock.advance(time.Second)))
	if !m.revealedAt[sectionAbout].Equal(first) {
		t.Fatalf("reveal time moved")
	}
	if m.frames[sectionAbout].reveal != 1 {
		t.Fatalf("entrance should be complete, got %f", m.frames[sectionAbout].reveal)
	}
}

func TestProjectsStayPinned(t *testing.T) {
	clock := newClock()
	m := newTestModel(t, clock, nil)
	s := m.page.sections[sectionProjects]
	if s.pinRows == 0 {
		t.Fatalf("expected the default projects to pin")
	}
	m.scrollY = float64(s.top + s.pinRows/2)
	m.Update(frameMsg(clock.advance(time.Millisecond)))
	f := m.frames[sectionProjects]
	if f.screenTop != 0 {
		t.Fatalf("pinned projects screenTop = %d, want 0", f.screenTop)
	}
	if f.pinned <= 0 || f.pinned >= 1 {
		t.Fatalf("pinned progress = %f, want strictly inside (0,1)", f.pinned)
	}
	if m.strip.pos <= 0 {
		t.Fatalf("strip should start moving towards its target, pos=%f", m.strip.pos)
	}
}

func TestQuitSavesVisitOnce(t *testing.T) {
	clock := newClock()
	sink := &recordingSink{}
	m := newTestModel(t, clock, sink)
	m.Update(tea.MouseMsg{X: navX(m, sectionAbout), Y: 0, Action: tea.MouseActionMotion})
	clock.advance(3 * time.Second)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	m.finish(clock.advance(time.Second))
	if len(sink.visits) != 1 {
		t.Fatalf("expected one saved visit, got %d", len(sink.visits))
	}
	visit := sink.visits[0]
	if visit.DurationMs != 3000 || visit.ContentRef != "default" {
		t.Fatalf("unexpected visit: %+v", visit)
	}
	var about *model.SectionStats
	for i := range sink.sections[0] {
		if sink.sections[0][i].Section == "about" {
			about = &sink.sections[0][i]
		}
	}
	if about == nil || about.Shuffles != 1 {
		t.Fatalf("expected one about shuffle, got %+v", sink.sections[0])
	}
}

func TestQuitWithoutSink(t *testing.T) {
	m := newTestModel(t, newClock(), nil)
	if _, cmd := m.Update(runeKey("q")); cmd == nil {
		t.Fatalf("expected quit command")
	}
}

func TestViewHasViewportRows(t *testing.T) {
	m := newTestModel(t, newClock(), nil)
	out := m.View()
	if got := strings.Count(out, "\n") + 1; got != 30 {
		t.Fatalf("view has %d rows, want 30", got)
	}
	if !strings.Contains(out, "Projects") {
		t.Fatalf("expected nav labels in view")
	}
}

func TestRenderFrameTop(t *testing.T) {
	out, err := RenderFrame(testOptions(t, newClock(), nil), 100, 30, 0)
	if err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	if !containsAll(out, []string{"TNESH", "Developer • Gamer • Creator", "[ View Work ]"}) {
		t.Fatalf("hero missing from frame:\n%s", out)
	}
}

func TestRenderFrameContact(t *testing.T) {
	out, err := RenderFrame(testOptions(t, newClock(), nil), 100, 30, 1<<20)
	if err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	if !containsAll(out, []string{"Get In Touch", "hello@tnesh.dev"}) {
		t.Fatalf("contact missing from frame:\n%s", out)
	}
}

func TestRenderFrameTooSmall(t *testing.T) {
	if _, err := RenderFrame(testOptions(t, newClock(), nil), 0, 10, 0); err == nil {
		t.Fatalf("expected error for zero width")
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
