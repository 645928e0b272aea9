package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/tnesh/folio/internal/content"
	"github.com/tnesh/folio/internal/scroll"
	"github.com/tnesh/folio/internal/shuffle"
	"github.com/tnesh/folio/internal/typewriter"
)

const (
	navHeight  = 1
	wheelRows  = 3
	maxFPS     = 240
	defaultFPS = 60
)

// ErrInvalidOptions reports UI options the model cannot run with.
var ErrInvalidOptions = errors.New("invalid ui options")

// Options configures the portfolio UI.
type Options struct {
	Portfolio   content.Portfolio
	ContentRef  string
	Shuffle     shuffle.Options
	FPS         int
	GlidePerRow time.Duration
	GlideMax    time.Duration
	// Sink receives the visit on quit. Nil disables recording.
	Sink VisitSink
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Validate reports misconfiguration before any effect starts.
func (o Options) Validate() error {
	if err := o.Shuffle.Validate(); err != nil {
		return err
	}
	if o.FPS <= 0 || o.FPS > maxFPS {
		return fmt.Errorf("%w: fps must be between 1 and %d, got %d", ErrInvalidOptions, maxFPS, o.FPS)
	}
	if o.GlidePerRow < 0 || o.GlideMax <= 0 {
		return fmt.Errorf("%w: glide per-row=%s max=%s", scroll.ErrInvalidConfiguration, o.GlidePerRow, o.GlideMax)
	}
	return o.Portfolio.Validate()
}

// targetID names a shuffle target: a nav item or a section heading.
type targetID struct {
	nav     bool
	section sectionID
}

type hitBox struct {
	row, x0, x1 int
	target      targetID
	shuffle     bool
	jump        sectionID
	hasJump     bool
}

type frameMsg time.Time

// Model implements the Bubble Tea portfolio UI.
type Model struct {
	opts Options
	keys keyMap
	help help.Model
	now  func() time.Time

	width  int
	height int
	page   page
	ready  bool

	scrollY float64
	glide   *scroll.Glide

	effects map[targetID]*shuffle.Effect
	display map[targetID]string
	pointer targetID
	hovered bool
	focus   int

	startedAt  time.Time
	revealedAt [sectionCount]time.Time
	strip      springFollower
	frames     [sectionCount]sectionFrame
	hits       []hitBox
	frameAt    time.Time
	recorder   visitRecorder
	saved      bool
	// static renders the settled end state of every animation.
	static bool
}

// NewModel validates opts and constructs the portfolio UI model. A zero FPS or
// GlideMax takes the default; a zero GlidePerRow makes jumps instant.
func NewModel(opts Options) (*Model, error) {
	if opts.FPS == 0 {
		opts.FPS = defaultFPS
	}
	if opts.GlideMax == 0 {
		opts.GlideMax = scroll.DefaultGlideMax
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	m := &Model{
		opts:    opts,
		keys:    defaultKeyMap(),
		help:    help.New(),
		now:     now,
		effects: map[targetID]*shuffle.Effect{},
		display: map[targetID]string{},
		focus:   -1,
		strip:   newSpringFollower(opts.FPS),
	}
	for s := sectionID(0); s < sectionCount; s++ {
		for _, nav := range []bool{false, true} {
			e, err := shuffle.New(opts.Shuffle)
			if err != nil {
				return nil, err
			}
			m.effects[targetID{nav: nav, section: s}] = e
		}
	}
	start := now()
	m.startedAt = start
	m.frameAt = start
	m.revealedAt[sectionHero] = start
	m.recorder = newVisitRecorder(start)
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.updateFrame(m.frameAt)
		return m, nil
	case frameMsg:
		m.updateFrame(time.Time(msg))
		return m, m.tick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := m.now()
	vh := m.viewportHeight()
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.finish(now)
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.scrollBy(-1)
	case key.Matches(msg, m.keys.Down):
		m.scrollBy(1)
	case key.Matches(msg, m.keys.PageUp):
		m.scrollBy(-max(vh-2, 1))
	case key.Matches(msg, m.keys.PageDown):
		m.scrollBy(max(vh-2, 1))
	case key.Matches(msg, m.keys.Top):
		m.glideTo(0, now)
	case key.Matches(msg, m.keys.Bottom):
		m.glideTo(float64(m.page.maxScroll(vh)), now)
	case key.Matches(msg, m.keys.Jump):
		if s, ok := jumpSection(msg.String()); ok {
			m.glideToSection(s, now)
		}
	case key.Matches(msg, m.keys.Focus):
		step := 1
		if msg.String() == "shift+tab" {
			step = -1
		}
		m.moveFocus(step, now)
	case key.Matches(msg, m.keys.Unfocus):
		m.setFocus(-1, now)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize(m.width, m.height)
	}
	m.updateFrame(m.frameAt)
	return m, nil
}

func jumpSection(k string) (sectionID, bool) {
	if len(k) != 1 || k[0] < '1' || k[0] > '0'+byte(sectionCount) {
		return 0, false
	}
	return sectionID(k[0] - '1'), true
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	now := m.now()
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.scrollBy(-wheelRows)
	case msg.Button == tea.MouseButtonWheelDown:
		m.scrollBy(wheelRows)
	case msg.Action == tea.MouseActionMotion:
		m.hover(msg.X, msg.Y, now)
		return
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if hit, ok := m.hitAt(msg.X, msg.Y); ok && hit.hasJump {
			m.glideToSection(hit.jump, now)
		}
	default:
		return
	}
	m.updateFrame(m.frameAt)
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	if width <= 0 || height <= 0 {
		m.ready = false
		return
	}
	m.page = layoutPage(m.opts.Portfolio, width, m.viewportHeight())
	m.ready = true
	m.scrollY = clampScroll(m.scrollY, m.page.maxScroll(m.viewportHeight()))
}

func (m *Model) viewportHeight() int {
	helpHeight := lipgloss.Height(m.help.View(m.keys))
	return max(m.height-navHeight-helpHeight, 1)
}

func clampScroll(y float64, maxY int) float64 {
	if y < 0 {
		return 0
	}
	if y > float64(maxY) {
		return float64(maxY)
	}
	return y
}

func (m *Model) scrollBy(rows int) {
	m.glide = nil
	m.scrollY = clampScroll(float64(roundInt(m.scrollY)+rows), m.page.maxScroll(m.viewportHeight()))
}

func (m *Model) glideTo(target float64, now time.Time) {
	target = clampScroll(target, m.page.maxScroll(m.viewportHeight()))
	g, err := scroll.NewGlide(m.scrollY, target, now, m.opts.GlidePerRow, m.opts.GlideMax)
	if err != nil {
		logErrf("failed to plan scroll: %v\n", err)
		return
	}
	if m.static {
		m.scrollY = target
		return
	}
	m.glide = &g
}

func (m *Model) glideToSection(s sectionID, now time.Time) {
	m.glideTo(float64(m.page.anchor(s, m.viewportHeight())), now)
}

// label is the resting text of a shuffle target.
func (m *Model) label(id targetID) string {
	if id.nav {
		return navLabels[id.section]
	}
	return m.page.sections[id.section].heading
}

func (m *Model) held(id targetID) bool {
	if m.hovered && m.pointer == id {
		return true
	}
	return m.focus >= 0 && (targetID{section: sectionID(m.focus)}) == id
}

func (m *Model) enter(id targetID, now time.Time) {
	e := m.effects[id]
	wasActive := e.Active()
	if err := e.Start(m.label(id), now); err != nil {
		// Empty headings simply do not animate.
		return
	}
	if !wasActive && e.Active() {
		m.recorder.shuffled(id.section)
	}
}

func (m *Model) leave(id targetID) {
	if m.held(id) {
		return
	}
	m.effects[id].Cancel()
	delete(m.display, id)
}

func (m *Model) hover(x, y int, now time.Time) {
	hit, ok := m.hitAt(x, y)
	ok = ok && hit.shuffle
	if ok && m.hovered && hit.target == m.pointer {
		return
	}
	if m.hovered {
		prev := m.pointer
		m.hovered = false
		m.leave(prev)
	}
	if ok {
		m.pointer = hit.target
		m.hovered = true
		m.enter(hit.target, now)
	}
}

func (m *Model) moveFocus(step int, now time.Time) {
	next := m.focus + step
	if m.focus < 0 && step < 0 {
		next = int(sectionCount) - 1
	}
	next = (next%int(sectionCount) + int(sectionCount)) % int(sectionCount)
	m.setFocus(next, now)
	m.glideToSection(sectionID(next), now)
}

func (m *Model) setFocus(focus int, now time.Time) {
	if focus == m.focus {
		return
	}
	prev := m.focus
	m.focus = focus
	if prev >= 0 {
		m.leave(targetID{section: sectionID(prev)})
	}
	if focus >= 0 {
		m.enter(targetID{section: sectionID(focus)}, now)
	}
}

func (m *Model) hitAt(x, y int) (hitBox, bool) {
	for _, h := range m.hits {
		if y == h.row && x >= h.x0 && x < h.x1 {
			return h, true
		}
	}
	return hitBox{}, false
}

func (m *Model) centredSection() sectionID {
	return m.page.sectionAt(roundInt(m.scrollY) + m.viewportHeight()/2)
}

// updateFrame advances every animation to now and recomputes section geometry.
func (m *Model) updateFrame(now time.Time) {
	if now.Before(m.frameAt) {
		now = m.frameAt
	}
	m.frameAt = now
	if !m.ready {
		return
	}
	vh := m.viewportHeight()
	m.recorder.observe(now, m.centredSection())

	if m.glide != nil {
		pos, done := m.glide.At(now)
		m.scrollY = pos
		if done {
			m.glide = nil
		}
	}
	m.scrollY = clampScroll(m.scrollY, m.page.maxScroll(vh))
	scrollRow := roundInt(m.scrollY)

	for i := range m.page.sections {
		s := &m.page.sections[i]
		f := sectionFrame{opacity: 1}
		view := scroll.View{
			ScrollY:        float64(scrollRow),
			ViewportHeight: float64(vh),
			ElementTop:     float64(s.top),
			ElementHeight:  float64(s.height),
		}
		f.transit = scroll.Transit.Progress(view)
		// Pinned sections run their progress over the rows they stay stuck for.
		if s.pinRows > 0 {
			view.ElementHeight = float64(s.pinRows)
		}
		f.pinned = scroll.Pinned.Progress(view)

		switch s.id {
		case sectionHero:
			f.opacity = heroOpacity.Map(f.pinned)
		case sectionAbout:
			f.opacity = aboutOpacity.Map(f.transit)
			f.lift = roundInt(aboutLift.Map(f.transit))
		case sectionSkills:
			f.opacity = skillsOpacity.Map(f.transit)
		}

		stick := 0
		if s.pinRows > 0 {
			stick = min(max(scrollRow-s.top, 0), s.pinRows)
		}
		f.screenTop = s.top - scrollRow + f.lift + stick

		visible := f.screenTop < vh && f.screenTop+len(s.lines) > 0
		if visible && f.transit >= revealThreshold && m.revealedAt[s.id].IsZero() {
			m.revealedAt[s.id] = now
		}
		if m.static {
			f.reveal = 1
			f.barFill = 1
		} else {
			f.reveal = entrance(m.revealedAt[s.id], now)
			f.barFill = barFill(m.revealedAt[s.id], now)
		}
		m.frames[s.id] = f
	}

	stripTarget := m.stripShift().Map(m.frames[sectionProjects].pinned)
	if m.static {
		m.strip.snap(stripTarget)
	} else {
		m.strip.step(stripTarget)
	}

	for id, e := range m.effects {
		if !e.Active() {
			continue
		}
		text, done := e.Tick(now)
		if done {
			delete(m.display, id)
			continue
		}
		m.display[id] = text
	}

	m.hits = m.computeHits()
}

func (m *Model) stripShift() scroll.Mapping {
	return scroll.MustRange([]float64{0, 1}, []float64{0, float64(m.page.strip.overflow())})
}

func (m *Model) headingIndent(s sectionID) int {
	if s == sectionHero {
		return 0
	}
	return roundInt((1 - m.frames[s].reveal) * entranceShift)
}

func (m *Model) computeHits() []hitBox {
	var hits []hitBox
	for _, item := range m.navItems() {
		hits = append(hits, hitBox{
			row:     0,
			x0:      item.x,
			x1:      item.x + runewidth.StringWidth(navLabels[item.section]),
			target:  targetID{nav: true, section: item.section},
			shuffle: true,
			jump:    item.section,
			hasJump: true,
		})
	}
	vh := m.viewportHeight()
	for i := range m.page.sections {
		s := m.page.sections[i]
		f := m.frames[s.id]
		row := f.screenTop + s.headingRow
		if s.heading != "" && row >= 0 && row < vh {
			l := s.lines[s.headingRow]
			x := m.page.lineX(l, s.heading) + m.headingIndent(s.id)
			hits = append(hits, hitBox{
				row:     row + navHeight,
				x0:      x,
				x1:      x + runewidth.StringWidth(s.heading),
				target:  targetID{section: s.id},
				shuffle: true,
			})
		}
	}
	hits = append(hits, m.actionHits(vh)...)
	return hits
}

func (m *Model) actionHits(vh int) []hitBox {
	hero := m.page.sections[sectionHero]
	idx := -1
	for i, l := range hero.lines {
		if l.kind == kindActions {
			idx = i
			break
		}
	}
	row := m.frames[sectionHero].screenTop + idx
	if idx < 0 || row < 0 || row >= vh {
		return nil
	}
	l := hero.lines[idx]
	x := m.page.lineX(l, l.text)
	targets := heroActionTargets(len(m.page.hero.Actions))
	var hits []hitBox
	for i, action := range m.page.hero.Actions {
		w := runewidth.StringWidth("[ " + action + " ]")
		hits = append(hits, hitBox{row: row + navHeight, x0: x, x1: x + w, jump: targets[i], hasJump: true})
		x += w + runewidth.StringWidth(actionGap)
	}
	return hits
}

type navItem struct {
	section sectionID
	x       int
}

func (m *Model) navItems() []navItem {
	const gap = 3
	total := 0
	for _, label := range navLabels {
		total += runewidth.StringWidth(label)
	}
	total += gap * (len(navLabels) - 1)
	x := max(m.width-m.page.padX-total, 0)
	items := make([]navItem, 0, len(navLabels))
	for s := sectionID(0); s < sectionCount; s++ {
		items = append(items, navItem{section: s, x: x})
		x += runewidth.StringWidth(navLabels[s]) + gap
	}
	return items
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return ""
	}
	vh := m.viewportHeight()
	canvas := make([]string, vh)
	for i := range m.page.sections {
		m.paintSection(canvas, m.page.sections[i])
	}
	var b strings.Builder
	b.WriteString(m.renderNav())
	for _, row := range canvas {
		b.WriteByte('\n')
		b.WriteString(row)
	}
	b.WriteByte('\n')
	b.WriteString(lipgloss.NewStyle().PaddingLeft(m.page.padX).Render(m.help.View(m.keys)))
	return b.String()
}

func (m *Model) paintSection(canvas []string, s section) {
	f := m.frames[s.id]
	alpha := f.opacity * f.reveal
	if alpha <= 0.01 {
		return
	}
	for i, l := range s.lines {
		r := f.screenTop + i
		if r < 0 || r >= len(canvas) {
			continue
		}
		text := m.lineText(s, l)
		if text == "" {
			continue
		}
		x := m.page.lineX(l, text)
		focused := false
		if i == s.headingRow && l.kind != kindBlank {
			x += m.headingIndent(s.id)
			focused = m.focus == int(s.id)
		}
		text = runewidth.Truncate(text, max(m.width-x, 0), "")
		canvas[r] = strings.Repeat(" ", x) + styleFor(l.kind, alpha, focused).Render(text)
	}
}

func (m *Model) lineText(s section, l line) string {
	switch l.kind {
	case kindHeading, kindName:
		if text, ok := m.display[targetID{section: s.id}]; ok {
			return text
		}
		return l.text
	case kindTagline:
		return m.tagline(l.text)
	case kindSkill:
		if l.ref < 0 || l.ref >= len(m.page.skills) {
			return ""
		}
		return skillLine(m.page.skills[l.ref], m.page.contentWidth, m.frames[sectionSkills].barFill)
	case kindStrip:
		lift := roundInt(projectCardLift.Map(m.frames[sectionProjects].transit))
		return m.page.strip.row(l.ref, roundInt(m.strip.pos), func(i int) int {
			if i%2 == 0 {
				return lift
			}
			return 0
		})
	default:
		return l.text
	}
}

func (m *Model) tagline(text string) string {
	if m.static {
		return text
	}
	elapsed := m.frameAt.Sub(m.startedAt)
	shown, _ := typewriter.Visible(text, elapsed, typewriter.DefaultInterval)
	caret := " "
	if typewriter.CaretOn(elapsed, caretPeriod) {
		caret = "▌"
	}
	return shown + caret
}

var (
	brandStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(foregroundHex)).Bold(true)
	navStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(navHex))
	navActiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(foregroundHex)).Underline(true)
)

func (m *Model) renderNav() string {
	items := m.navItems()
	active := m.centredSection()
	var b strings.Builder
	col := 0
	brand := runewidth.Truncate(m.page.hero.Name, max(items[0].x-m.page.padX-1, 0), "")
	if brand != "" {
		b.WriteString(strings.Repeat(" ", m.page.padX))
		b.WriteString(brandStyle.Render(brand))
		col = m.page.padX + runewidth.StringWidth(brand)
	}
	for _, item := range items {
		if item.x < col {
			continue
		}
		id := targetID{nav: true, section: item.section}
		text := navLabels[item.section]
		if shuffled, ok := m.display[id]; ok {
			text = shuffled
		}
		style := navStyle
		if item.section == active {
			style = navActiveStyle
		}
		b.WriteString(strings.Repeat(" ", item.x-col))
		b.WriteString(style.Render(text))
		col = item.x + runewidth.StringWidth(text)
	}
	return b.String()
}

// finish stores the visit once. Errors are reported on stderr; the UI still exits.
func (m *Model) finish(now time.Time) {
	if m.saved || m.opts.Sink == nil {
		return
	}
	m.saved = true
	m.recorder.observe(now, m.centredSection())
	visit, sections := m.recorder.finish(now, m.opts.ContentRef)
	if _, err := m.opts.Sink.InsertVisit(context.Background(), visit, sections); err != nil {
		logErrf("failed to save visit: %v\n", err)
	}
}

// RenderFrame lays out the portfolio at the given size and scroll row and
// returns one settled frame with every animation at its end state.
func RenderFrame(opts Options, width, height, scrollRow int) (string, error) {
	m, err := NewModel(opts)
	if err != nil {
		return "", err
	}
	m.static = true
	m.resize(width, height)
	if !m.ready {
		return "", fmt.Errorf("frame size %dx%d is too small", width, height)
	}
	m.scrollY = clampScroll(float64(scrollRow), m.page.maxScroll(m.viewportHeight()))
	m.updateFrame(m.now())
	return m.View(), nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
