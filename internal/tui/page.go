package tui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/tnesh/folio/internal/content"
)

type sectionID int

const (
	sectionHero sectionID = iota
	sectionAbout
	sectionProjects
	sectionSkills
	sectionContact
	sectionCount
)

var sectionNames = [sectionCount]string{"hero", "about", "projects", "skills", "contact"}

var navLabels = [sectionCount]string{"Home", "About", "Projects", "Skills", "Contact"}

func (s sectionID) String() string {
	if s < 0 || s >= sectionCount {
		return fmt.Sprintf("section(%d)", int(s))
	}
	return sectionNames[s]
}

type lineKind int

const (
	kindBlank lineKind = iota
	kindEyebrow
	kindHeading
	kindName
	kindBody
	kindMuted
	kindCardTitle
	kindTagline
	kindActions
	kindSkill
	kindStrip
)

// line is one document row of a section. Dynamic kinds are filled in per frame
// from ref: the skill index for kindSkill, the strip row for kindStrip.
type line struct {
	text   string
	kind   lineKind
	ref    int
	center bool
}

type section struct {
	id         sectionID
	heading    string
	headingRow int
	top        int
	height     int
	lines      []line
	// pinRows is extra scroll distance over which the section stays stuck to the viewport top.
	pinRows int
}

// page is the laid-out document.
type page struct {
	sections     [sectionCount]section
	height       int
	width        int
	contentWidth int
	padX         int
	strip        strip
	hero         content.Hero
	skills       []content.Skill
}

const (
	maxContentWidth = 88
	sectionPad      = 2
	skillNameWidth  = 16
	actionGap       = "   "
)

func layoutPage(p content.Portfolio, width, viewportHeight int) page {
	contentWidth := width - 4
	if contentWidth > maxContentWidth {
		contentWidth = maxContentWidth
	}
	if contentWidth < 10 {
		contentWidth = max(width, 1)
	}
	pg := page{
		width:        width,
		contentWidth: contentWidth,
		padX:         max((width-contentWidth)/2, 0),
		hero:         p.Hero,
		skills:       p.Skills.Items,
	}
	pg.strip = buildStrip(p.Projects.Items, contentWidth)

	pg.sections[sectionHero] = heroSection(p.Hero, viewportHeight)
	pg.sections[sectionAbout] = aboutSection(p.About, contentWidth)
	pg.sections[sectionProjects] = projectsSection(p.Projects, pg.strip)
	pg.sections[sectionSkills] = skillsSection(p.Skills, contentWidth)
	pg.sections[sectionContact] = contactSection(p.Contact, contentWidth)

	top := 0
	for i := range pg.sections {
		s := &pg.sections[i]
		s.top = top
		if s.height < len(s.lines) {
			s.height = len(s.lines)
		}
		s.height += s.pinRows
		top += s.height
	}
	pg.height = top
	return pg
}

// maxScroll is the furthest the document can scroll for a viewport height.
func (pg page) maxScroll(viewportHeight int) int {
	return max(pg.height-viewportHeight, 0)
}

// anchor is the scroll position that brings a section to the top of the viewport.
func (pg page) anchor(id sectionID, viewportHeight int) int {
	return min(pg.sections[id].top, pg.maxScroll(viewportHeight))
}

// sectionAt returns the section covering document row y.
func (pg page) sectionAt(y int) sectionID {
	for i := sectionCount - 1; i >= 0; i-- {
		if y >= pg.sections[i].top {
			return i
		}
	}
	return sectionHero
}

// lineX returns the screen column where a line of the given text starts.
func (pg page) lineX(l line, text string) int {
	if !l.center {
		return pg.padX
	}
	w := runewidth.StringWidth(text)
	return pg.padX + max((pg.contentWidth-w)/2, 0)
}

func heroSection(h content.Hero, viewportHeight int) section {
	lines := []line{
		{text: h.Eyebrow, kind: kindEyebrow, center: true},
		{kind: kindBlank},
		{text: h.Name, kind: kindName, center: true},
		{kind: kindBlank},
		{text: h.Tagline, kind: kindTagline, center: true},
		{kind: kindBlank},
		{text: heroActions(h.Actions), kind: kindActions, center: true},
	}
	headingRow := 2
	height := max(viewportHeight, len(lines)+2)
	// Centre the block vertically and keep the scroll hint at the bottom.
	offset := max((height-len(lines))/2, 0)
	padded := make([]line, 0, height)
	for i := 0; i < offset; i++ {
		padded = append(padded, line{kind: kindBlank})
	}
	padded = append(padded, lines...)
	for len(padded) < height-1 {
		padded = append(padded, line{kind: kindBlank})
	}
	padded = append(padded, line{text: "scroll ↓", kind: kindMuted, center: true})
	return section{
		id:         sectionHero,
		heading:    h.Name,
		headingRow: offset + headingRow,
		height:     height,
		lines:      padded,
	}
}

func heroActions(actions []string) string {
	parts := make([]string, 0, len(actions))
	for _, a := range actions {
		parts = append(parts, "[ "+a+" ]")
	}
	return strings.Join(parts, actionGap)
}

// heroActionTargets maps hero buttons to the sections they jump to.
func heroActionTargets(n int) []sectionID {
	targets := []sectionID{sectionProjects, sectionContact}
	out := make([]sectionID, n)
	for i := range out {
		out[i] = targets[i%len(targets)]
	}
	return out
}

func headerLines(eyebrow, title string) []line {
	out := []line{}
	for i := 0; i < sectionPad; i++ {
		out = append(out, line{kind: kindBlank})
	}
	if eyebrow != "" {
		out = append(out, line{text: strings.ToUpper(eyebrow), kind: kindEyebrow})
	}
	out = append(out, line{text: title, kind: kindHeading}, line{kind: kindBlank})
	return out
}

func headingIndex(lines []line) int {
	for i, l := range lines {
		if l.kind == kindHeading {
			return i
		}
	}
	return 0
}

func padBottom(lines []line) []line {
	for i := 0; i < sectionPad; i++ {
		lines = append(lines, line{kind: kindBlank})
	}
	return lines
}

func aboutSection(a content.About, width int) section {
	lines := headerLines(a.Eyebrow, a.Title)
	for i, para := range a.Paragraphs {
		if i > 0 {
			lines = append(lines, line{kind: kindBlank})
		}
		for _, text := range wrapText(para, width) {
			lines = append(lines, line{text: text, kind: kindBody})
		}
	}
	for _, card := range a.Cards {
		lines = append(lines, line{kind: kindBlank}, line{text: "┌ " + card.Title, kind: kindCardTitle})
		for _, text := range wrapText(card.Text, width-2) {
			lines = append(lines, line{text: "  " + text, kind: kindMuted})
		}
	}
	return section{
		id:         sectionAbout,
		heading:    a.Title,
		headingRow: headingIndex(lines),
		lines:      padBottom(lines),
	}
}

func projectsSection(p content.Projects, st strip) section {
	lines := headerLines(p.Eyebrow, p.Title)
	for row := 0; row < st.height(); row++ {
		lines = append(lines, line{kind: kindStrip, ref: row})
	}
	return section{
		id:         sectionProjects,
		heading:    p.Title,
		headingRow: headingIndex(lines),
		lines:      padBottom(lines),
		pinRows:    st.pinRows(),
	}
}

func skillsSection(s content.Skills, width int) section {
	lines := headerLines(s.Eyebrow, s.Title)
	for i := range s.Items {
		lines = append(lines, line{kind: kindSkill, ref: i})
	}
	if s.Footer != "" {
		lines = append(lines, line{kind: kindBlank})
		for _, text := range wrapText(s.Footer, width) {
			lines = append(lines, line{text: text, kind: kindMuted})
		}
	}
	return section{
		id:         sectionSkills,
		heading:    s.Title,
		headingRow: headingIndex(lines),
		lines:      padBottom(lines),
	}
}

func contactSection(c content.Contact, width int) section {
	lines := headerLines(c.Eyebrow, c.Title)
	for _, text := range wrapText(c.Blurb, width) {
		lines = append(lines, line{text: text, kind: kindBody})
	}
	if c.Email != "" {
		lines = append(lines, line{kind: kindBlank}, line{text: "✉  " + c.Email, kind: kindCardTitle})
	}
	if len(c.Socials) > 0 {
		lines = append(lines, line{kind: kindBlank})
		for _, social := range c.Socials {
			lines = append(lines, line{text: fmt.Sprintf("%-10s %s", social.Name, social.URL), kind: kindMuted})
		}
	}
	return section{
		id:         sectionContact,
		heading:    c.Title,
		headingRow: headingIndex(lines),
		lines:      padBottom(lines),
	}
}

// skillLine renders a skill name, a bar filled to fill (0..1 of the level) and the level.
func skillLine(skill content.Skill, contentWidth int, fill float64) string {
	barWidth := min(30, contentWidth-skillNameWidth-6)
	if barWidth < 4 {
		return fmt.Sprintf("%s %d", skill.Name, skill.Level)
	}
	filled := int(float64(barWidth)*float64(skill.Level)/100*fill + 0.5)
	filled = min(max(filled, 0), barWidth)
	name := runewidth.FillRight(runewidth.Truncate(skill.Name, skillNameWidth, "…"), skillNameWidth)
	return fmt.Sprintf("%s %s%s %3d", name, strings.Repeat("█", filled), strings.Repeat("░", barWidth-filled), skill.Level)
}
