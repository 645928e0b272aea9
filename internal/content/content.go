// Package content loads the portfolio document rendered by the UI.
package content

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed default.toml
var defaultDocument string

// Portfolio is the full page content.
type Portfolio struct {
	Hero     Hero     `toml:"hero"`
	About    About    `toml:"about"`
	Projects Projects `toml:"projects"`
	Skills   Skills   `toml:"skills"`
	Contact  Contact  `toml:"contact"`
}

// Hero is the landing block.
type Hero struct {
	Eyebrow string   `toml:"eyebrow"`
	Name    string   `toml:"name"`
	Tagline string   `toml:"tagline"`
	Actions []string `toml:"actions"`
}

// About introduces the author.
type About struct {
	Eyebrow    string   `toml:"eyebrow"`
	Title      string   `toml:"title"`
	Paragraphs []string `toml:"paragraphs"`
	Cards      []Card   `toml:"cards"`
}

// Card is a titled blurb.
type Card struct {
	Title string `toml:"title"`
	Text  string `toml:"text"`
}

// Projects lists portfolio work.
type Projects struct {
	Eyebrow string    `toml:"eyebrow"`
	Title   string    `toml:"title"`
	Items   []Project `toml:"items"`
}

// Project is one portfolio entry.
type Project struct {
	Title       string   `toml:"title"`
	Description string   `toml:"description"`
	Tags        []string `toml:"tags"`
	Link        string   `toml:"link"`
}

// Skills lists technologies with a proficiency level.
type Skills struct {
	Eyebrow string  `toml:"eyebrow"`
	Title   string  `toml:"title"`
	Footer  string  `toml:"footer"`
	Items   []Skill `toml:"items"`
}

// Skill is a named proficiency from 0 to 100.
type Skill struct {
	Name  string `toml:"name"`
	Level int    `toml:"level"`
}

// Contact lists ways to get in touch.
type Contact struct {
	Eyebrow string   `toml:"eyebrow"`
	Title   string   `toml:"title"`
	Blurb   string   `toml:"blurb"`
	Email   string   `toml:"email"`
	Socials []Social `toml:"socials"`
}

// Social is a named profile link.
type Social struct {
	Name string `toml:"name"`
	URL  string `toml:"url"`
}

// Default returns the built-in portfolio.
func Default() (Portfolio, error) {
	return Parse(defaultDocument)
}

// Parse decodes and validates a TOML document.
func Parse(doc string) (Portfolio, error) {
	var p Portfolio
	if _, err := toml.Decode(doc, &p); err != nil {
		return Portfolio{}, fmt.Errorf("failed to decode content: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Portfolio{}, err
	}
	return p, nil
}

// Load reads the portfolio at path, or the built-in one when path is empty.
func Load(path string) (Portfolio, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Portfolio{}, fmt.Errorf("failed to read content: %w", err)
	}
	return Parse(string(data))
}

// DefaultDocument returns the built-in TOML source, for seeding a user copy.
func DefaultDocument() string {
	return defaultDocument
}

// Validate checks the fields the UI depends on.
func (p Portfolio) Validate() error {
	if strings.TrimSpace(p.Hero.Name) == "" {
		return fmt.Errorf("content: hero.name must not be empty")
	}
	if len(p.About.Paragraphs) == 0 && len(p.Projects.Items) == 0 && len(p.Skills.Items) == 0 {
		return fmt.Errorf("content: at least one of about, projects or skills must have entries")
	}
	for i, item := range p.Projects.Items {
		if strings.TrimSpace(item.Title) == "" {
			return fmt.Errorf("content: projects.items[%d].title must not be empty", i)
		}
	}
	for i, skill := range p.Skills.Items {
		if skill.Level < 0 || skill.Level > 100 {
			return fmt.Errorf("content: skills.items[%d] level %d must be between 0 and 100", i, skill.Level)
		}
	}
	return nil
}
